package keeper

import (
	"context"
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/require"

	"github.com/helix-chain/helix/x/clamm/keeper"
	"github.com/helix-chain/helix/x/clamm/types"
)

// TestAuthority is the governance authority used by test keepers
var TestAuthority = authtypes.NewModuleAddress("gov").String()

// ClammKeeper creates a test keeper with an in-memory store and bank
func ClammKeeper(t testing.TB) (keeper.Keeper, *MockBankKeeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	cdc := codec.NewLegacyAmino()
	types.RegisterLegacyAminoCodec(cdc)

	bank := NewMockBankKeeper()
	k := keeper.NewKeeper(cdc, storeKey, bank, nil, TestAuthority)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, bank, ctx
}

// MockBankKeeper is an in-memory bank ledger for keeper tests
type MockBankKeeper struct {
	balances map[string]sdk.Coins
	supply   sdk.Coins
	metadata map[string]banktypes.Metadata
}

// NewMockBankKeeper creates an empty mock bank
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{
		balances: make(map[string]sdk.Coins),
		metadata: make(map[string]banktypes.Metadata),
	}
}

// FundAccount credits an account and grows supply accordingly
func (b *MockBankKeeper) FundAccount(addr sdk.AccAddress, coins sdk.Coins) {
	b.balances[addr.String()] = b.balances[addr.String()].Add(coins...)
	b.supply = b.supply.Add(coins...)
}

// SetDenomMetadata registers denom metadata for precision lookups
func (b *MockBankKeeper) SetDenomMetadata(metadata banktypes.Metadata) {
	b.metadata[metadata.Base] = metadata
}

func moduleAddr(name string) sdk.AccAddress {
	return authtypes.NewModuleAddress(name)
}

func (b *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.balances[addr.String()].AmountOf(denom))
}

func (b *MockBankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.supply.AmountOf(denom))
}

func (b *MockBankKeeper) SendCoins(_ context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	return b.move(from.String(), to.String(), amt)
}

func (b *MockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, sender sdk.AccAddress, module string, amt sdk.Coins) error {
	return b.move(sender.String(), moduleAddr(module).String(), amt)
}

func (b *MockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, module string, recipient sdk.AccAddress, amt sdk.Coins) error {
	return b.move(moduleAddr(module).String(), recipient.String(), amt)
}

func (b *MockBankKeeper) MintCoins(_ context.Context, module string, amt sdk.Coins) error {
	b.balances[moduleAddr(module).String()] = b.balances[moduleAddr(module).String()].Add(amt...)
	b.supply = b.supply.Add(amt...)
	return nil
}

func (b *MockBankKeeper) BurnCoins(_ context.Context, module string, amt sdk.Coins) error {
	addr := moduleAddr(module).String()
	balance, hasNeg := b.balances[addr].SafeSub(amt...)
	if hasNeg {
		return fmt.Errorf("insufficient funds to burn %s from %s", amt, module)
	}
	b.balances[addr] = balance
	supply, hasNeg := b.supply.SafeSub(amt...)
	if hasNeg {
		return fmt.Errorf("burn exceeds supply for %s", amt)
	}
	b.supply = supply
	return nil
}

func (b *MockBankKeeper) GetDenomMetaData(_ context.Context, denom string) (banktypes.Metadata, bool) {
	metadata, found := b.metadata[denom]
	return metadata, found
}

func (b *MockBankKeeper) move(from, to string, amt sdk.Coins) error {
	balance, hasNeg := b.balances[from].SafeSub(amt...)
	if hasNeg {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, b.balances[from], amt)
	}
	b.balances[from] = balance
	b.balances[to] = b.balances[to].Add(amt...)
	return nil
}
