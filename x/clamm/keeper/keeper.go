package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// Keeper of the clamm store
type Keeper struct {
	storeKey  storetypes.StoreKey
	cdc       *codec.LegacyAmino
	authority string

	bankKeeper       types.BankKeeper
	incentivesKeeper types.IncentivesKeeper

	// moduleAddressCache avoids re-deriving the module account address in
	// hot paths (swaps, provides, fee routing).
	moduleAddressCache sdk.AccAddress

	metrics *Metrics
}

// NewKeeper creates a new clamm Keeper instance. incentivesKeeper may be
// nil, which disables auto-stake on provides.
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	incentivesKeeper types.IncentivesKeeper,
	authority string,
) Keeper {
	return Keeper{
		storeKey:           key,
		cdc:                cdc,
		authority:          authority,
		bankKeeper:         bankKeeper,
		incentivesKeeper:   incentivesKeeper,
		moduleAddressCache: authtypes.NewModuleAddress(types.ModuleName),
		metrics:            NewMetrics(),
	}
}

// GetAuthority returns the module's governance authority address
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GetModuleAddress returns the cached module account address
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddressCache
}

// Logger returns the module-tagged logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the clamm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
