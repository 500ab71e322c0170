package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// BankKeeper is the subset of the bank module the pool engine needs: coin
// custody for reserves and mint/burn of LP share denoms.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	GetSupply(ctx context.Context, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	GetDenomMetaData(ctx context.Context, denom string) (banktypes.Metadata, bool)
}

// RegistryKeeper resolves asset decimal precisions. Pools snapshot both
// precisions at creation and never consult the registry again.
type RegistryKeeper interface {
	TokenDecimals(ctx context.Context, denom string) (uint8, error)
}

// IncentivesKeeper receives LP shares when a provide requests auto-stake.
// Best-effort collaborator; a nil keeper disables auto-stake.
type IncentivesKeeper interface {
	Deposit(ctx context.Context, depositor sdk.AccAddress, lpToken sdk.Coin) error
}
