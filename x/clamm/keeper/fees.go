package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

const bpsDenominator = 10_000

// feeSettlement is the outcome of splitting one swap commission
type feeSettlement struct {
	// Retained stays in the pool reserves and accrues to LPs
	Retained math.Int
	// Shared went to the pool's fee share recipient
	Shared math.Int
	// Maker went to the module-wide fee collector
	Maker math.Int
}

// settleSwapFees splits a swap commission, denominated in the ask asset,
// between the pool's fee share recipient, the protocol fee collector and
// the pool itself. The shared and maker cuts are paid out from the module
// account; the remainder is left in the reserves.
func (k Keeper) settleSwapFees(
	ctx context.Context,
	pool *types.Pool,
	askDenom string,
	commission math.Int,
) (feeSettlement, error) {
	settlement := feeSettlement{
		Retained: commission,
		Shared:   math.ZeroInt(),
		Maker:    math.ZeroInt(),
	}
	if !commission.IsPositive() {
		return settlement, nil
	}

	if share := pool.Params.FeeShare; share != nil {
		shared := commission.MulRaw(int64(share.Bps)).QuoRaw(bpsDenominator)
		if shared.IsPositive() {
			recipient, err := sdk.AccAddressFromBech32(share.Recipient)
			if err != nil {
				return settlement, types.ErrValidation.Wrapf("fee share recipient: %v", err)
			}
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(
				ctx, types.ModuleName, recipient,
				sdk.NewCoins(sdk.NewCoin(askDenom, shared)),
			); err != nil {
				return settlement, fmt.Errorf("send fee share: %w", err)
			}
			settlement.Shared = shared
			settlement.Retained = settlement.Retained.Sub(shared)
		}
	}

	params := k.GetParams(ctx)
	if params.FeeAddress != "" && params.MakerFeeShare.IsPositive() {
		maker := params.MakerFeeShare.MulInt(settlement.Retained).TruncateInt()
		if maker.IsPositive() {
			collector, err := sdk.AccAddressFromBech32(params.FeeAddress)
			if err != nil {
				return settlement, types.ErrValidation.Wrapf("fee address: %v", err)
			}
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(
				ctx, types.ModuleName, collector,
				sdk.NewCoins(sdk.NewCoin(askDenom, maker)),
			); err != nil {
				return settlement, fmt.Errorf("send maker fee: %w", err)
			}
			settlement.Maker = maker
			settlement.Retained = settlement.Retained.Sub(maker)
		}
	}

	return settlement, nil
}
