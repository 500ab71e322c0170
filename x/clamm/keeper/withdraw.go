package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// WithdrawLiquidity burns LP shares and pays out both assets pro rata.
// Floor division keeps any dust in the pool. Withdrawals never move the
// price scale or the last traded price.
func (k Keeper) WithdrawLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	poolID uint64,
	amount math.Int,
	minAssetsToReceive []types.Asset,
) (refund []types.Asset, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		k.metrics.WithdrawsTotal.WithLabelValues(fmt.Sprintf("%d", poolID), status).Inc()
	}()

	if !amount.IsPositive() {
		return nil, types.ErrValidation.Wrap("withdraw amount must be positive")
	}
	if amount.GTE(pool.TotalShares) {
		return nil, types.ErrValidation.Wrapf(
			"cannot withdraw %s of %s outstanding shares", amount, pool.TotalShares)
	}

	lpCoin := sdk.NewCoin(pool.LpDenom(), amount)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, sdk.NewCoins(lpCoin)); err != nil {
		return nil, types.ErrInsufficientBalance.Wrap(err.Error())
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(lpCoin)); err != nil {
		return nil, fmt.Errorf("burn lp shares: %w", err)
	}

	refund = make([]types.Asset, 0, types.NCoins)
	var payout sdk.Coins
	for i := 0; i < types.NCoins; i++ {
		out := pool.Reserve(i).Mul(amount).Quo(pool.TotalShares)
		refund = append(refund, types.NewAsset(pool.Denom(i), out))
		if out.IsPositive() {
			payout = payout.Add(sdk.NewCoin(pool.Denom(i), out))
		}
		pool.SetReserve(i, pool.Reserve(i).Sub(out))
	}

	if err := assertWithdrawMinima(refund, minAssetsToReceive); err != nil {
		return nil, err
	}

	k.accumulateCumulativePrices(ctx, pool)
	pool.TotalShares = pool.TotalShares.Sub(amount)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sender, payout); err != nil {
		return nil, fmt.Errorf("pay out reserves: %w", err)
	}

	// a pro-rata withdraw shrinks xcp and supply in the same ratio, so the
	// per-share profit carries over unchanged
	if err := k.rebookProfit(ctx, pool); err != nil {
		return nil, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyShares, amount.String()),
			sdk.NewAttribute(types.AttributeKeyAmounts, payout.String()),
		),
	)
	k.Logger(sdkCtx).Debug("liquidity withdrawn",
		"pool_id", pool.Id, "shares", amount.String(), "refund", payout.String())

	return refund, nil
}

// assertWithdrawMinima checks the refund against the caller's per-asset
// minimums. The minimum vector is matched by denom, not by position.
func assertWithdrawMinima(refund []types.Asset, minima []types.Asset) error {
	for _, minimum := range minima {
		if err := minimum.Validate(); err != nil {
			return err
		}
		found := false
		for _, out := range refund {
			if out.Denom != minimum.Denom {
				continue
			}
			found = true
			if out.Amount.LT(minimum.Amount) {
				return types.ErrWithdrawSlippage.Wrapf(
					"refund %s%s below minimum %s%s",
					out.Amount, out.Denom, minimum.Amount, minimum.Denom)
			}
		}
		if !found {
			return types.ErrAssetMismatch.Wrapf("minimum names unknown asset %s", minimum.Denom)
		}
	}
	return nil
}
