package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/pclmath"
	"github.com/helix-chain/helix/x/clamm/types"
)

// virtualPriceAt computes the per-share pool value with the reserves
// re-coordinated at an arbitrary price scale
func (k Keeper) virtualPriceAt(ctx context.Context, pool *types.Pool, priceScale math.LegacyDec) (math.LegacyDec, error) {
	if pool.TotalShares.IsZero() {
		return math.LegacyOneDec(), nil
	}
	reserves := pool.NormalizedReserves()
	x0 := reserves[0]
	x1 := reserves[1].Mul(priceScale)
	amp, gamma := k.AmpGammaNow(ctx, pool)
	d, err := pclmath.NewtonD(x0, x1, amp, gamma)
	if err != nil {
		k.metrics.SolverIterationFailures.Inc()
		return math.LegacyDec{}, err
	}
	xcp := pclmath.Xcp(d, priceScale)
	return xcp.Quo(sharesDec(pool.TotalShares)), nil
}

// rebookProfit refreshes both profit accumulators from the live virtual
// price. Both scale by the same ratio, so balanced provides and withdraws
// leave the per-share numbers untouched while fee income grows them.
func (k Keeper) rebookProfit(ctx context.Context, pool *types.Pool) error {
	if pool.TotalShares.IsZero() || !pool.XcpProfitReal.IsPositive() {
		return nil
	}
	vp, err := k.virtualPriceAt(ctx, pool, pool.PriceScale)
	if err != nil {
		return err
	}
	growth := vp.Quo(pool.XcpProfitReal)
	pool.XcpProfit = pool.XcpProfit.Mul(growth)
	pool.XcpProfitReal = vp
	return nil
}

// updatePoolPrices runs the tail price routine after a trade: EMA oracle
// update, profit bookkeeping, and the bounded re-peg attempt. The caller
// persists the pool afterwards.
func (k Keeper) updatePoolPrices(ctx context.Context, pool *types.Pool, allowRepeg bool) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	if dt := now - pool.LastPriceUpdateTs; dt > 0 {
		halfLives := math.LegacyNewDec(dt).Quo(math.LegacyNewDec(pool.Params.MaHalfTime))
		alpha := pclmath.HalfPow(halfLives)
		pool.OraclePrice = alpha.Mul(pool.OraclePrice).
			Add(math.LegacyOneDec().Sub(alpha).Mul(pool.LastPrice))
		pool.LastPriceUpdateTs = now
	}

	if err := k.rebookProfit(ctx, pool); err != nil {
		return err
	}
	if !allowRepeg {
		return nil
	}
	return k.tryRepeg(ctx, pool)
}

// tryRepeg moves the price scale one bounded step toward the oracle price
// when enough profit has accrued to pay for it. The move commits only if
// the pool stays at or above its book value at the new scale.
func (k Keeper) tryRepeg(ctx context.Context, pool *types.Pool) error {
	one := math.LegacyOneDec()
	if pool.XcpProfitReal.Sub(one).LTE(pool.Params.RepegProfitThreshold) {
		return nil
	}

	scale := pool.PriceScale
	norm := pclmath.Diff(pool.OraclePrice, scale).Quo(scale)
	if norm.LT(pool.Params.MinPriceScaleDelta) {
		return nil
	}

	step := pool.Params.MinPriceScaleDelta.Mul(scale)
	var newScale math.LegacyDec
	if pool.OraclePrice.GT(scale) {
		newScale = scale.Add(step)
	} else {
		newScale = scale.Sub(step)
	}
	if !newScale.IsPositive() {
		return nil
	}

	vpAfter, err := k.virtualPriceAt(ctx, pool, newScale)
	if err != nil {
		return err
	}
	if vpAfter.LT(one) {
		k.metrics.RepegsSkipped.Inc()
		return nil
	}

	pool.PriceScale = newScale
	pool.XcpProfitReal = vpAfter
	if pool.XcpProfit.LT(pool.XcpProfitReal) {
		pool.XcpProfit = pool.XcpProfitReal
	}
	k.metrics.RepegsTotal.Inc()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRepeg,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeyPriceScale, newScale.String()),
			sdk.NewAttribute(types.AttributeKeyOraclePrice, pool.OraclePrice.String()),
			sdk.NewAttribute(types.AttributeKeyXcpProfit, pool.XcpProfit.String()),
		),
	)
	k.Logger(sdkCtx).Info("price scale re-pegged",
		"pool_id", pool.Id,
		"price_scale", newScale.String(),
		"oracle_price", pool.OraclePrice.String(),
		"xcp_profit_real", pool.XcpProfitReal.String(),
	)
	return nil
}
