package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/pclmath"
	"github.com/helix-chain/helix/x/clamm/types"
)

// swapResult holds a swap computation in normalized token units
type swapResult struct {
	// ReturnGross is the ask-side output before fees
	ReturnGross math.LegacyDec
	// ReturnNet is the output after the dynamic fee
	ReturnNet math.LegacyDec
	// Fee is the full commission in ask units
	Fee math.LegacyDec
	// Spread is the price impact versus the price-scale quote
	Spread math.LegacyDec
}

// computeSwap prices an offer against the pre-swap reserves. It is pure:
// simulation queries and the swap executor share it.
func computeSwap(
	pool *types.Pool,
	amp, gamma math.LegacyDec,
	offerIdx int,
	offerNorm math.LegacyDec,
) (swapResult, error) {
	askIdx := 1 - offerIdx
	if !pool.Reserve(askIdx).IsPositive() {
		return swapResult{}, types.ErrInsufficientBalance.Wrapf(
			"pool %d has no %s to sell", pool.Id, pool.Denom(askIdx))
	}

	xp := pool.ScaledReserves()
	d, err := pclmath.NewtonD(xp[0], xp[1], amp, gamma)
	if err != nil {
		return swapResult{}, err
	}

	dxScaled := offerNorm
	if offerIdx == 1 {
		dxScaled = dxScaled.Mul(pool.PriceScale)
	}
	newOffer := xp[offerIdx].Add(dxScaled)
	newAsk, err := pclmath.NewtonY(newOffer, d, amp, gamma)
	if err != nil {
		return swapResult{}, err
	}
	dyScaled := xp[askIdx].Sub(newAsk)
	if !dyScaled.IsPositive() {
		return swapResult{}, types.ErrConvergence.Wrap("swap output is not positive")
	}

	dyGross := dyScaled
	if askIdx == 1 {
		dyGross = dyGross.Quo(pool.PriceScale)
	}

	var postXp [types.NCoins]math.LegacyDec
	postXp[offerIdx] = newOffer
	postXp[askIdx] = newAsk
	feeRate := pclmath.FeeRate(
		pool.Params.MidFee, pool.Params.OutFee, pool.Params.FeeGamma, postXp[0], postXp[1])
	fee := feeRate.Mul(dyGross)

	// the no-impact quote values the offer at the current price scale
	var ideal math.LegacyDec
	if offerIdx == 0 {
		ideal = offerNorm.Quo(pool.PriceScale)
	} else {
		ideal = offerNorm.Mul(pool.PriceScale)
	}
	spread := math.LegacyZeroDec()
	if ideal.GT(dyGross) {
		spread = ideal.Sub(dyGross)
	}

	return swapResult{
		ReturnGross: dyGross,
		ReturnNet:   dyGross.Sub(fee),
		Fee:         fee,
		Spread:      spread,
	}, nil
}

// Swap executes a swap of the offer asset for the other pair member.
func (k Keeper) Swap(
	ctx context.Context,
	sender sdk.AccAddress,
	poolID uint64,
	offerAsset types.Asset,
	askAssetDenom string,
	beliefPrice *math.LegacyDec,
	maxSpread *math.LegacyDec,
	to sdk.AccAddress,
) (returnAmount, spreadAmount, commissionAmount math.Int, err error) {
	started := time.Now()
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		k.metrics.SwapsTotal.WithLabelValues(
			fmt.Sprintf("%d", poolID), offerAsset.Denom, status).Inc()
		k.metrics.SwapLatency.Observe(time.Since(started).Seconds())
	}()

	offerIdx, err := pool.AssetIndex(offerAsset.Denom)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	askIdx := 1 - offerIdx
	if askAssetDenom != "" && askAssetDenom != pool.Denom(askIdx) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrAssetMismatch.Wrapf(
			"ask asset %s is not the counterpart of %s", askAssetDenom, offerAsset.Denom)
	}
	if !offerAsset.Amount.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrap("offer amount must be positive")
	}

	offerNorm := types.NormalizeAmount(offerAsset.Amount, pool.Precision(offerIdx))
	if offerNorm.LT(types.MinTradeSize) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrapf(
			"offer of %s is below the minimum trade size", offerNorm)
	}

	spreadLimit := types.DefaultMaxSpread
	if maxSpread != nil {
		if maxSpread.IsNegative() || maxSpread.GT(types.MaxAllowedSpread) {
			return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrapf(
				"max spread must be within [0, %s]", types.MaxAllowedSpread)
		}
		spreadLimit = *maxSpread
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, sender, types.ModuleName, sdk.NewCoins(offerAsset.Coin())); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInsufficientBalance.Wrap(err.Error())
	}

	amp, gamma := k.AmpGammaNow(ctx, pool)
	result, err := computeSwap(pool, amp, gamma, offerIdx, offerNorm)
	if err != nil {
		if types.ErrConvergence.Is(err) {
			k.metrics.SolverIterationFailures.Inc()
		}
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	if result.Spread.Quo(result.ReturnGross).GT(spreadLimit) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrMaxSpreadAssertion.Wrapf(
			"spread %s exceeds limit %s of gross return %s",
			result.Spread, spreadLimit, result.ReturnGross)
	}
	if beliefPrice != nil {
		if !beliefPrice.IsPositive() {
			return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrap("belief price must be positive")
		}
		expected := offerNorm.Quo(*beliefPrice)
		if expected.GT(result.ReturnNet) &&
			expected.Sub(result.ReturnNet).Quo(expected).GT(spreadLimit) {
			return math.Int{}, math.Int{}, math.Int{}, types.ErrBeliefPriceViolation.Wrapf(
				"expected %s at belief price, swap returns %s", expected, result.ReturnNet)
		}
	}

	askPrecision := pool.Precision(askIdx)
	returnAmount = types.DenormalizeAmount(result.ReturnNet, askPrecision)
	if !returnAmount.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrap("swap returns zero after rounding")
	}
	spreadAmount = types.DenormalizeAmount(result.Spread, askPrecision)
	commissionAmount = types.DenormalizeAmount(result.Fee, askPrecision)

	settlement, err := k.settleSwapFees(ctx, pool, pool.Denom(askIdx), commissionAmount)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	k.recordSwapObservation(ctx, pool, offerIdx, offerNorm, result.ReturnNet)
	k.accumulateCumulativePrices(ctx, pool)

	pool.SetReserve(offerIdx, pool.Reserve(offerIdx).Add(offerAsset.Amount))
	outflow := returnAmount.Add(settlement.Shared).Add(settlement.Maker)
	pool.SetReserve(askIdx, pool.Reserve(askIdx).Sub(outflow))
	if pool.Reserve(askIdx).IsNegative() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInsufficientBalance.Wrapf(
			"swap drains the %s reserve", pool.Denom(askIdx))
	}

	// last price is always quoted as base per quote
	if offerIdx == 1 {
		pool.LastPrice = result.ReturnNet.Quo(offerNorm)
	} else {
		pool.LastPrice = offerNorm.Quo(result.ReturnNet)
	}

	if to == nil {
		to = sender
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(
		ctx, types.ModuleName, to,
		sdk.NewCoins(sdk.NewCoin(pool.Denom(askIdx), returnAmount))); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, fmt.Errorf("pay swap return: %w", err)
	}

	if err := k.updatePoolPrices(ctx, pool, true); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyReceiver, to.String()),
			sdk.NewAttribute(types.AttributeKeyOfferAsset, offerAsset.Denom),
			sdk.NewAttribute(types.AttributeKeyAskAsset, pool.Denom(askIdx)),
			sdk.NewAttribute(types.AttributeKeyOfferAmount, offerAsset.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyReturnAmount, returnAmount.String()),
			sdk.NewAttribute(types.AttributeKeySpreadAmount, spreadAmount.String()),
			sdk.NewAttribute(types.AttributeKeyCommission, commissionAmount.String()),
			sdk.NewAttribute(types.AttributeKeyMakerFee, settlement.Maker.String()),
			sdk.NewAttribute(types.AttributeKeyShareFee, settlement.Shared.String()),
		),
	)
	k.Logger(sdkCtx).Debug("swap executed",
		"pool_id", pool.Id,
		"offer", offerAsset.Coin().String(),
		"return", returnAmount.String(),
		"last_price", pool.LastPrice.String(),
	)

	return returnAmount, spreadAmount, commissionAmount, nil
}

// SimulateSwap prices an offer against current state without mutating it
func (k Keeper) SimulateSwap(
	ctx context.Context,
	poolID uint64,
	offerAsset types.Asset,
	askAssetDenom string,
) (returnAmount, spreadAmount, commissionAmount math.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	offerIdx, err := pool.AssetIndex(offerAsset.Denom)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	askIdx := 1 - offerIdx
	if askAssetDenom != "" && askAssetDenom != pool.Denom(askIdx) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrAssetMismatch.Wrapf(
			"ask asset %s is not the counterpart of %s", askAssetDenom, offerAsset.Denom)
	}
	if !offerAsset.Amount.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrap("offer amount must be positive")
	}

	offerNorm := types.NormalizeAmount(offerAsset.Amount, pool.Precision(offerIdx))
	amp, gamma := k.AmpGammaNow(ctx, pool)
	result, err := computeSwap(pool, amp, gamma, offerIdx, offerNorm)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	askPrecision := pool.Precision(askIdx)
	return types.DenormalizeAmount(result.ReturnNet, askPrecision),
		types.DenormalizeAmount(result.Spread, askPrecision),
		types.DenormalizeAmount(result.Fee, askPrecision),
		nil
}

// SimulateReverseSwap answers how much of the offer asset buys a desired
// ask amount. The fee is estimated at the current balances, the implied
// offer solved, and the fee refined once at the post-trade balances.
func (k Keeper) SimulateReverseSwap(
	ctx context.Context,
	poolID uint64,
	askAsset types.Asset,
	offerAssetDenom string,
) (offerAmount, spreadAmount, commissionAmount math.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	askIdx, err := pool.AssetIndex(askAsset.Denom)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	offerIdx := 1 - askIdx
	if offerAssetDenom != "" && offerAssetDenom != pool.Denom(offerIdx) {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrAssetMismatch.Wrapf(
			"offer asset %s is not the counterpart of %s", offerAssetDenom, askAsset.Denom)
	}
	if !askAsset.Amount.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrValidation.Wrap("ask amount must be positive")
	}

	askNorm := types.NormalizeAmount(askAsset.Amount, pool.Precision(askIdx))
	amp, gamma := k.AmpGammaNow(ctx, pool)
	xp := pool.ScaledReserves()
	d, err := pclmath.NewtonD(xp[0], xp[1], amp, gamma)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}

	feeRate := pclmath.FeeRate(
		pool.Params.MidFee, pool.Params.OutFee, pool.Params.FeeGamma, xp[0], xp[1])

	one := math.LegacyOneDec()
	var offerNorm, grossNorm math.LegacyDec
	for pass := 0; pass < 2; pass++ {
		grossNorm = askNorm.Quo(one.Sub(feeRate))
		dyScaled := grossNorm
		if askIdx == 1 {
			dyScaled = dyScaled.Mul(pool.PriceScale)
		}
		newAsk := xp[askIdx].Sub(dyScaled)
		if !newAsk.IsPositive() {
			return math.Int{}, math.Int{}, math.Int{}, types.ErrInsufficientBalance.Wrapf(
				"pool %d cannot supply %s %s", pool.Id, askAsset.Amount, askAsset.Denom)
		}
		newOffer, err := pclmath.NewtonY(newAsk, d, amp, gamma)
		if err != nil {
			return math.Int{}, math.Int{}, math.Int{}, err
		}
		dxScaled := newOffer.Sub(xp[offerIdx])
		if !dxScaled.IsPositive() {
			return math.Int{}, math.Int{}, math.Int{}, types.ErrConvergence.Wrap("reverse solve produced no offer")
		}
		offerNorm = dxScaled
		if offerIdx == 1 {
			offerNorm = offerNorm.Quo(pool.PriceScale)
		}

		var postXp [types.NCoins]math.LegacyDec
		postXp[offerIdx] = newOffer
		postXp[askIdx] = newAsk
		feeRate = pclmath.FeeRate(
			pool.Params.MidFee, pool.Params.OutFee, pool.Params.FeeGamma, postXp[0], postXp[1])
	}

	var ideal math.LegacyDec
	if offerIdx == 0 {
		ideal = offerNorm.Quo(pool.PriceScale)
	} else {
		ideal = offerNorm.Mul(pool.PriceScale)
	}
	spreadNorm := math.LegacyZeroDec()
	if ideal.GT(grossNorm) {
		spreadNorm = ideal.Sub(grossNorm)
	}

	// the offer rounds up so the quoted amount always covers the ask
	offerAmount = types.DenormalizeAmount(offerNorm, pool.Precision(offerIdx)).AddRaw(1)
	spreadAmount = types.DenormalizeAmount(spreadNorm, pool.Precision(askIdx))
	commissionAmount = types.DenormalizeAmount(grossNorm.Sub(askNorm), pool.Precision(askIdx))
	return offerAmount, spreadAmount, commissionAmount, nil
}
