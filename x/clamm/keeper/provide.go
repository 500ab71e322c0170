package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/pclmath"
	"github.com/helix-chain/helix/x/clamm/types"
)

// tenPowLp converts share amounts between micro shares and decimal shares
var tenPowLp = math.LegacyNewDec(10).Power(uint64(types.LpDecimals))

// sharesDec returns the outstanding LP supply as a decimal share count
func sharesDec(total math.Int) math.LegacyDec {
	return math.LegacyNewDecFromInt(total).Quo(tenPowLp)
}

// ProvideLiquidity deposits one or both pool assets and mints LP shares.
// The first provide locks MinimumLiquidity micro shares in the module
// account forever and pins the virtual price at exactly one.
func (k Keeper) ProvideLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	poolID uint64,
	assets []types.Asset,
	slippageTolerance *math.LegacyDec,
	autoStake bool,
	receiver sdk.AccAddress,
	minLpToReceive *math.Int,
) (minted math.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		k.metrics.ProvidesTotal.WithLabelValues(fmt.Sprintf("%d", poolID), status).Inc()
	}()

	deposits, err := k.resolveDeposits(pool, assets)
	if err != nil {
		return math.Int{}, err
	}
	initial := pool.TotalShares.IsZero()
	if initial && (!deposits[0].IsPositive() || !deposits[1].IsPositive()) {
		return math.Int{}, types.ErrValidation.Wrap("initial provide requires both assets")
	}

	tolerance := types.DefaultSlippageTolerance
	if slippageTolerance != nil {
		if slippageTolerance.IsNegative() || slippageTolerance.GT(types.MaxSlippageTolerance) {
			return math.Int{}, types.ErrValidation.Wrapf("slippage tolerance must be within [0, %s]", types.MaxSlippageTolerance)
		}
		tolerance = *slippageTolerance
	}

	// pull the deposits in before touching state
	var coins sdk.Coins
	for i := 0; i < types.NCoins; i++ {
		if deposits[i].IsPositive() {
			coins = coins.Add(sdk.NewCoin(pool.Denom(i), deposits[i]))
		}
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, coins); err != nil {
		return math.Int{}, types.ErrInsufficientBalance.Wrap(err.Error())
	}

	depositDec := [types.NCoins]math.LegacyDec{
		types.NormalizeAmount(deposits[0], pool.BasePrecision),
		types.NormalizeAmount(deposits[1], pool.QuotePrecision),
	}

	oldXp := pool.ScaledReserves()
	newXp := [types.NCoins]math.LegacyDec{
		oldXp[0].Add(depositDec[0]),
		oldXp[1].Add(depositDec[1].Mul(pool.PriceScale)),
	}
	amp, gamma := k.AmpGammaNow(ctx, pool)
	newD, err := pclmath.NewtonD(newXp[0], newXp[1], amp, gamma)
	if err != nil {
		k.metrics.SolverIterationFailures.Inc()
		return math.Int{}, err
	}

	imbalanced := false
	var userShares math.Int
	if initial {
		xcp := pclmath.Xcp(newD, pool.PriceScale)
		totalMint := xcp.Mul(tenPowLp).TruncateInt()
		if totalMint.LTE(math.NewInt(types.MinimumLiquidity)) {
			return math.Int{}, types.ErrMinimumLiquidity.Wrapf(
				"initial deposit mints %s micro shares, need more than %d", totalMint, types.MinimumLiquidity)
		}
		userShares = totalMint.SubRaw(types.MinimumLiquidity)

		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName,
			sdk.NewCoins(sdk.NewCoin(pool.LpDenom(), totalMint))); err != nil {
			return math.Int{}, fmt.Errorf("mint lp shares: %w", err)
		}
		pool.TotalShares = totalMint
		pool.XcpProfit = math.LegacyOneDec()
		pool.XcpProfitReal = math.LegacyOneDec()
	} else {
		oldD, err := pclmath.NewtonD(oldXp[0], oldXp[1], amp, gamma)
		if err != nil {
			k.metrics.SolverIterationFailures.Inc()
			return math.Int{}, err
		}
		growth := newD.Quo(oldD).Sub(math.LegacyOneDec())
		if !growth.IsPositive() {
			return math.Int{}, types.ErrValidation.Wrap("deposit does not grow the pool")
		}
		baseShares := sharesDec(pool.TotalShares).Mul(growth)

		feeRate := provideFee(depositDec, newXp, pool)
		netShares := baseShares.Mul(math.LegacyOneDec().Sub(feeRate))
		userShares = netShares.Mul(tenPowLp).TruncateInt()
		if !userShares.IsPositive() {
			return math.Int{}, types.ErrValidation.Wrap("deposit too small to mint shares")
		}

		if err := k.assertProvideSlippage(pool, depositDec, userShares, tolerance); err != nil {
			return math.Int{}, err
		}

		imbalanced = k.provideMovesPrice(pool, depositDec)
		if imbalanced {
			diff0, diff1 := balancedDiffs(pool, depositDec)
			if diff1.IsPositive() {
				pool.LastPrice = diff0.Quo(diff1)
			}
		}

		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName,
			sdk.NewCoins(sdk.NewCoin(pool.LpDenom(), userShares))); err != nil {
			return math.Int{}, fmt.Errorf("mint lp shares: %w", err)
		}
		pool.TotalShares = pool.TotalShares.Add(userShares)
	}

	if minLpToReceive != nil && userShares.LT(*minLpToReceive) {
		return math.Int{}, types.ErrProvideSlippage.Wrapf(
			"minted %s shares, wanted at least %s", userShares, minLpToReceive)
	}

	k.accumulateCumulativePrices(ctx, pool)
	pool.BaseReserve = pool.BaseReserve.Add(deposits[0])
	pool.QuoteReserve = pool.QuoteReserve.Add(deposits[1])

	// two-sided deposits seed the oracle buffer so early TWAP queries can
	// bracket the pre-trade equilibrium
	if initial || imbalanced {
		k.recordObservation(ctx, pool.Id, depositDec[0], depositDec[1])
	}

	if err := k.deliverShares(ctx, pool, receiver, userShares, autoStake); err != nil {
		return math.Int{}, err
	}

	if initial {
		// virtual price is pinned at one; nothing to rebook
	} else if imbalanced {
		if err := k.updatePoolPrices(ctx, pool, true); err != nil {
			return math.Int{}, err
		}
	} else {
		if err := k.rebookProfit(ctx, pool); err != nil {
			return math.Int{}, err
		}
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProvideLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyReceiver, receiver.String()),
			sdk.NewAttribute(types.AttributeKeyAmounts, coins.String()),
			sdk.NewAttribute(types.AttributeKeyShares, userShares.String()),
		),
	)
	k.Logger(sdkCtx).Debug("liquidity provided",
		"pool_id", pool.Id, "shares", userShares.String(), "initial", initial)

	return userShares, nil
}

// resolveDeposits maps an asset vector onto [base, quote] amounts, filling
// zero for an omitted side
func (k Keeper) resolveDeposits(pool *types.Pool, assets []types.Asset) ([types.NCoins]math.Int, error) {
	deposits := [types.NCoins]math.Int{math.ZeroInt(), math.ZeroInt()}
	if err := types.ValidateAssetSet(assets); err != nil {
		return deposits, err
	}
	for _, asset := range assets {
		idx, err := pool.AssetIndex(asset.Denom)
		if err != nil {
			return deposits, err
		}
		deposits[idx] = asset.Amount
	}
	return deposits, nil
}

// provideFee is the share discount rate for an imbalanced deposit. It is
// the half swap fee at the post-deposit balances, weighted by how far the
// deposit sits from its balanced split in solver coordinates.
func provideFee(deposits [types.NCoins]math.LegacyDec, newXp [types.NCoins]math.LegacyDec, pool *types.Pool) math.LegacyDec {
	scaled0 := deposits[0]
	scaled1 := deposits[1].Mul(pool.PriceScale)
	sum := scaled0.Add(scaled1)
	if !sum.IsPositive() {
		return math.LegacyZeroDec()
	}
	avg := sum.Quo(math.LegacyNewDec(types.NCoins))
	imbalance := pclmath.Diff(scaled0, avg).Add(pclmath.Diff(scaled1, avg)).Quo(sum)
	rate := pclmath.ProvideFeeRate(
		pool.Params.MidFee, pool.Params.OutFee, pool.Params.FeeGamma, newXp[0], newXp[1])
	return rate.Mul(imbalance)
}

// balancedDiffs returns each deposit side's distance from the split that
// would keep the pool ratio unchanged, in normalized token units
func balancedDiffs(pool *types.Pool, deposits [types.NCoins]math.LegacyDec) (math.LegacyDec, math.LegacyDec) {
	reserves := pool.NormalizedReserves()
	value := deposits[0].Add(deposits[1].Mul(pool.PriceScale))
	poolValue := reserves[0].Add(reserves[1].Mul(pool.PriceScale))
	if !poolValue.IsPositive() || !value.IsPositive() {
		return math.LegacyZeroDec(), math.LegacyZeroDec()
	}
	ideal0 := value.Mul(reserves[0]).Quo(poolValue)
	ideal1 := value.Mul(reserves[1]).Quo(poolValue)
	return pclmath.Diff(deposits[0], ideal0), pclmath.Diff(deposits[1], ideal1)
}

// provideMovesPrice reports whether the deposit is imbalanced enough to
// count as a trade for price tracking purposes
func (k Keeper) provideMovesPrice(pool *types.Pool, deposits [types.NCoins]math.LegacyDec) bool {
	diff0, diff1 := balancedDiffs(pool, deposits)
	return diff0.GT(types.MinTradeSize) && diff1.GT(types.MinTradeSize)
}

// assertProvideSlippage compares minted shares against the pro-rata value
// of the deposit at the current price scale
func (k Keeper) assertProvideSlippage(
	pool *types.Pool,
	deposits [types.NCoins]math.LegacyDec,
	minted math.Int,
	tolerance math.LegacyDec,
) error {
	reserves := pool.NormalizedReserves()
	poolValue := reserves[0].Add(reserves[1].Mul(pool.PriceScale))
	if !poolValue.IsPositive() {
		return nil
	}
	depositValue := deposits[0].Add(deposits[1].Mul(pool.PriceScale))
	expected := sharesDec(pool.TotalShares).Mul(depositValue).Quo(poolValue)
	floor := expected.Mul(math.LegacyOneDec().Sub(tolerance)).Mul(tenPowLp).TruncateInt()
	if minted.LT(floor) {
		return types.ErrProvideSlippage.Wrapf(
			"minted %s micro shares, slippage floor is %s", minted, floor)
	}
	return nil
}

// deliverShares routes minted user shares to the receiver, optionally
// through the incentives module when auto staking is requested
func (k Keeper) deliverShares(
	ctx context.Context,
	pool *types.Pool,
	receiver sdk.AccAddress,
	shares math.Int,
	autoStake bool,
) error {
	lpCoin := sdk.NewCoin(pool.LpDenom(), shares)
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiver, sdk.NewCoins(lpCoin)); err != nil {
		return err
	}
	if autoStake && k.incentivesKeeper != nil {
		return k.incentivesKeeper.Deposit(ctx, receiver, lpCoin)
	}
	return nil
}
