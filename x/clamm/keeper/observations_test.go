package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/helix-chain/helix/testutil/keeper"
	"github.com/helix-chain/helix/x/clamm/types"
)

// TestObserve_EmptyBuffer tests querying a pool that never traded
func TestObserve_EmptyBuffer(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	_, _, err := k.Observe(ctx, pool.Id, 0)
	require.Error(t, err)
	require.True(t, types.ErrBufferEmpty.Is(err))
}

// TestObserve_PoolNotFound tests querying a missing pool
func TestObserve_PoolNotFound(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	_, _, err := k.Observe(ctx, 42, 0)
	require.Error(t, err)
	require.True(t, types.ErrPoolNotFound.Is(err))
}

// TestObserve_PendingOnly tests that the seeding deposit alone already
// answers oracle queries at the deposit ratio
func TestObserve_PendingOnly(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "2", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 50_000_000000)

	ts, price, err := k.Observe(ctx, pool.Id, 0)
	require.NoError(t, err)
	require.Equal(t, startTime.Unix(), ts)
	require.Equal(t, math.LegacyNewDec(2), price)
}

// TestObserve_LatestSwapPrice tests that a zero-lookback query returns the
// execution price of the freshest trade
func TestObserve_LatestSwapPrice(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	ctx = ctx.WithBlockTime(startTime.Add(1000 * time.Second))
	returnAmount, _, _ := swapIn(t, k, bank, ctx, pool.Id, testAddr(0xBB), quoteDenom, 10_000_000000)

	_, price, err := k.Observe(ctx, pool.Id, 0)
	require.NoError(t, err)

	// offering quote: the trade price in base per quote is return/offer
	expected := types.NormalizeAmount(returnAmount, assetPrecision).
		Quo(math.LegacyNewDec(10_000))
	requireDecEq(t, expected, price, "0.000000001")
	require.True(t, price.LT(math.LegacyOneDec()))
}

// TestObserve_Interpolates tests the linear interpolation between the
// seeded equilibrium and the first trade
func TestObserve_Interpolates(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	ctx = ctx.WithBlockTime(startTime.Add(1000 * time.Second))
	swapIn(t, k, bank, ctx, pool.Id, testAddr(0xBB), quoteDenom, 10_000_000000)

	_, latest, err := k.Observe(ctx, pool.Id, 0)
	require.NoError(t, err)

	_, mid, err := k.Observe(ctx, pool.Id, 500)
	require.NoError(t, err)

	// halfway between the pre-trade equilibrium of one and the trade price
	expected := math.LegacyOneDec().Add(latest).Quo(math.LegacyNewDec(2))
	requireDecEq(t, expected, mid, "0.000000000000001")
	require.True(t, mid.LT(math.LegacyOneDec()))
	require.True(t, mid.GT(latest))
}

// TestObserve_ClampsToPendingInLaterBlocks tests that the freshest price
// holds steady once trading stops: a zero-lookback query blocks after the
// last trade must return the pending entry itself, not a line drawn past
// it
func TestObserve_ClampsToPendingInLaterBlocks(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	tradeTime := startTime.Add(1000 * time.Second)
	ctx = ctx.WithBlockTime(tradeTime)
	swapIn(t, k, bank, ctx, pool.Id, testAddr(0xBB), quoteDenom, 10_000_000000)

	_, tradePrice, err := k.Observe(ctx, pool.Id, 0)
	require.NoError(t, err)

	// two thousand quiet seconds later the answer is unchanged
	ctx = ctx.WithBlockTime(startTime.Add(3000 * time.Second))
	ts, price, err := k.Observe(ctx, pool.Id, 0)
	require.NoError(t, err)
	require.Equal(t, tradeTime.Unix(), ts)
	require.Equal(t, tradePrice, price)

	// a lookback landing between the seed and the trade still interpolates
	_, mid, err := k.Observe(ctx, pool.Id, 2500)
	require.NoError(t, err)
	require.True(t, mid.GT(tradePrice))
	require.True(t, mid.LT(math.LegacyOneDec()))
}

// TestObserve_ClampsToOldest tests lookbacks past the start of an
// unwrapped ring
func TestObserve_ClampsToOldest(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	ctx = ctx.WithBlockTime(startTime.Add(1000 * time.Second))
	swapIn(t, k, bank, ctx, pool.Id, testAddr(0xBB), quoteDenom, 10_000_000000)

	ts, price, err := k.Observe(ctx, pool.Id, 50_000)
	require.NoError(t, err)
	require.Equal(t, startTime.Unix(), ts)
	require.Equal(t, math.LegacyOneDec(), price)
}

// TestObserve_BracketsInteriorTarget tests the binary search over several
// committed observations
func TestObserve_BracketsInteriorTarget(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	// three trades in three blocks commit two ring entries and leave one
	// pending
	for i := 1; i <= 3; i++ {
		ctx = ctx.WithBlockTime(startTime.Add(time.Duration(i) * 100 * time.Second))
		swapIn(t, k, bank, ctx, pool.Id, testAddr(byte(0xB0+i)), quoteDenom, 1_000_000000)
	}

	// a target between the first and second committed entries interpolates
	// without touching the pending state
	now := startTime.Add(300 * time.Second).Unix()
	target := startTime.Add(150 * time.Second).Unix()
	_, price, err := k.Observe(ctx, pool.Id, uint64(now-target))
	require.NoError(t, err)
	require.True(t, price.IsPositive())
	require.True(t, price.LTE(math.LegacyOneDec()))
}

// TestObserve_WrappedRingRejectsDeepLookback tests eviction on a ring that
// has lapped its capacity: lookbacks inside the surviving window answer,
// lookbacks past the evicted head fail
func TestObserve_WrappedRingRejectsDeepLookback(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)

	// a genesis state whose counter has already run past the capacity:
	// only the trailing window of entries survives, the head is evicted
	count := uint64(types.ObservationCapacity) + 5
	observations := make([]types.Observation, types.ObservationCapacity)
	for i := range observations {
		unit := math.LegacyOneDec()
		observations[i] = types.Observation{
			Timestamp:   startTime.Unix() + int64(i)*60,
			BaseAmount:  unit,
			QuoteAmount: unit,
			BaseSma:     unit,
			QuoteSma:    unit,
		}
	}

	pool := types.Pool{
		Id:             1,
		BaseDenom:      baseDenom,
		QuoteDenom:     quoteDenom,
		BasePrecision:  assetPrecision,
		QuotePrecision: assetPrecision,
		BaseReserve:    math.ZeroInt(),
		QuoteReserve:   math.ZeroInt(),
		AmpGamma: types.NewAmpGamma(
			math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"), startTime.Unix()),
		Params:           testPoolParams(),
		PriceScale:       math.LegacyOneDec(),
		LastPrice:        math.LegacyOneDec(),
		OraclePrice:      math.LegacyOneDec(),
		XcpProfit:        math.LegacyOneDec(),
		XcpProfitReal:    math.LegacyOneDec(),
		TotalShares:      math.ZeroInt(),
		CumulativePrice0: math.LegacyZeroDec(),
		CumulativePrice1: math.LegacyZeroDec(),
	}

	require.NoError(t, k.InitGenesis(ctx, types.GenesisState{
		Params:            types.DefaultParams(),
		NextPoolId:        2,
		Pools:             []types.Pool{pool},
		ObservationStates: []types.ObservationState{{PoolId: pool.Id, Count: count}},
		Observations:      map[uint64][]types.Observation{pool.Id: observations},
		Precisions: []types.RegisteredPrecision{
			{Denom: baseDenom, Decimals: assetPrecision},
			{Denom: quoteDenom, Decimals: assetPrecision},
		},
	}))

	oldest := observations[0].Timestamp
	newest := observations[len(observations)-1].Timestamp
	ctx = ctx.WithBlockTime(time.Unix(newest, 0).UTC())

	// a lookback inside the surviving window interpolates normally
	_, price, err := k.Observe(ctx, pool.Id, uint64(newest-oldest-90))
	require.NoError(t, err)
	require.True(t, price.IsPositive())

	// past the evicted head the ring refuses to answer
	_, _, err = k.Observe(ctx, pool.Id, uint64(newest-oldest+60))
	require.Error(t, err)
	require.True(t, types.ErrObservationTooOld.Is(err))
}
