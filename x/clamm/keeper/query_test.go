package keeper_test

import (
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/helix-chain/helix/testutil/keeper"
	"github.com/helix-chain/helix/x/clamm/keeper"
	"github.com/helix-chain/helix/x/clamm/types"
)

// TestQueryParams tests the params query
func TestQueryParams(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	srv := keeper.NewQueryServerImpl(k)

	resp, err := srv.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams().ObservationWindow, resp.Params.ObservationWindow)

	_, err = srv.Params(ctx, nil)
	require.Error(t, err)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestQueryOwner tests the owner query with and without a pending proposal
func TestQueryOwner(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	resp, err := srv.Owner(ctx, &types.QueryOwnerRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Owner)
	require.Nil(t, resp.Proposal)

	owner := testAddr(0x01)
	k.SetOwner(ctx, owner.String())
	require.NoError(t, k.ProposeNewOwner(ctx, owner.String(), testAddr(0x02).String(), 3600))

	resp, err = srv.Owner(ctx, &types.QueryOwnerRequest{})
	require.NoError(t, err)
	require.Equal(t, owner.String(), resp.Owner)
	require.NotNil(t, resp.Proposal)
	require.Equal(t, testAddr(0x02).String(), resp.Proposal.Owner)
}

// TestQueryPair tests the static pair metadata query
func TestQueryPair(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())

	resp, err := srv.Pair(ctx, &types.QueryPairRequest{PoolId: pool.Id})
	require.NoError(t, err)
	require.Equal(t, baseDenom, resp.BaseDenom)
	require.Equal(t, quoteDenom, resp.QuoteDenom)
	require.Equal(t, pool.LpDenom(), resp.LpDenom)
	require.Equal(t, "concentrated", resp.PairType)

	_, err = srv.Pair(ctx, &types.QueryPairRequest{PoolId: 42})
	require.Error(t, err)
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestQueryPool tests the reserves and share supply query
func TestQueryPool(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	minted := provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	resp, err := srv.Pool(ctx, &types.QueryPoolRequest{PoolId: pool.Id})
	require.NoError(t, err)
	require.Len(t, resp.Assets, 2)
	require.Equal(t, baseDenom, resp.Assets[0].Denom)
	require.Equal(t, math.NewInt(100_000_000000), resp.Assets[0].Amount)
	require.Equal(t, quoteDenom, resp.Assets[1].Denom)
	require.Equal(t, math.NewInt(100_000_000000), resp.Assets[1].Amount)
	require.Equal(t, minted.AddRaw(types.MinimumLiquidity), resp.TotalShare)
}

// TestQueryShare tests the pro-rata redemption query
func TestQueryShare(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	pool, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)

	resp, err := srv.Share(ctx, &types.QueryShareRequest{
		PoolId: pool.Id,
		Amount: pool.TotalShares.QuoRaw(4),
	})
	require.NoError(t, err)
	require.Len(t, resp.Assets, 2)

	// a quarter of the shares redeems a quarter of each reserve, rounded down
	quarter := math.NewInt(100_000_000000).QuoRaw(4)
	require.True(t, resp.Assets[0].Amount.Sub(quarter).Abs().LTE(math.OneInt()))
	require.True(t, resp.Assets[1].Amount.Sub(quarter).Abs().LTE(math.OneInt()))

	// zero supply redeems nothing
	empty := setupPoolWithDenoms(t, k, ctx, "uother1", "uother2")
	resp, err = srv.Share(ctx, &types.QueryShareRequest{PoolId: empty.Id, Amount: math.NewInt(100)})
	require.NoError(t, err)
	require.True(t, resp.Assets[0].Amount.IsZero())
	require.True(t, resp.Assets[1].Amount.IsZero())
}

// TestQuerySimulation tests that the simulation query matches the keeper
// simulation exactly
func TestQuerySimulation(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	offer := types.NewAsset(baseDenom, math.NewInt(100_000000))
	resp, err := srv.Simulation(ctx, &types.QuerySimulationRequest{
		PoolId:     pool.Id,
		OfferAsset: offer,
	})
	require.NoError(t, err)

	wantReturn, wantSpread, wantCommission, err := k.SimulateSwap(ctx, pool.Id, offer, "")
	require.NoError(t, err)
	require.Equal(t, wantReturn, resp.ReturnAmount)
	require.Equal(t, wantSpread, resp.SpreadAmount)
	require.Equal(t, wantCommission, resp.CommissionAmount)
}

// TestQueryReverseSimulation tests the reverse simulation query
func TestQueryReverseSimulation(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	resp, err := srv.ReverseSimulation(ctx, &types.QueryReverseSimulationRequest{
		PoolId:   pool.Id,
		AskAsset: types.NewAsset(quoteDenom, math.NewInt(100_000000)),
	})
	require.NoError(t, err)
	require.True(t, resp.OfferAmount.GT(math.NewInt(100_000000)),
		"the offer must cover the ask plus fees")
}

// TestQueryCumulativePrices tests the TWAP accumulator query
func TestQueryCumulativePrices(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	resp, err := srv.CumulativePrices(ctx, &types.QueryCumulativePricesRequest{PoolId: pool.Id})
	require.NoError(t, err)
	require.Len(t, resp.Assets, 2)
	require.True(t, resp.CumulativePrice0.IsZero())
	require.True(t, resp.CumulativePrice1.IsZero())
}

// TestQueryComputeD tests the invariant query on a funded pool
func TestQueryComputeD(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	resp, err := srv.ComputeD(ctx, &types.QueryComputeDRequest{PoolId: pool.Id})
	require.NoError(t, err)
	requireDecEq(t, math.LegacyNewDec(200_000), resp.D, "0.000000001")
}

// TestQueryLpPrice tests the virtual price query
func TestQueryLpPrice(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())

	// an empty pool has no LP price
	resp, err := srv.LpPrice(ctx, &types.QueryLpPriceRequest{PoolId: pool.Id})
	require.NoError(t, err)
	require.True(t, resp.LpPrice.IsZero())

	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 100_000_000000)

	resp, err = srv.LpPrice(ctx, &types.QueryLpPriceRequest{PoolId: pool.Id})
	require.NoError(t, err)
	requireDecEq(t, math.LegacyOneDec(), resp.LpPrice, "0.000001")
}

// TestQueryObserve tests the oracle query delegation
func TestQueryObserve(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewQueryServerImpl(k)

	pool := setupPool(t, k, ctx, "2", testPoolParams())
	provideInitial(t, k, bank, ctx, pool.Id, testAddr(0xAA), 100_000_000000, 50_000_000000)

	resp, err := srv.Observe(ctx, &types.QueryObserveRequest{PoolId: pool.Id, SecondsAgo: 0})
	require.NoError(t, err)
	require.Equal(t, startTime.Unix(), resp.Timestamp)
	require.Equal(t, math.LegacyNewDec(2), resp.Price)

	_, err = srv.Observe(ctx, &types.QueryObserveRequest{PoolId: 42})
	require.Error(t, err)
	require.Equal(t, codes.NotFound, status.Code(err))
}

// setupPoolWithDenoms creates an empty unit-scale pool over the given pair
func setupPoolWithDenoms(t *testing.T, k keeper.Keeper, ctx sdk.Context, base, quote string) *types.Pool {
	t.Helper()
	require.NoError(t, k.SetTokenDecimals(ctx, base, assetPrecision))
	require.NoError(t, k.SetTokenDecimals(ctx, quote, assetPrecision))
	pool, err := k.CreatePool(
		ctx, testAddr(0xCC), base, quote,
		math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"),
		testPoolParams(), math.LegacyOneDec(),
	)
	require.NoError(t, err)
	return pool
}
