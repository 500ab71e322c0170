package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/helix-chain/helix/testutil/keeper"
	"github.com/helix-chain/helix/x/clamm/keeper"
	"github.com/helix-chain/helix/x/clamm/types"
)

// TestMsgCreatePool tests pool creation through the message server
func TestMsgCreatePool(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	require.NoError(t, k.SetTokenDecimals(ctx, baseDenom, assetPrecision))
	require.NoError(t, k.SetTokenDecimals(ctx, quoteDenom, assetPrecision))

	resp, err := srv.CreatePool(ctx, &types.MsgCreatePool{
		Creator:    testAddr(0xCC).String(),
		BaseDenom:  baseDenom,
		QuoteDenom: quoteDenom,
		Amp:        math.LegacyNewDec(40),
		Gamma:      math.LegacyMustNewDecFromStr("0.000145"),
		PoolParams: testPoolParams(),
		PriceScale: math.LegacyNewDec(2),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.PoolId)
	require.NotEmpty(t, resp.LpDenom)

	pool, err := k.GetPool(ctx, resp.PoolId)
	require.NoError(t, err)
	require.Equal(t, resp.LpDenom, pool.LpDenom())
}

// TestMsgCreatePool_InvalidMsg tests that stateless validation runs first
func TestMsgCreatePool_InvalidMsg(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	_, err := srv.CreatePool(ctx, &types.MsgCreatePool{
		Creator:    testAddr(0xCC).String(),
		BaseDenom:  baseDenom,
		QuoteDenom: baseDenom,
		Amp:        math.LegacyNewDec(40),
		Gamma:      math.LegacyMustNewDecFromStr("0.000145"),
		PoolParams: testPoolParams(),
		PriceScale: math.LegacyNewDec(1),
	})
	require.Error(t, err)
	require.True(t, types.ErrValidation.Is(err))
}

// TestMsgProvideAndSwap tests the full deposit-then-trade path through the
// message server
func TestMsgProvideAndSwap(t *testing.T) {
	k, bank, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())

	depositor := testAddr(0xAA)
	bank.FundAccount(depositor, sdk.NewCoins(
		sdk.NewInt64Coin(baseDenom, 100_000_000000),
		sdk.NewInt64Coin(quoteDenom, 100_000_000000),
	))
	provideResp, err := srv.ProvideLiquidity(ctx, &types.MsgProvideLiquidity{
		Sender: depositor.String(),
		PoolId: pool.Id,
		Assets: []types.Asset{
			types.NewAsset(baseDenom, math.NewInt(100_000_000000)),
			types.NewAsset(quoteDenom, math.NewInt(100_000_000000)),
		},
	})
	require.NoError(t, err)
	require.True(t, provideResp.MintedShares.IsPositive())

	trader := testAddr(0xBB)
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewInt64Coin(baseDenom, 100_000000)))
	swapResp, err := srv.Swap(ctx, &types.MsgSwap{
		Sender:     trader.String(),
		PoolId:     pool.Id,
		OfferAsset: types.NewAsset(baseDenom, math.NewInt(100_000000)),
	})
	require.NoError(t, err)
	require.True(t, swapResp.ReturnAmount.IsPositive())
	require.True(t, swapResp.CommissionAmount.IsPositive())

	withdrawResp, err := srv.WithdrawLiquidity(ctx, &types.MsgWithdrawLiquidity{
		Sender: depositor.String(),
		PoolId: pool.Id,
		Amount: provideResp.MintedShares.QuoRaw(10),
	})
	require.NoError(t, err)
	require.Len(t, withdrawResp.RefundAssets, 2)
}

// TestMsgUpdateConfig_Unauthorized tests the owner gate on config updates
func TestMsgUpdateConfig_Unauthorized(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())
	k.SetOwner(ctx, testAddr(0x01).String())

	newMid := math.LegacyMustNewDecFromStr("0.001")
	_, err := srv.UpdateConfig(ctx, &types.MsgUpdateConfig{
		Sender: testAddr(0x09).String(),
		PoolId: pool.Id,
		Update: &types.ConfigUpdate{MidFee: &newMid},
	})
	require.Error(t, err)
	require.True(t, types.ErrUnauthorized.Is(err))
}

// TestMsgUpdateConfig_Authority tests that the governance authority passes
// the owner gate
func TestMsgUpdateConfig_Authority(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())

	newMid := math.LegacyMustNewDecFromStr("0.001")
	_, err := srv.UpdateConfig(ctx, &types.MsgUpdateConfig{
		Sender: keepertest.TestAuthority,
		PoolId: pool.Id,
		Update: &types.ConfigUpdate{MidFee: &newMid},
	})
	require.NoError(t, err)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, pool.Params.MidFee.Equal(newMid))
}

// TestMsgUpdateConfig_FeeShareLifecycle tests enabling and disabling the
// external fee share
func TestMsgUpdateConfig_FeeShareLifecycle(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	owner := testAddr(0x01)
	k.SetOwner(ctx, owner.String())
	pool := setupPool(t, k, ctx, "1", testPoolParams())

	_, err := srv.UpdateConfig(ctx, &types.MsgUpdateConfig{
		Sender: owner.String(),
		PoolId: pool.Id,
		EnableFeeShare: &types.FeeShareConfig{
			Bps:       500,
			Recipient: testAddr(0xF1).String(),
		},
	})
	require.NoError(t, err)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.NotNil(t, pool.Params.FeeShare)
	require.Equal(t, uint64(500), pool.Params.FeeShare.Bps)

	_, err = srv.UpdateConfig(ctx, &types.MsgUpdateConfig{
		Sender:          owner.String(),
		PoolId:          pool.Id,
		DisableFeeShare: true,
	})
	require.NoError(t, err)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Nil(t, pool.Params.FeeShare)
}

// TestMsgUpdateConfig_ExactlyOneVariant tests the variant arity check
func TestMsgUpdateConfig_ExactlyOneVariant(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	pool := setupPool(t, k, ctx, "1", testPoolParams())

	newMid := math.LegacyMustNewDecFromStr("0.001")
	_, err := srv.UpdateConfig(ctx, &types.MsgUpdateConfig{
		Sender:               keepertest.TestAuthority,
		PoolId:               pool.Id,
		Update:               &types.ConfigUpdate{MidFee: &newMid},
		StopChangingAmpGamma: true,
	})
	require.Error(t, err)
	require.True(t, types.ErrValidation.Is(err))
}

// TestMsgOwnershipFlow tests the two-step transfer through the message
// server
func TestMsgOwnershipFlow(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	current := testAddr(0x01)
	next := testAddr(0x02)
	k.SetOwner(ctx, current.String())

	_, err := srv.ProposeNewOwner(ctx, &types.MsgProposeNewOwner{
		Sender:    current.String(),
		NewOwner:  next.String(),
		ExpiresIn: 3600,
	})
	require.NoError(t, err)

	ctx = ctx.WithBlockTime(startTime.Add(time.Minute))
	_, err = srv.ClaimOwnership(ctx, &types.MsgClaimOwnership{Sender: next.String()})
	require.NoError(t, err)
	require.Equal(t, next.String(), k.GetOwner(ctx))
}

// TestMsgDropOwnershipProposal tests cancelling through the message server
func TestMsgDropOwnershipProposal(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	current := testAddr(0x01)
	k.SetOwner(ctx, current.String())

	_, err := srv.ProposeNewOwner(ctx, &types.MsgProposeNewOwner{
		Sender:    current.String(),
		NewOwner:  testAddr(0x02).String(),
		ExpiresIn: 3600,
	})
	require.NoError(t, err)

	_, err = srv.DropOwnershipProposal(ctx, &types.MsgDropOwnershipProposal{
		Sender: current.String(),
	})
	require.NoError(t, err)

	_, err = srv.ClaimOwnership(ctx, &types.MsgClaimOwnership{Sender: testAddr(0x02).String()})
	require.Error(t, err)
}

// TestMsgUpdateParams tests the authority gate on module parameters
func TestMsgUpdateParams(t *testing.T) {
	k, _, ctx := keepertest.ClammKeeper(t)
	ctx = ctx.WithBlockTime(startTime)
	srv := keeper.NewMsgServerImpl(k)

	params := types.DefaultParams()
	params.ObservationWindow = 30

	_, err := srv.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: testAddr(0x09).String(),
		Params:    params,
	})
	require.Error(t, err)
	require.True(t, types.ErrUnauthorized.Is(err))

	_, err = srv.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: keepertest.TestAuthority,
		Params:    params,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(30), k.GetParams(ctx).ObservationWindow)
}
