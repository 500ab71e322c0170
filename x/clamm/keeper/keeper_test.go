package keeper_test

import (
	"bytes"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/helix-chain/helix/testutil/keeper"
	"github.com/helix-chain/helix/x/clamm/keeper"
	"github.com/helix-chain/helix/x/clamm/types"
)

const (
	baseDenom  = "ubase"
	quoteDenom = "uquote"

	assetPrecision = 6
)

// startTime anchors block time so tests can advance it deterministically
var startTime = time.Unix(1_700_000_000, 0).UTC()

func testAddr(b byte) sdk.AccAddress {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20))
}

func testPoolParams() types.PoolParams {
	return types.PoolParams{
		MidFee:               math.LegacyMustNewDecFromStr("0.0026"),
		OutFee:               math.LegacyMustNewDecFromStr("0.0045"),
		FeeGamma:             math.LegacyMustNewDecFromStr("0.00023"),
		RepegProfitThreshold: math.LegacyMustNewDecFromStr("0.000002"),
		MinPriceScaleDelta:   math.LegacyMustNewDecFromStr("0.000146"),
		MaHalfTime:           600,
	}
}

// setupPool registers both asset precisions and creates an empty pool at
// the given price scale
func setupPool(t *testing.T, k keeper.Keeper, ctx sdk.Context, priceScale string, params types.PoolParams) *types.Pool {
	t.Helper()
	require.NoError(t, k.SetTokenDecimals(ctx, baseDenom, assetPrecision))
	require.NoError(t, k.SetTokenDecimals(ctx, quoteDenom, assetPrecision))

	pool, err := k.CreatePool(
		ctx, testAddr(0xCC), baseDenom, quoteDenom,
		math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"),
		params, math.LegacyMustNewDecFromStr(priceScale),
	)
	require.NoError(t, err)
	return pool
}

// provideInitial funds the depositor and seeds the pool with both assets
func provideInitial(
	t *testing.T,
	k keeper.Keeper,
	bank *keepertest.MockBankKeeper,
	ctx sdk.Context,
	poolID uint64,
	depositor sdk.AccAddress,
	baseAmount, quoteAmount int64,
) math.Int {
	t.Helper()
	deposit := sdk.NewCoins(
		sdk.NewInt64Coin(baseDenom, baseAmount),
		sdk.NewInt64Coin(quoteDenom, quoteAmount),
	)
	bank.FundAccount(depositor, deposit)

	minted, err := k.ProvideLiquidity(ctx, depositor, poolID, []types.Asset{
		types.NewAsset(baseDenom, math.NewInt(baseAmount)),
		types.NewAsset(quoteDenom, math.NewInt(quoteAmount)),
	}, nil, false, depositor, nil)
	require.NoError(t, err)
	return minted
}

// swapIn funds the trader with the offer coin and swaps it against the pool
func swapIn(
	t *testing.T,
	k keeper.Keeper,
	bank *keepertest.MockBankKeeper,
	ctx sdk.Context,
	poolID uint64,
	trader sdk.AccAddress,
	offerDenom string,
	amount int64,
) (math.Int, math.Int, math.Int) {
	t.Helper()
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewInt64Coin(offerDenom, amount)))
	returnAmount, spreadAmount, commission, err := k.Swap(
		ctx, trader, poolID, types.NewAsset(offerDenom, math.NewInt(amount)),
		"", nil, nil, nil,
	)
	require.NoError(t, err)
	return returnAmount, spreadAmount, commission
}

func requireDecEq(t *testing.T, expected, actual math.LegacyDec, tolerance string) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	require.True(t, diff.LTE(math.LegacyMustNewDecFromStr(tolerance)),
		"expected %s, got %s (diff %s)", expected, actual, diff)
}
