package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/pclmath"
	"github.com/helix-chain/helix/x/clamm/types"
)

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)

	var poolID uint64 = 1
	if bz != nil {
		poolID = binary.BigEndian.Uint64(bz)
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, poolID+1)
	store.Set(types.PoolCountKey, next)

	return poolID
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.PoolCountKey, bz)
}

// PeekNextPoolID reads the counter without incrementing it
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// GetPool retrieves a pool by ID. Returns ErrPoolNotFound if absent.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := k.cdc.UnmarshalJSON(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return &pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.Pool) error {
	store := k.getStore(ctx)
	bz, err := k.cdc.MarshalJSON(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store.Set(types.PoolKey(pool.Id), bz)
	return nil
}

// GetPoolByAssets retrieves a pool by its canonical base/quote pair
func (k Keeper) GetPoolByAssets(ctx context.Context, base, quote string) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolByAssetsKey(base, quote))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("no pool for pair %s/%s", base, quote)
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

func (k Keeper) setPoolByAssets(ctx context.Context, base, quote string, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.PoolByAssetsKey(base, quote), bz)
}

// IteratePools iterates over all pools
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := k.cdc.UnmarshalJSON(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool in state
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// CreatePool instantiates a new concentrated-liquidity pair with empty
// reserves. Asset precisions are snapshotted from the registry here and
// never re-read. Liquidity arrives through ProvideLiquidity.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	baseDenom, quoteDenom string,
	amp, gamma math.LegacyDec,
	poolParams types.PoolParams,
	priceScale math.LegacyDec,
) (*types.Pool, error) {
	if _, err := k.GetPoolByAssets(ctx, baseDenom, quoteDenom); err == nil {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pair %s/%s", baseDenom, quoteDenom)
	}

	basePrecision, err := k.TokenDecimals(ctx, baseDenom)
	if err != nil {
		return nil, err
	}
	quotePrecision, err := k.TokenDecimals(ctx, quoteDenom)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	pool := &types.Pool{
		Id:                k.GetNextPoolID(ctx),
		BaseDenom:         baseDenom,
		QuoteDenom:        quoteDenom,
		BasePrecision:     basePrecision,
		QuotePrecision:    quotePrecision,
		BaseReserve:       math.ZeroInt(),
		QuoteReserve:      math.ZeroInt(),
		AmpGamma:          types.NewAmpGamma(amp, gamma, now),
		Params:            poolParams,
		PriceScale:        priceScale,
		LastPrice:         priceScale,
		OraclePrice:       priceScale,
		LastPriceUpdateTs: now,
		XcpProfit:         math.LegacyOneDec(),
		XcpProfitReal:     math.LegacyOneDec(),
		TotalShares:       math.ZeroInt(),
		CumulativePrice0:  math.LegacyZeroDec(),
		CumulativePrice1:  math.LegacyZeroDec(),
		BlockTimeLast:     now,
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}
	k.setPoolByAssets(ctx, baseDenom, quoteDenom, pool.Id)
	k.setObservationState(ctx, &types.ObservationState{PoolId: pool.Id})
	k.metrics.PoolsTotal.Inc()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeySender, creator.String()),
			sdk.NewAttribute(types.AttributeKeyBaseAsset, baseDenom),
			sdk.NewAttribute(types.AttributeKeyQuoteAsset, quoteDenom),
			sdk.NewAttribute(types.AttributeKeyPriceScale, priceScale.String()),
		),
	)

	k.Logger(sdkCtx).Info("created concentrated-liquidity pool",
		"pool_id", pool.Id,
		"base", baseDenom,
		"quote", quoteDenom,
		"price_scale", priceScale.String(),
	)

	return pool, nil
}

// AmpGammaNow returns the pool's effective amp and gamma at block time
func (k Keeper) AmpGammaNow(ctx context.Context, pool *types.Pool) (amp, gamma math.LegacyDec) {
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	return pool.AmpGamma.At(now)
}

// ComputeD reconstructs the invariant from the pool's current reserves
func (k Keeper) ComputeD(ctx context.Context, pool *types.Pool) (math.LegacyDec, error) {
	if !pool.BaseReserve.IsPositive() || !pool.QuoteReserve.IsPositive() {
		return math.LegacyZeroDec(), nil
	}
	xs := pool.ScaledReserves()
	amp, gamma := k.AmpGammaNow(ctx, pool)
	d, err := pclmath.NewtonD(xs[0], xs[1], amp, gamma)
	if err != nil {
		k.metrics.SolverIterationFailures.Inc()
		return math.LegacyDec{}, err
	}
	return d, nil
}

// accumulateCumulativePrices advances the TWAP accumulators by the time
// elapsed since the last state change. The accumulators are modular; the
// consumer differences two snapshots.
func (k Keeper) accumulateCumulativePrices(ctx context.Context, pool *types.Pool) {
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	dt := now - pool.BlockTimeLast
	if dt <= 0 {
		return
	}
	if pool.LastPrice.IsPositive() {
		elapsed := math.LegacyNewDec(dt)
		pool.CumulativePrice0 = pool.CumulativePrice0.Add(pool.LastPrice.Mul(elapsed))
		pool.CumulativePrice1 = pool.CumulativePrice1.Add(math.LegacyOneDec().Quo(pool.LastPrice).Mul(elapsed))
	}
	pool.BlockTimeLast = now
}
