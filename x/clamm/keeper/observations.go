package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

func (k Keeper) getObservationState(ctx context.Context, poolID uint64) (*types.ObservationState, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ObservationStateKey(poolID))
	if bz == nil {
		return &types.ObservationState{PoolId: poolID}, nil
	}
	var state types.ObservationState
	if err := k.cdc.UnmarshalJSON(bz, &state); err != nil {
		return nil, fmt.Errorf("unmarshal observation state for pool %d: %w", poolID, err)
	}
	return &state, nil
}

func (k Keeper) setObservationState(ctx context.Context, state *types.ObservationState) {
	store := k.getStore(ctx)
	bz, err := k.cdc.MarshalJSON(state)
	if err != nil {
		panic(fmt.Errorf("marshal observation state for pool %d: %w", state.PoolId, err))
	}
	store.Set(types.ObservationStateKey(state.PoolId), bz)
}

func (k Keeper) getObservation(ctx context.Context, poolID, index uint64) (*types.Observation, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ObservationKey(poolID, index))
	if bz == nil {
		return nil, types.ErrBufferEmpty.Wrapf("pool %d has no observation at index %d", poolID, index)
	}
	var obs types.Observation
	if err := k.cdc.UnmarshalJSON(bz, &obs); err != nil {
		return nil, fmt.Errorf("unmarshal observation %d for pool %d: %w", index, poolID, err)
	}
	return &obs, nil
}

func (k Keeper) setObservation(ctx context.Context, poolID, index uint64, obs *types.Observation) {
	store := k.getStore(ctx)
	bz, err := k.cdc.MarshalJSON(obs)
	if err != nil {
		panic(fmt.Errorf("marshal observation for pool %d: %w", poolID, err))
	}
	store.Set(types.ObservationKey(poolID, index), bz)
}

// recordSwapObservation folds one swap's volumes into the pool's pending
// observation, committing the previous block's pending entry first when a
// new block has started.
func (k Keeper) recordSwapObservation(
	ctx context.Context,
	pool *types.Pool,
	offerIdx int,
	offerNorm, returnNorm math.LegacyDec,
) {
	var baseVol, quoteVol math.LegacyDec
	if offerIdx == 0 {
		baseVol, quoteVol = offerNorm, returnNorm
	} else {
		baseVol, quoteVol = returnNorm, offerNorm
	}
	k.recordObservation(ctx, pool.Id, baseVol, quoteVol)
}

// recordObservation accumulates normalized base and quote volumes into the
// pending observation of the current block
func (k Keeper) recordObservation(ctx context.Context, poolID uint64, baseVol, quoteVol math.LegacyDec) {
	if !baseVol.IsPositive() || !quoteVol.IsPositive() {
		return
	}
	state, err := k.getObservationState(ctx, poolID)
	if err != nil {
		panic(err)
	}
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()

	if state.Pending != nil && state.Pending.Timestamp < now {
		k.commitPending(ctx, state)
	}
	if state.Pending == nil {
		state.Pending = &types.Observation{
			Timestamp:   now,
			BaseAmount:  math.LegacyZeroDec(),
			QuoteAmount: math.LegacyZeroDec(),
			BaseSma:     math.LegacyZeroDec(),
			QuoteSma:    math.LegacyZeroDec(),
		}
	}
	state.Pending.BaseAmount = state.Pending.BaseAmount.Add(baseVol)
	state.Pending.QuoteAmount = state.Pending.QuoteAmount.Add(quoteVol)
	k.setObservationState(ctx, state)
}

// commitPending seals the pending observation into the ring with its SMA
// fields averaged over the trailing window
func (k Keeper) commitPending(ctx context.Context, state *types.ObservationState) {
	pending := state.Pending

	window := k.GetParams(ctx).ObservationWindow
	if window == 0 {
		window = 1
	}
	baseSum := pending.BaseAmount
	quoteSum := pending.QuoteAmount
	included := uint64(1)
	for i := uint64(1); i < window && i <= state.Count; i++ {
		idx := state.Count - i
		if idx < state.OldestIndex() {
			break
		}
		prior, err := k.getObservation(ctx, state.PoolId, idx)
		if err != nil {
			break
		}
		baseSum = baseSum.Add(prior.BaseAmount)
		quoteSum = quoteSum.Add(prior.QuoteAmount)
		included++
	}
	n := math.LegacyNewDec(int64(included))
	pending.BaseSma = baseSum.Quo(n)
	pending.QuoteSma = quoteSum.Quo(n)

	k.setObservation(ctx, state.PoolId, state.Count, pending)
	state.Count++
	state.Pending = nil
}

// amountsPrice is the raw price of an uncommitted observation
func amountsPrice(obs *types.Observation) math.LegacyDec {
	if obs.QuoteAmount.IsZero() {
		return math.LegacyZeroDec()
	}
	return obs.BaseAmount.Quo(obs.QuoteAmount)
}

// Observe answers a TWAP query at now minus secondsAgo. The ring is
// binary-searched for the bracketing observations and the price linearly
// interpolated between them. Queries past the newest entry clamp to it;
// queries past a wrapped ring's oldest entry fail with its timestamp.
func (k Keeper) Observe(ctx context.Context, poolID uint64, secondsAgo uint64) (int64, math.LegacyDec, error) {
	if _, err := k.GetPool(ctx, poolID); err != nil {
		return 0, math.LegacyDec{}, err
	}
	state, err := k.getObservationState(ctx, poolID)
	if err != nil {
		return 0, math.LegacyDec{}, err
	}
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	target := now - int64(secondsAgo)

	if state.Count == 0 {
		if state.Pending == nil {
			return 0, math.LegacyDec{}, types.ErrBufferEmpty.Wrapf("pool %d has no observations", poolID)
		}
		return state.Pending.Timestamp, amountsPrice(state.Pending), nil
	}

	newestIdx := state.Count - 1
	newest, err := k.getObservation(ctx, poolID, newestIdx)
	if err != nil {
		return 0, math.LegacyDec{}, err
	}

	if target >= newest.Timestamp {
		if state.Pending != nil && state.Pending.Timestamp > newest.Timestamp {
			// targets at or past the pending entry clamp to it; the ratio
			// must never extrapolate beyond the last recorded trade
			if target >= state.Pending.Timestamp {
				return state.Pending.Timestamp, amountsPrice(state.Pending), nil
			}
			return target, interpolate(
				newest.Timestamp, newest.Price(),
				state.Pending.Timestamp, amountsPrice(state.Pending),
				target,
			), nil
		}
		return newest.Timestamp, newest.Price(), nil
	}

	oldestIdx := state.OldestIndex()
	oldest, err := k.getObservation(ctx, poolID, oldestIdx)
	if err != nil {
		return 0, math.LegacyDec{}, err
	}
	if target <= oldest.Timestamp {
		if state.Count > types.ObservationCapacity {
			return 0, math.LegacyDec{}, types.ErrObservationTooOld.Wrapf(
				"oldest observation for pool %d is at %d", poolID, oldest.Timestamp)
		}
		return oldest.Timestamp, oldest.Price(), nil
	}

	// greatest index with timestamp <= target
	lo, hi := oldestIdx, newestIdx
	for lo < hi {
		mid := (lo + hi + 1) / 2
		obs, err := k.getObservation(ctx, poolID, mid)
		if err != nil {
			return 0, math.LegacyDec{}, err
		}
		if obs.Timestamp <= target {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	before, err := k.getObservation(ctx, poolID, lo)
	if err != nil {
		return 0, math.LegacyDec{}, err
	}
	if before.Timestamp == target || lo == newestIdx {
		return before.Timestamp, before.Price(), nil
	}
	after, err := k.getObservation(ctx, poolID, lo+1)
	if err != nil {
		return 0, math.LegacyDec{}, err
	}
	return target, interpolate(
		before.Timestamp, before.Price(),
		after.Timestamp, after.Price(),
		target,
	), nil
}

func interpolate(t1 int64, p1 math.LegacyDec, t2 int64, p2 math.LegacyDec, target int64) math.LegacyDec {
	if t2 <= t1 {
		return p2
	}
	ratio := math.LegacyNewDec(target - t1).Quo(math.LegacyNewDec(t2 - t1))
	return p1.Add(p2.Sub(p1).Mul(ratio))
}
