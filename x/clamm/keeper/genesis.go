package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// InitGenesis restores module state from genesis
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	if genState.Owner != "" {
		k.SetOwner(ctx, genState.Owner)
	}
	k.SetNextPoolID(ctx, genState.NextPoolId)

	for i := range genState.Pools {
		pool := genState.Pools[i]
		if err := k.SetPool(ctx, &pool); err != nil {
			return err
		}
		k.setPoolByAssets(ctx, pool.BaseDenom, pool.QuoteDenom, pool.Id)
	}
	k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))

	for i := range genState.ObservationStates {
		state := genState.ObservationStates[i]
		k.setObservationState(ctx, &state)
	}
	for poolID, observations := range genState.Observations {
		state, err := k.getObservationState(ctx, poolID)
		if err != nil {
			return err
		}
		if uint64(len(observations)) > state.Count {
			return types.ErrValidation.Wrapf(
				"pool %d has %d observations but count %d", poolID, len(observations), state.Count)
		}
		// observations export oldest first; rebuild the ring at the tail
		// of the monotonic index range
		start := state.Count - uint64(len(observations))
		for offset := range observations {
			obs := observations[offset]
			k.setObservation(ctx, poolID, start+uint64(offset), &obs)
		}
	}

	for _, precision := range genState.Precisions {
		if err := k.SetTokenDecimals(ctx, precision.Denom, precision.Decimals); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis writes module state to genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	genState := &types.GenesisState{
		Params:       k.GetParams(ctx),
		Owner:        k.GetOwner(ctx),
		NextPoolId:   k.PeekNextPoolID(ctx),
		Pools:        pools,
		Observations: make(map[uint64][]types.Observation),
	}

	for _, pool := range pools {
		state, err := k.getObservationState(ctx, pool.Id)
		if err != nil {
			return nil, err
		}
		genState.ObservationStates = append(genState.ObservationStates, *state)

		var observations []types.Observation
		for idx := state.OldestIndex(); idx < state.Count; idx++ {
			obs, err := k.getObservation(ctx, pool.Id, idx)
			if err != nil {
				return nil, fmt.Errorf("export observations for pool %d: %w", pool.Id, err)
			}
			observations = append(observations, *obs)
		}
		if len(observations) > 0 {
			genState.Observations[pool.Id] = observations
		}
	}

	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PrecisionKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(types.PrecisionKeyPrefix):])
		genState.Precisions = append(genState.Precisions, types.RegisteredPrecision{
			Denom:    denom,
			Decimals: iterator.Value()[0],
		})
	}
	return genState, nil
}
