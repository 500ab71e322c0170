package types

// RegisteredPrecision is one asset precision entry in genesis.
type RegisteredPrecision struct {
	Denom    string `json:"denom"`
	Decimals uint8  `json:"decimals"`
}

// GenesisState is the full module state.
type GenesisState struct {
	Params            Params                   `json:"params"`
	Owner             string                   `json:"owner,omitempty"`
	NextPoolId        uint64                   `json:"next_pool_id"`
	Pools             []Pool                   `json:"pools"`
	ObservationStates []ObservationState       `json:"observation_states"`
	Observations      map[uint64][]Observation `json:"observations,omitempty"`
	Precisions        []RegisteredPrecision    `json:"precisions"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		NextPoolId: 1,
		Pools:      []Pool{},
	}
}

// Validate performs genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPoolId == 0 {
		return ErrValidation.Wrap("next_pool_id cannot be zero")
	}
	seen := make(map[uint64]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if pool.Id >= gs.NextPoolId {
			return ErrValidation.Wrapf("pool id %d not below next_pool_id %d", pool.Id, gs.NextPoolId)
		}
		if _, ok := seen[pool.Id]; ok {
			return ErrValidation.Wrapf("duplicate pool id %d", pool.Id)
		}
		seen[pool.Id] = struct{}{}
	}
	for _, state := range gs.ObservationStates {
		if _, ok := seen[state.PoolId]; !ok {
			return ErrValidation.Wrapf("observation state for unknown pool %d", state.PoolId)
		}
	}
	seenDenoms := make(map[string]struct{}, len(gs.Precisions))
	for _, p := range gs.Precisions {
		if p.Decimals > MaxAssetDecimals {
			return ErrValidation.Wrapf("precision for %s exceeds %d", p.Denom, MaxAssetDecimals)
		}
		if _, ok := seenDenoms[p.Denom]; ok {
			return ErrValidation.Wrapf("duplicate precision entry for %s", p.Denom)
		}
		seenDenoms[p.Denom] = struct{}{}
	}
	return nil
}
