package types

import (
	"cosmossdk.io/math"
)

// Observation is one committed snapshot of swap flow for the TWAP oracle.
// BaseAmount and QuoteAmount are the summed normalized swap volumes of the
// block the observation belongs to; the SMA fields average those volumes
// over the module's observation window.
type Observation struct {
	Timestamp   int64          `json:"timestamp"`
	BaseSma     math.LegacyDec `json:"base_sma"`
	BaseAmount  math.LegacyDec `json:"base_amount"`
	QuoteSma    math.LegacyDec `json:"quote_sma"`
	QuoteAmount math.LegacyDec `json:"quote_amount"`
}

// Price returns the observation price, quote volume per base volume
func (o Observation) Price() math.LegacyDec {
	if o.QuoteSma.IsZero() {
		return math.LegacyZeroDec()
	}
	return o.BaseSma.Quo(o.QuoteSma)
}

// ObservationState is the per-pool ring buffer bookkeeping. Committed
// observations live at monotonically increasing indices [0, Count);
// the ring slot of index i is i mod ObservationCapacity. Pending holds
// the accumulating observation of the current block, committed on the
// first swap of a later block.
type ObservationState struct {
	PoolId  uint64       `json:"pool_id"`
	Count   uint64       `json:"count"`
	Pending *Observation `json:"pending,omitempty"`
}

// OldestIndex returns the first monotonic index still present in the ring
func (s ObservationState) OldestIndex() uint64 {
	if s.Count <= ObservationCapacity {
		return 0
	}
	return s.Count - ObservationCapacity
}
