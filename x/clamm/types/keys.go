package types

import (
	"encoding/binary"
	"fmt"
)

// Store key prefixes
var (
	// PoolKeyPrefix is the prefix for pool state records
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByAssetsKeyPrefix indexes pools by their ordered denom pair
	PoolByAssetsKeyPrefix = []byte{0x03}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x04}

	// OwnerKey is the key for the module owner address
	OwnerKey = []byte{0x05}

	// OwnershipProposalKey is the key for the pending ownership proposal
	OwnershipProposalKey = []byte{0x06}

	// ObservationStateKeyPrefix is the prefix for per-pool ring buffer state
	ObservationStateKeyPrefix = []byte{0x07}

	// ObservationKeyPrefix is the prefix for committed observations
	ObservationKeyPrefix = []byte{0x08}

	// PrecisionKeyPrefix is the prefix for registered asset precisions
	PrecisionKeyPrefix = []byte{0x09}
)

func uint64Bytes(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	return append(PoolKeyPrefix, uint64Bytes(poolID)...)
}

// PoolByAssetsKey returns the index key for a pool by its denom pair.
// The pair is keyed in pool order (base/quote), not lexicographically:
// the invariant math depends on the canonical asset order.
func PoolByAssetsKey(base, quote string) []byte {
	key := append(PoolByAssetsKeyPrefix, []byte(base)...)
	key = append(key, '/')
	return append(key, []byte(quote)...)
}

// ObservationStateKey returns the store key for a pool's buffer state
func ObservationStateKey(poolID uint64) []byte {
	return append(ObservationStateKeyPrefix, uint64Bytes(poolID)...)
}

// ObservationKey returns the store key for the ring slot holding the
// observation at the given monotonic index.
func ObservationKey(poolID uint64, index uint64) []byte {
	key := append(ObservationKeyPrefix, uint64Bytes(poolID)...)
	return append(key, uint64Bytes(index%ObservationCapacity)...)
}

// PrecisionKey returns the store key for a registered asset precision
func PrecisionKey(denom string) []byte {
	return append(PrecisionKeyPrefix, []byte(denom)...)
}

// LpDenom returns the LP share denom for a pool
func LpDenom(poolID uint64) string {
	return fmt.Sprintf("%s/pool/%d", ModuleName, poolID)
}
