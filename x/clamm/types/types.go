package types

import (
	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "clamm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

const (
	// NCoins is the number of assets in every pool. The invariant math is
	// written for exactly two coordinates.
	NCoins = 2

	// LpDecimals is the decimal precision of LP share denoms.
	LpDecimals = 6

	// MinimumLiquidity is the amount of LP shares (in LpDecimals units)
	// locked in the module account forever on the initial provide.
	MinimumLiquidity = 1000

	// ObservationCapacity is the fixed size of the per-pool observation
	// ring buffer used by the Observe query.
	ObservationCapacity = 3000

	// MaxAssetDecimals bounds the precision a pool asset may declare.
	MaxAssetDecimals = 18

	// MinAmpChangingTime is the minimum window, in seconds, over which an
	// amp/gamma promotion may run.
	MinAmpChangingTime = 86400
)

// Newton solver limits. Both solvers stop when the relative step drops
// below NewtonTolerance, or below NewtonNoiseFloor once fixed-point
// rounding dominates the update, and fail after NewtonMaxIterations
// steps.
const (
	NewtonMaxIterations = 64
)

var (
	// NewtonTolerance is the relative convergence bound 1e-16.
	NewtonTolerance = math.LegacyNewDecWithPrec(1, 16)

	// NewtonNoiseFloor is the smallest meaningful relative step. The
	// 18-digit evaluation of the invariant carries rounding noise that
	// can exceed NewtonTolerance when the reserves sit near balance, so
	// iteration also stops when successive iterates agree to one part
	// in 1e14.
	NewtonNoiseFloor = math.LegacyNewDecWithPrec(1, 14)

	// MinAmp and MaxAmp bound the amplification coefficient.
	MinAmp = math.LegacyOneDec()
	MaxAmp = math.LegacyNewDec(100_000)

	// MinGamma and MaxGamma bound the gamma coefficient.
	MinGamma = math.LegacyNewDecWithPrec(1, 8)
	MaxGamma = math.LegacyNewDecWithPrec(2, 2)

	// MaxAmpGammaChange caps a single promotion to a 10x move in either
	// direction for both amp and gamma.
	MaxAmpGammaChange = math.LegacyNewDec(10)

	// MinTradeSize is the smallest normalized amount treated as a real
	// trade. Per-side deposit imbalances below this skip the internal
	// price update on provides.
	MinTradeSize = math.LegacyNewDecWithPrec(1, 9)

	// DefaultMaxSpread applies when a swap carries no explicit max_spread.
	DefaultMaxSpread = math.LegacyNewDecWithPrec(5, 1)

	// MaxAllowedSpread caps user-supplied max_spread values.
	MaxAllowedSpread = math.LegacyNewDecWithPrec(5, 1)

	// DefaultSlippageTolerance applies to provides that omit one.
	DefaultSlippageTolerance = math.LegacyNewDecWithPrec(2, 2)

	// MaxSlippageTolerance caps user-supplied provide tolerances.
	MaxSlippageTolerance = math.LegacyNewDecWithPrec(5, 1)

	// MaxFeeShareBps caps the external fee share at 10%.
	MaxFeeShareBps = uint64(1000)
)
