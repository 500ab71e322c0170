package pclmath

import (
	"cosmossdk.io/math"

	"github.com/helix-chain/helix/x/clamm/types"
)

// LegacyDec is natively signed, so the signed-arithmetic surface the
// re-peg gradient needs collapses into a few helpers. Keeping them here
// fences the only code paths allowed to go negative; everything else in
// the kernel stays in the non-negative range.

// Diff returns |a - b|
func Diff(a, b math.LegacyDec) math.LegacyDec {
	return a.Sub(b).Abs()
}

// ToUnsigned rejects negative values at the boundary back into the
// unsigned world of reserves and prices.
func ToUnsigned(d math.LegacyDec) (math.LegacyDec, error) {
	if d.IsNegative() {
		return math.LegacyDec{}, types.ErrOverflow.Wrapf("negative value %s where unsigned required", d)
	}
	return d, nil
}

// SignedPow raises a possibly negative base to a non-negative integer
// power.
func SignedPow(base math.LegacyDec, exp uint64) math.LegacyDec {
	res := one
	for i := uint64(0); i < exp; i++ {
		res = res.Mul(base)
	}
	return res
}
