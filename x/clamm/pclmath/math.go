// Package pclmath is the fixed-point kernel of the concentrated-liquidity
// pair. Everything runs on math.LegacyDec (18 fractional digits, big.Int
// mantissa) so results are bit-for-bit deterministic across nodes; no path
// may touch floating point.
package pclmath

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/helix-chain/helix/x/clamm/types"
)

var (
	one  = math.LegacyOneDec()
	two  = math.LegacyNewDec(2)
	four = math.LegacyNewDec(4)

	// ln2 to 18 fractional digits, used by HalfPow
	ln2 = math.LegacyMustNewDecFromStr("0.693147180559945309")
)

// GeometricMean returns sqrt(x0 * x1)
func GeometricMean(x0, x1 math.LegacyDec) (math.LegacyDec, error) {
	root, err := x0.Mul(x1).ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, types.ErrOverflow.Wrapf("geometric mean: %v", err)
	}
	return root, nil
}

// invariantCoeffs holds the pieces of the blended invariant shared by the
// value and derivative evaluations at one iterate.
//
// With K0 = 4*x0*x1/D^2 and G = gamma + 1 - K0, the coefficient
// K = amp * gamma^2 * K0 / G^2 blends constant-sum (K0 -> 1) and
// constant-product (K0 -> 0) behavior. The invariant is
//
//	f(D) = K*D*(x0+x1) + x0*x1 - K*D^2 - D^2/4 = 0
type invariantCoeffs struct {
	k0  math.LegacyDec
	g1k math.LegacyDec
	k   math.LegacyDec
}

func coeffsAt(d, mul, ampGamma2 math.LegacyDec, gamma math.LegacyDec) (invariantCoeffs, error) {
	dPow2 := d.Mul(d)
	k0 := mul.Mul(four).Quo(dPow2)
	g1k := gamma.Add(one).Sub(k0)
	if !g1k.IsPositive() {
		return invariantCoeffs{}, types.ErrConvergence.Wrap("iterate left the safe region")
	}
	k := ampGamma2.Mul(k0).Quo(g1k.Mul(g1k))
	return invariantCoeffs{k0: k0, g1k: g1k, k: k}, nil
}

// converged accepts an iterate when the update meets the relative
// tolerance, or when it has shrunk to the rounding floor of the 18-digit
// evaluation. Near balance G = gamma + 1 - K0 is a few times gamma and
// the invariant terms carry noise above the nominal tolerance; without
// the floor the iteration cycles on that noise instead of terminating.
func converged(prev, next math.LegacyDec) bool {
	diff := next.Sub(prev).Abs()
	limit := types.NewtonTolerance.Mul(next)
	if floor := types.NewtonNoiseFloor.Mul(next); floor.GT(limit) {
		limit = floor
	}
	return diff.LTE(limit)
}

// NewtonD solves the invariant D for scaled balances x0, x1. The quote
// coordinate must already be price-scale adjusted so both sides are in
// base units.
func NewtonD(x0, x1, amp, gamma math.LegacyDec) (math.LegacyDec, error) {
	if !x0.IsPositive() || !x1.IsPositive() {
		return math.LegacyDec{}, types.ErrInsufficientBalance.Wrap("newton_d requires positive balances")
	}

	mul := x0.Mul(x1)
	sum := x0.Add(x1)
	ampGamma2 := amp.Mul(gamma).Mul(gamma)

	gm, err := GeometricMean(x0, x1)
	if err != nil {
		return math.LegacyDec{}, err
	}
	d := gm.Mul(two)

	for i := 0; i < types.NewtonMaxIterations; i++ {
		c, err := coeffsAt(d, mul, ampGamma2, gamma)
		if err != nil {
			return math.LegacyDec{}, err
		}
		dPow2 := d.Mul(d)

		// f regrouped as K*D*(S-D) + (x0*x1 - D^2/4) so the large products
		// cancel symbolically instead of after rounding
		fVal := c.k.Mul(d).Mul(sum.Sub(d)).
			Add(mul.Sub(dPow2.Quo(four)))

		// dK/dD = -2*K * (1 + 2*K0/G) / D
		mul2 := one.Add(c.k0.Mul(two).Quo(c.g1k))
		kPrime := c.k.Mul(two).Mul(mul2).Quo(d).Neg()

		dfVal := kPrime.Mul(d).Mul(sum.Sub(d)).
			Add(c.k.Mul(sum.Sub(d.Mul(two)))).
			Sub(d.Quo(two))
		if dfVal.IsZero() {
			return math.LegacyDec{}, types.ErrConvergence.Wrap("zero derivative in newton_d")
		}

		dNew := d.Sub(fVal.Quo(dfVal))
		if !dNew.IsPositive() {
			return math.LegacyDec{}, types.ErrConvergence.Wrapf("non-positive iterate at step %d", i)
		}
		if converged(d, dNew) {
			return dNew, nil
		}
		d = dNew
	}
	return math.LegacyDec{}, types.ErrConvergence.Wrapf("newton_d did not converge in %d iterations", types.NewtonMaxIterations)
}

// NewtonY solves the counter-coordinate y given the fixed coordinate x and
// the invariant D. The caller supplies x already including the incoming
// swap amount, in scaled units.
func NewtonY(x, d, amp, gamma math.LegacyDec) (math.LegacyDec, error) {
	if !x.IsPositive() || !d.IsPositive() {
		return math.LegacyDec{}, types.ErrInsufficientBalance.Wrap("newton_y requires positive inputs")
	}

	dPow2 := d.Mul(d)
	ampGamma2 := amp.Mul(gamma).Mul(gamma)

	// The constant-product solution of the same D is the initial guess.
	y := dPow2.Quo(x.Mul(four))

	for i := 0; i < types.NewtonMaxIterations; i++ {
		mul := x.Mul(y)
		sum := x.Add(y)
		c, err := coeffsAt(d, mul, ampGamma2, gamma)
		if err != nil {
			return math.LegacyDec{}, err
		}

		// f regrouped as K*D*(S-D) + (x*y - D^2/4), see NewtonD
		fVal := c.k.Mul(d).Mul(sum.Sub(d)).
			Add(mul.Sub(dPow2.Quo(four)))

		// dK/dy = K * (1 + 2*K0/G) / y
		mul2 := one.Add(c.k0.Mul(two).Quo(c.g1k))
		kPrime := c.k.Mul(mul2).Quo(y)

		dfVal := kPrime.Mul(d).Mul(sum.Sub(d)).
			Add(c.k.Mul(d)).
			Add(x)
		if dfVal.IsZero() {
			return math.LegacyDec{}, types.ErrConvergence.Wrap("zero derivative in newton_y")
		}

		yNew := y.Sub(fVal.Quo(dfVal))
		if !yNew.IsPositive() {
			return math.LegacyDec{}, types.ErrConvergence.Wrapf("non-positive iterate at step %d", i)
		}
		if converged(y, yNew) {
			return yNew, nil
		}
		y = yNew
	}
	return math.LegacyDec{}, types.ErrConvergence.Wrapf("newton_y did not converge in %d iterations", types.NewtonMaxIterations)
}

// HalfPow returns 2^(-t) for t >= 0. The integer part halves directly;
// the fractional remainder runs through the exp(-f*ln2) series until the
// term falls below one ulp. Used for the EMA smoothing factor.
func HalfPow(t math.LegacyDec) math.LegacyDec {
	if t.IsNegative() {
		panic("HalfPow expects a non-negative exponent")
	}
	// 2^-60 is below one ulp of an 18-digit decimal.
	if t.GTE(math.LegacyNewDec(60)) {
		return math.LegacyZeroDec()
	}

	n := t.TruncateInt64()
	res := one
	for i := int64(0); i < n; i++ {
		res = res.Quo(two)
	}

	frac := t.Sub(math.LegacyNewDec(n))
	if frac.IsZero() {
		return res
	}

	// exp(-x) = sum_k (-x)^k / k!, x = frac*ln2 in [0, ln2)
	x := frac.Mul(ln2)
	term := one
	sum := one
	ulp := math.LegacyNewDecWithPrec(1, 18)
	for k := int64(1); k <= 32; k++ {
		term = term.Mul(x).QuoInt64(k)
		if k%2 == 1 {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
		if term.LT(ulp) {
			break
		}
	}
	return res.Mul(sum)
}

// Xcp returns the constant-product-equivalent value of the invariant,
// D / (2 * sqrt(priceScale)). The price scale is validated positive at
// every entry point, so the square root cannot fail.
func Xcp(d, priceScale math.LegacyDec) math.LegacyDec {
	root, err := priceScale.ApproxSqrt()
	if err != nil {
		panic(fmt.Sprintf("xcp: sqrt of price scale %s: %v", priceScale, err))
	}
	return d.Quo(root.Mul(two))
}
