package pclmath

import (
	"cosmossdk.io/math"
)

// FeeRate interpolates the swap fee between midFee for a balanced pool and
// outFee for a fully imbalanced one:
//
//	K = feeGamma / (feeGamma + 1 - (2*geomean(x)/sum(x))^2)
//	f = midFee*K + outFee*(1 - K)
//
// A very large feeGamma pins the rate at midFee; as balance degrades K
// decays toward zero and the rate approaches outFee.
func FeeRate(midFee, outFee, feeGamma, x0, x1 math.LegacyDec) math.LegacyDec {
	sum := x0.Add(x1)
	if !sum.IsPositive() {
		return outFee
	}
	gm, err := GeometricMean(x0, x1)
	if err != nil {
		return outFee
	}
	balance := gm.Mul(two).Quo(sum)
	balancePow2 := balance.Mul(balance)

	denom := feeGamma.Add(one).Sub(balancePow2)
	if !denom.IsPositive() {
		return midFee
	}
	k := feeGamma.Quo(denom)
	return midFee.Mul(k).Add(outFee.Mul(one.Sub(k)))
}

// ProvideFeeRate is the rate levied on the swap-like portion of an
// imbalanced deposit. For a two-coin pool it is half the swap fee rate at
// the post-deposit balances.
func ProvideFeeRate(midFee, outFee, feeGamma, x0, x1 math.LegacyDec) math.LegacyDec {
	return FeeRate(midFee, outFee, feeGamma, x0, x1).Quo(two)
}
