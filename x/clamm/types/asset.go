package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Asset is an amount of a specific pool asset in on-wire integer units.
type Asset struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// NewAsset creates an Asset
func NewAsset(denom string, amount math.Int) Asset {
	return Asset{Denom: denom, Amount: amount}
}

// Validate checks the denom and that the amount is non-negative
func (a Asset) Validate() error {
	if err := sdk.ValidateDenom(a.Denom); err != nil {
		return ErrValidation.Wrapf("invalid denom %q: %v", a.Denom, err)
	}
	if a.Amount.IsNil() || a.Amount.IsNegative() {
		return ErrValidation.Wrapf("invalid amount for %s", a.Denom)
	}
	return nil
}

// Coin converts the asset to an sdk.Coin
func (a Asset) Coin() sdk.Coin {
	return sdk.NewCoin(a.Denom, a.Amount)
}

// ValidateAssetSet checks a provide vector: one or two distinct assets,
// each valid, with at least one positive amount.
func ValidateAssetSet(assets []Asset) error {
	if len(assets) == 0 || len(assets) > NCoins {
		return ErrValidation.Wrapf("expected 1 or %d assets, got %d", NCoins, len(assets))
	}
	if len(assets) == NCoins && assets[0].Denom == assets[1].Denom {
		return ErrValidation.Wrapf("duplicate asset %s", assets[0].Denom)
	}
	positive := false
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return err
		}
		if a.Amount.IsPositive() {
			positive = true
		}
	}
	if !positive {
		return ErrValidation.Wrap("all deposit amounts are zero")
	}
	return nil
}

// NormalizeAmount converts an on-wire integer amount into a decimal with
// the asset's registered precision.
func NormalizeAmount(amount math.Int, precision uint8) math.LegacyDec {
	return math.LegacyNewDecFromIntWithPrec(amount, int64(precision))
}

// DenormalizeAmount converts a normalized decimal back to on-wire units.
// Truncation rounds toward the pool; outputs must never round up.
func DenormalizeAmount(amount math.LegacyDec, precision uint8) math.Int {
	scale := math.LegacyNewDec(10).Power(uint64(precision))
	return amount.Mul(scale).TruncateInt()
}
