package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	yaml "gopkg.in/yaml.v2"
)

// Params are the module-level parameters shared by every pool.
type Params struct {
	// FeeAddress receives the maker portion of swap fees. Empty disables
	// maker fee routing.
	FeeAddress string `json:"fee_address"`

	// MakerFeeShare is the fraction of each swap fee routed to FeeAddress.
	MakerFeeShare math.LegacyDec `json:"maker_fee_share"`

	// ObservationWindow is the number of committed observations averaged
	// into the SMA fields of a newly committed observation.
	ObservationWindow uint64 `json:"observation_window"`
}

// DefaultParams returns the default module parameters
func DefaultParams() Params {
	return Params{
		FeeAddress:        "",
		MakerFeeShare:     math.LegacyNewDecWithPrec(5, 1), // 50% of swap fees
		ObservationWindow: 15,
	}
}

// Validate checks the module parameters
func (p Params) Validate() error {
	if p.FeeAddress != "" {
		if _, err := sdk.AccAddressFromBech32(p.FeeAddress); err != nil {
			return ErrValidation.Wrapf("invalid fee address: %v", err)
		}
	}
	if p.MakerFeeShare.IsNil() || p.MakerFeeShare.IsNegative() || p.MakerFeeShare.GT(math.LegacyOneDec()) {
		return ErrValidation.Wrap("maker_fee_share must be within [0, 1]")
	}
	if p.ObservationWindow == 0 || p.ObservationWindow > ObservationCapacity {
		return ErrValidation.Wrapf("observation_window must be in [1, %d]", ObservationCapacity)
	}
	return nil
}

// String implements the Stringer interface
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}
