package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FeeShareConfig routes a fraction of every swap fee to an external address.
type FeeShareConfig struct {
	Bps       uint64 `json:"bps"`
	Recipient string `json:"recipient"`
}

// Validate checks the share is within bounds and the recipient parses
func (f FeeShareConfig) Validate() error {
	if f.Bps == 0 || f.Bps > MaxFeeShareBps {
		return ErrValidation.Wrapf("fee share bps must be in (0, %d], got %d", MaxFeeShareBps, f.Bps)
	}
	if _, err := sdk.AccAddressFromBech32(f.Recipient); err != nil {
		return ErrValidation.Wrapf("invalid fee share recipient: %v", err)
	}
	return nil
}

// PoolParams is the per-pool fee and repeg configuration. It is set at pool
// creation and mutated only through MsgUpdateConfig.
type PoolParams struct {
	MidFee               math.LegacyDec  `json:"mid_fee"`
	OutFee               math.LegacyDec  `json:"out_fee"`
	FeeGamma             math.LegacyDec  `json:"fee_gamma"`
	RepegProfitThreshold math.LegacyDec  `json:"repeg_profit_threshold"`
	MinPriceScaleDelta   math.LegacyDec  `json:"min_price_scale_delta"`
	MaHalfTime           int64           `json:"ma_half_time"`
	FeeShare             *FeeShareConfig `json:"fee_share,omitempty"`
}

// Validate checks all fee parameters against their documented bounds
func (p PoolParams) Validate() error {
	one := math.LegacyOneDec()
	for _, check := range []struct {
		name string
		val  math.LegacyDec
	}{
		{"mid_fee", p.MidFee},
		{"out_fee", p.OutFee},
		{"fee_gamma", p.FeeGamma},
		{"repeg_profit_threshold", p.RepegProfitThreshold},
		{"min_price_scale_delta", p.MinPriceScaleDelta},
	} {
		if check.val.IsNil() || check.val.IsNegative() {
			return ErrValidation.Wrapf("%s must be non-negative", check.name)
		}
	}
	if p.MidFee.GT(one) || p.OutFee.GT(one) {
		return ErrValidation.Wrap("fees must be within [0, 1]")
	}
	if p.MidFee.GT(p.OutFee) {
		return ErrValidation.Wrapf("mid_fee %s exceeds out_fee %s", p.MidFee, p.OutFee)
	}
	if p.FeeGamma.IsZero() {
		return ErrValidation.Wrap("fee_gamma must be positive")
	}
	if p.MinPriceScaleDelta.GTE(one) {
		return ErrValidation.Wrap("min_price_scale_delta must be below 1")
	}
	if p.MaHalfTime <= 0 {
		return ErrValidation.Wrap("ma_half_time must be positive")
	}
	if p.FeeShare != nil {
		if err := p.FeeShare.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AmpGamma is the amplification/gamma schedule. Between InitialTime and
// FutureTime the effective values are linearly interpolated; outside the
// window they pin to the endpoints.
type AmpGamma struct {
	InitialAmp   math.LegacyDec `json:"initial_amp"`
	InitialGamma math.LegacyDec `json:"initial_gamma"`
	FutureAmp    math.LegacyDec `json:"future_amp"`
	FutureGamma  math.LegacyDec `json:"future_gamma"`
	InitialTime  int64          `json:"initial_time"`
	FutureTime   int64          `json:"future_time"`
}

// NewAmpGamma pins the schedule to a single point
func NewAmpGamma(amp, gamma math.LegacyDec, now int64) AmpGamma {
	return AmpGamma{
		InitialAmp:   amp,
		InitialGamma: gamma,
		FutureAmp:    amp,
		FutureGamma:  gamma,
		InitialTime:  now,
		FutureTime:   now,
	}
}

// Validate checks both endpoints against the global amp/gamma bounds
func (ag AmpGamma) Validate() error {
	for _, amp := range []math.LegacyDec{ag.InitialAmp, ag.FutureAmp} {
		if amp.IsNil() || amp.LT(MinAmp) || amp.GT(MaxAmp) {
			return ErrValidation.Wrapf("amp must be within [%s, %s]", MinAmp, MaxAmp)
		}
	}
	for _, gamma := range []math.LegacyDec{ag.InitialGamma, ag.FutureGamma} {
		if gamma.IsNil() || gamma.LT(MinGamma) || gamma.GT(MaxGamma) {
			return ErrValidation.Wrapf("gamma must be within [%s, %s]", MinGamma, MaxGamma)
		}
	}
	if ag.FutureTime < ag.InitialTime {
		return ErrValidation.Wrap("future_time precedes initial_time")
	}
	return nil
}

// At returns the effective amp and gamma at the given block time
func (ag AmpGamma) At(now int64) (amp, gamma math.LegacyDec) {
	switch {
	case now <= ag.InitialTime:
		return ag.InitialAmp, ag.InitialGamma
	case now >= ag.FutureTime:
		return ag.FutureAmp, ag.FutureGamma
	}
	total := math.LegacyNewDec(ag.FutureTime - ag.InitialTime)
	elapsed := math.LegacyNewDec(now - ag.InitialTime)
	ratio := elapsed.Quo(total)
	amp = ag.InitialAmp.Add(ag.FutureAmp.Sub(ag.InitialAmp).Mul(ratio))
	gamma = ag.InitialGamma.Add(ag.FutureGamma.Sub(ag.InitialGamma).Mul(ratio))
	return amp, gamma
}

// ValidatePromotion checks a promotion of the schedule toward the given
// future endpoint starting at now.
func (ag AmpGamma) ValidatePromotion(futureAmp, futureGamma math.LegacyDec, futureTime, now int64) error {
	if futureTime < now+MinAmpChangingTime {
		return ErrAmpGammaUpdate.Wrapf("future_time must be at least %d seconds ahead", MinAmpChangingTime)
	}
	next := AmpGamma{
		InitialAmp:   ag.InitialAmp,
		InitialGamma: ag.InitialGamma,
		FutureAmp:    futureAmp,
		FutureGamma:  futureGamma,
		InitialTime:  now,
		FutureTime:   futureTime,
	}
	if err := next.Validate(); err != nil {
		return err
	}
	curAmp, curGamma := ag.At(now)
	if ratioOutOfBounds(curAmp, futureAmp) {
		return ErrAmpGammaUpdate.Wrapf("amp change from %s to %s exceeds %sx", curAmp, futureAmp, MaxAmpGammaChange)
	}
	if ratioOutOfBounds(curGamma, futureGamma) {
		return ErrAmpGammaUpdate.Wrapf("gamma change from %s to %s exceeds %sx", curGamma, futureGamma, MaxAmpGammaChange)
	}
	return nil
}

func ratioOutOfBounds(current, future math.LegacyDec) bool {
	if current.IsZero() {
		return true
	}
	ratio := future.Quo(current)
	return ratio.GT(MaxAmpGammaChange) || ratio.LT(math.LegacyOneDec().Quo(MaxAmpGammaChange))
}

// Pool is the full state of one concentrated-liquidity pair.
type Pool struct {
	Id             uint64 `json:"id"`
	BaseDenom      string `json:"base_denom"`
	QuoteDenom     string `json:"quote_denom"`
	BasePrecision  uint8  `json:"base_precision"`
	QuotePrecision uint8  `json:"quote_precision"`

	BaseReserve  math.Int `json:"base_reserve"`
	QuoteReserve math.Int `json:"quote_reserve"`

	AmpGamma AmpGamma   `json:"amp_gamma"`
	Params   PoolParams `json:"params"`

	PriceScale        math.LegacyDec `json:"price_scale"`
	LastPrice         math.LegacyDec `json:"last_price"`
	OraclePrice       math.LegacyDec `json:"oracle_price"`
	LastPriceUpdateTs int64          `json:"last_price_update_ts"`

	XcpProfit     math.LegacyDec `json:"xcp_profit"`
	XcpProfitReal math.LegacyDec `json:"xcp_profit_real"`

	TotalShares math.Int `json:"total_shares"`

	CumulativePrice0 math.LegacyDec `json:"cumulative_price_0"`
	CumulativePrice1 math.LegacyDec `json:"cumulative_price_1"`
	BlockTimeLast    int64          `json:"block_time_last"`
}

// LpDenom returns the pool's LP share denom
func (p Pool) LpDenom() string {
	return LpDenom(p.Id)
}

// AssetIndex resolves a denom to its coordinate, 0 for base and 1 for quote
func (p Pool) AssetIndex(denom string) (int, error) {
	switch denom {
	case p.BaseDenom:
		return 0, nil
	case p.QuoteDenom:
		return 1, nil
	}
	return 0, ErrAssetMismatch.Wrapf("%s is not part of pair %s/%s", denom, p.BaseDenom, p.QuoteDenom)
}

// Reserve returns the on-wire reserve of the given coordinate
func (p Pool) Reserve(i int) math.Int {
	if i == 0 {
		return p.BaseReserve
	}
	return p.QuoteReserve
}

// SetReserve overwrites the on-wire reserve of the given coordinate
func (p *Pool) SetReserve(i int, amount math.Int) {
	if i == 0 {
		p.BaseReserve = amount
	} else {
		p.QuoteReserve = amount
	}
}

// Denom returns the denom of the given coordinate
func (p Pool) Denom(i int) string {
	if i == 0 {
		return p.BaseDenom
	}
	return p.QuoteDenom
}

// Precision returns the decimal precision of the given coordinate
func (p Pool) Precision(i int) uint8 {
	if i == 0 {
		return p.BasePrecision
	}
	return p.QuotePrecision
}

// NormalizedReserves returns both reserves as decimals in token units
func (p Pool) NormalizedReserves() [NCoins]math.LegacyDec {
	return [NCoins]math.LegacyDec{
		NormalizeAmount(p.BaseReserve, p.BasePrecision),
		NormalizeAmount(p.QuoteReserve, p.QuotePrecision),
	}
}

// ScaledReserves returns the solver coordinates: normalized reserves with
// the quote side pre-multiplied by the price scale.
func (p Pool) ScaledReserves() [NCoins]math.LegacyDec {
	xs := p.NormalizedReserves()
	xs[1] = xs[1].Mul(p.PriceScale)
	return xs
}

// Validate checks the structural pool invariants
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if p.BaseDenom == p.QuoteDenom {
		return ErrValidation.Wrap("pool assets must differ")
	}
	if err := sdk.ValidateDenom(p.BaseDenom); err != nil {
		return ErrValidation.Wrapf("invalid base denom: %v", err)
	}
	if err := sdk.ValidateDenom(p.QuoteDenom); err != nil {
		return ErrValidation.Wrapf("invalid quote denom: %v", err)
	}
	if p.BasePrecision > MaxAssetDecimals || p.QuotePrecision > MaxAssetDecimals {
		return ErrValidation.Wrapf("asset precision exceeds %d", MaxAssetDecimals)
	}
	if p.BaseReserve.IsNil() || p.BaseReserve.IsNegative() ||
		p.QuoteReserve.IsNil() || p.QuoteReserve.IsNegative() {
		return ErrValidation.Wrap("reserves must be non-negative")
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return ErrValidation.Wrap("total shares must be non-negative")
	}
	if !p.PriceScale.IsPositive() || !p.OraclePrice.IsPositive() || !p.LastPrice.IsPositive() {
		return ErrValidation.Wrap("price scale, oracle price and last price must be positive")
	}
	if p.XcpProfitReal.GT(p.XcpProfit) {
		return ErrValidation.Wrap("xcp_profit_real exceeds xcp_profit")
	}
	if err := p.AmpGamma.Validate(); err != nil {
		return err
	}
	return p.Params.Validate()
}
