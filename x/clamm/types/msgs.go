package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgProvideLiquidity{}
	_ sdk.Msg = &MsgWithdrawLiquidity{}
	_ sdk.Msg = &MsgSwap{}
	_ sdk.Msg = &MsgUpdateConfig{}
	_ sdk.Msg = &MsgProposeNewOwner{}
	_ sdk.Msg = &MsgDropOwnershipProposal{}
	_ sdk.Msg = &MsgClaimOwnership{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgCreatePool instantiates a new concentrated-liquidity pair. The first
// asset is the base, the second the quote; the order is canonical for the
// life of the pool.
type MsgCreatePool struct {
	Creator    string         `json:"creator"`
	BaseDenom  string         `json:"base_denom"`
	QuoteDenom string         `json:"quote_denom"`
	Amp        math.LegacyDec `json:"amp"`
	Gamma      math.LegacyDec `json:"gamma"`
	PoolParams PoolParams     `json:"pool_params"`
	PriceScale math.LegacyDec `json:"price_scale"`
}

// ValidateBasic performs stateless validation
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return ErrValidation.Wrapf("invalid creator address: %v", err)
	}
	if msg.BaseDenom == msg.QuoteDenom {
		return ErrValidation.Wrap("pool assets must differ")
	}
	if err := sdk.ValidateDenom(msg.BaseDenom); err != nil {
		return ErrValidation.Wrapf("invalid base denom: %v", err)
	}
	if err := sdk.ValidateDenom(msg.QuoteDenom); err != nil {
		return ErrValidation.Wrapf("invalid quote denom: %v", err)
	}
	if msg.PriceScale.IsNil() || !msg.PriceScale.IsPositive() {
		return ErrValidation.Wrap("price_scale must be positive")
	}
	if err := (AmpGamma{
		InitialAmp: msg.Amp, FutureAmp: msg.Amp,
		InitialGamma: msg.Gamma, FutureGamma: msg.Gamma,
	}).Validate(); err != nil {
		return err
	}
	return msg.PoolParams.Validate()
}

// MsgProvideLiquidity deposits one or two assets into a pool.
type MsgProvideLiquidity struct {
	Sender            string          `json:"sender"`
	PoolId            uint64          `json:"pool_id"`
	Assets            []Asset         `json:"assets"`
	SlippageTolerance *math.LegacyDec `json:"slippage_tolerance,omitempty"`
	AutoStake         bool            `json:"auto_stake,omitempty"`
	Receiver          string          `json:"receiver,omitempty"`
	MinLpToReceive    *math.Int       `json:"min_lp_to_receive,omitempty"`
}

// ValidateBasic performs stateless validation
func (msg MsgProvideLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	if msg.PoolId == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if err := ValidateAssetSet(msg.Assets); err != nil {
		return err
	}
	if msg.SlippageTolerance != nil {
		tol := *msg.SlippageTolerance
		if tol.IsNil() || tol.IsNegative() || tol.GT(MaxSlippageTolerance) {
			return ErrValidation.Wrapf("slippage tolerance must be within [0, %s]", MaxSlippageTolerance)
		}
	}
	if msg.Receiver != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Receiver); err != nil {
			return ErrValidation.Wrapf("invalid receiver address: %v", err)
		}
	}
	if msg.MinLpToReceive != nil && msg.MinLpToReceive.IsNegative() {
		return ErrValidation.Wrap("min_lp_to_receive cannot be negative")
	}
	return nil
}

// MsgWithdrawLiquidity burns LP shares for a pro-rata slice of reserves.
type MsgWithdrawLiquidity struct {
	Sender             string   `json:"sender"`
	PoolId             uint64   `json:"pool_id"`
	Amount             math.Int `json:"amount"`
	MinAssetsToReceive []Asset  `json:"min_assets_to_receive,omitempty"`
}

// ValidateBasic performs stateless validation
func (msg MsgWithdrawLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	if msg.PoolId == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return ErrValidation.Wrap("withdraw amount must be positive")
	}
	if len(msg.MinAssetsToReceive) > NCoins {
		return ErrValidation.Wrapf("at most %d minimum assets", NCoins)
	}
	for _, a := range msg.MinAssetsToReceive {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if len(msg.MinAssetsToReceive) == NCoins &&
		msg.MinAssetsToReceive[0].Denom == msg.MinAssetsToReceive[1].Denom {
		return ErrValidation.Wrap("duplicate minimum asset")
	}
	return nil
}

// MsgSwap trades the offer asset against the pool.
type MsgSwap struct {
	Sender        string          `json:"sender"`
	PoolId        uint64          `json:"pool_id"`
	OfferAsset    Asset           `json:"offer_asset"`
	AskAssetDenom string          `json:"ask_asset_denom,omitempty"`
	BeliefPrice   *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread     *math.LegacyDec `json:"max_spread,omitempty"`
	To            string          `json:"to,omitempty"`
}

// ValidateBasic performs stateless validation
func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	if msg.PoolId == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if err := msg.OfferAsset.Validate(); err != nil {
		return err
	}
	if !msg.OfferAsset.Amount.IsPositive() {
		return ErrValidation.Wrap("offer amount must be positive")
	}
	if msg.AskAssetDenom != "" {
		if err := sdk.ValidateDenom(msg.AskAssetDenom); err != nil {
			return ErrValidation.Wrapf("invalid ask denom: %v", err)
		}
		if msg.AskAssetDenom == msg.OfferAsset.Denom {
			return ErrValidation.Wrap("ask asset equals offer asset")
		}
	}
	if msg.BeliefPrice != nil && !msg.BeliefPrice.IsPositive() {
		return ErrValidation.Wrap("belief price must be positive")
	}
	if msg.MaxSpread != nil {
		if msg.MaxSpread.IsNegative() || msg.MaxSpread.GT(MaxAllowedSpread) {
			return ErrValidation.Wrapf("max spread must be within [0, %s]", MaxAllowedSpread)
		}
	}
	if msg.To != "" {
		if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
			return ErrValidation.Wrapf("invalid recipient address: %v", err)
		}
	}
	return nil
}

// ConfigUpdate adjusts fee and repeg parameters. Nil fields keep their
// current values.
type ConfigUpdate struct {
	MidFee               *math.LegacyDec `json:"mid_fee,omitempty"`
	OutFee               *math.LegacyDec `json:"out_fee,omitempty"`
	FeeGamma             *math.LegacyDec `json:"fee_gamma,omitempty"`
	RepegProfitThreshold *math.LegacyDec `json:"repeg_profit_threshold,omitempty"`
	MinPriceScaleDelta   *math.LegacyDec `json:"min_price_scale_delta,omitempty"`
	MaHalfTime           *int64          `json:"ma_half_time,omitempty"`
}

// ConfigPromote ramps amp and gamma toward new endpoints.
type ConfigPromote struct {
	FutureAmp   math.LegacyDec `json:"future_amp"`
	FutureGamma math.LegacyDec `json:"future_gamma"`
	FutureTime  int64          `json:"future_time"`
}

// MsgUpdateConfig is the governance-gated pool configuration message.
// Exactly one variant must be set.
type MsgUpdateConfig struct {
	Sender string `json:"sender"`
	PoolId uint64 `json:"pool_id"`

	Update               *ConfigUpdate   `json:"update,omitempty"`
	Promote              *ConfigPromote  `json:"promote,omitempty"`
	StopChangingAmpGamma bool            `json:"stop_changing_amp_gamma,omitempty"`
	EnableFeeShare       *FeeShareConfig `json:"enable_fee_share,omitempty"`
	DisableFeeShare      bool            `json:"disable_fee_share,omitempty"`
}

// ValidateBasic performs stateless validation
func (msg MsgUpdateConfig) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	if msg.PoolId == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	variants := 0
	if msg.Update != nil {
		variants++
	}
	if msg.Promote != nil {
		variants++
	}
	if msg.StopChangingAmpGamma {
		variants++
	}
	if msg.EnableFeeShare != nil {
		variants++
	}
	if msg.DisableFeeShare {
		variants++
	}
	if variants != 1 {
		return ErrValidation.Wrapf("exactly one config variant must be set, got %d", variants)
	}
	if msg.EnableFeeShare != nil {
		return msg.EnableFeeShare.Validate()
	}
	return nil
}

// MsgProposeNewOwner starts a two-step ownership transfer.
type MsgProposeNewOwner struct {
	Sender   string `json:"sender"`
	NewOwner string `json:"new_owner"`
	// ExpiresIn is the proposal TTL in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

// ValidateBasic performs stateless validation
func (msg MsgProposeNewOwner) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewOwner); err != nil {
		return ErrValidation.Wrapf("invalid new owner address: %v", err)
	}
	if msg.Sender == msg.NewOwner {
		return ErrOwnershipProposal.Wrap("new owner equals current sender")
	}
	if msg.ExpiresIn <= 0 {
		return ErrOwnershipProposal.Wrap("expires_in must be positive")
	}
	return nil
}

// MsgDropOwnershipProposal cancels the pending ownership proposal.
type MsgDropOwnershipProposal struct {
	Sender string `json:"sender"`
}

// ValidateBasic performs stateless validation
func (msg MsgDropOwnershipProposal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	return nil
}

// MsgClaimOwnership completes the two-step ownership transfer.
type MsgClaimOwnership struct {
	Sender string `json:"sender"`
}

// ValidateBasic performs stateless validation
func (msg MsgClaimOwnership) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	return nil
}

// MsgUpdateParams replaces the module parameters. Authority-gated.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// ValidateBasic performs stateless validation
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrValidation.Wrapf("invalid authority address: %v", err)
	}
	return msg.Params.Validate()
}
