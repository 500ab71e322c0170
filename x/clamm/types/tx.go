package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the module's message server interface
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	ProvideLiquidity(context.Context, *MsgProvideLiquidity) (*MsgProvideLiquidityResponse, error)
	WithdrawLiquidity(context.Context, *MsgWithdrawLiquidity) (*MsgWithdrawLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	UpdateConfig(context.Context, *MsgUpdateConfig) (*MsgUpdateConfigResponse, error)
	ProposeNewOwner(context.Context, *MsgProposeNewOwner) (*MsgProposeNewOwnerResponse, error)
	DropOwnershipProposal(context.Context, *MsgDropOwnershipProposal) (*MsgDropOwnershipProposalResponse, error)
	ClaimOwnership(context.Context, *MsgClaimOwnership) (*MsgClaimOwnershipResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgCreatePoolResponse is the response for CreatePool
type MsgCreatePoolResponse struct {
	PoolId  uint64 `json:"pool_id"`
	LpDenom string `json:"lp_denom"`
}

// MsgProvideLiquidityResponse is the response for ProvideLiquidity
type MsgProvideLiquidityResponse struct {
	MintedShares math.Int `json:"minted_shares"`
}

// MsgWithdrawLiquidityResponse is the response for WithdrawLiquidity
type MsgWithdrawLiquidityResponse struct {
	RefundAssets []Asset `json:"refund_assets"`
}

// MsgSwapResponse is the response for Swap
type MsgSwapResponse struct {
	ReturnAmount     math.Int `json:"return_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

// MsgUpdateConfigResponse is the response for UpdateConfig
type MsgUpdateConfigResponse struct{}

// MsgProposeNewOwnerResponse is the response for ProposeNewOwner
type MsgProposeNewOwnerResponse struct{}

// MsgDropOwnershipProposalResponse is the response for DropOwnershipProposal
type MsgDropOwnershipProposalResponse struct{}

// MsgClaimOwnershipResponse is the response for ClaimOwnership
type MsgClaimOwnershipResponse struct{}

// MsgUpdateParamsResponse is the response for UpdateParams
type MsgUpdateParamsResponse struct{}

// OwnershipProposal is the pending two-step ownership transfer.
type OwnershipProposal struct {
	Owner string `json:"owner"`
	// Ttl is the unix time after which the proposal can no longer be
	// claimed.
	Ttl int64 `json:"ttl"`
}
