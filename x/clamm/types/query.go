package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer defines the module's query server interface. Handlers are
// read-only: they never write to the store.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Owner(context.Context, *QueryOwnerRequest) (*QueryOwnerResponse, error)
	Pair(context.Context, *QueryPairRequest) (*QueryPairResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Share(context.Context, *QueryShareRequest) (*QueryShareResponse, error)
	Simulation(context.Context, *QuerySimulationRequest) (*QuerySimulationResponse, error)
	ReverseSimulation(context.Context, *QueryReverseSimulationRequest) (*QueryReverseSimulationResponse, error)
	CumulativePrices(context.Context, *QueryCumulativePricesRequest) (*QueryCumulativePricesResponse, error)
	ComputeD(context.Context, *QueryComputeDRequest) (*QueryComputeDResponse, error)
	LpPrice(context.Context, *QueryLpPriceRequest) (*QueryLpPriceResponse, error)
	Observe(context.Context, *QueryObserveRequest) (*QueryObserveResponse, error)
}

// QueryParamsRequest requests the module parameters
type QueryParamsRequest struct{}

// QueryParamsResponse carries the module parameters
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryOwnerRequest requests the module owner
type QueryOwnerRequest struct{}

// QueryOwnerResponse carries the owner and any pending proposal
type QueryOwnerResponse struct {
	Owner    string             `json:"owner"`
	Proposal *OwnershipProposal `json:"proposal,omitempty"`
}

// QueryPairRequest requests static pair metadata
type QueryPairRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPairResponse carries static pair metadata
type QueryPairResponse struct {
	BaseDenom  string `json:"base_denom"`
	QuoteDenom string `json:"quote_denom"`
	LpDenom    string `json:"lp_denom"`
	PairType   string `json:"pair_type"`
}

// QueryPoolRequest requests current reserves and share supply
type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPoolResponse carries current reserves and share supply
type QueryPoolResponse struct {
	Assets     []Asset  `json:"assets"`
	TotalShare math.Int `json:"total_share"`
}

// QueryShareRequest asks what the given LP amount would redeem
type QueryShareRequest struct {
	PoolId uint64   `json:"pool_id"`
	Amount math.Int `json:"amount"`
}

// QueryShareResponse carries the pro-rata redemption vector
type QueryShareResponse struct {
	Assets []Asset `json:"assets"`
}

// QuerySimulationRequest simulates a swap without executing it
type QuerySimulationRequest struct {
	PoolId        uint64 `json:"pool_id"`
	OfferAsset    Asset  `json:"offer_asset"`
	AskAssetDenom string `json:"ask_asset_denom,omitempty"`
}

// QuerySimulationResponse carries the simulated swap result
type QuerySimulationResponse struct {
	ReturnAmount     math.Int `json:"return_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

// QueryReverseSimulationRequest solves for the offer amount yielding the
// requested ask amount
type QueryReverseSimulationRequest struct {
	PoolId          uint64 `json:"pool_id"`
	AskAsset        Asset  `json:"ask_asset"`
	OfferAssetDenom string `json:"offer_asset_denom,omitempty"`
}

// QueryReverseSimulationResponse carries the reverse simulation result
type QueryReverseSimulationResponse struct {
	OfferAmount      math.Int `json:"offer_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

// QueryCumulativePricesRequest requests the TWAP accumulators
type QueryCumulativePricesRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryCumulativePricesResponse carries the TWAP accumulators
type QueryCumulativePricesResponse struct {
	Assets           []Asset        `json:"assets"`
	TotalShare       math.Int       `json:"total_share"`
	CumulativePrice0 math.LegacyDec `json:"cumulative_price_0"`
	CumulativePrice1 math.LegacyDec `json:"cumulative_price_1"`
}

// QueryComputeDRequest requests the current invariant
type QueryComputeDRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryComputeDResponse carries the current invariant
type QueryComputeDResponse struct {
	D math.LegacyDec `json:"d"`
}

// QueryLpPriceRequest requests the virtual LP price
type QueryLpPriceRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryLpPriceResponse carries the virtual price of one LP share in base
type QueryLpPriceResponse struct {
	LpPrice math.LegacyDec `json:"lp_price"`
}

// QueryObserveRequest requests an interpolated oracle price
type QueryObserveRequest struct {
	PoolId     uint64 `json:"pool_id"`
	SecondsAgo uint64 `json:"seconds_ago"`
}

// QueryObserveResponse carries the interpolated oracle price
type QueryObserveResponse struct {
	Timestamp int64          `json:"timestamp"`
	Price     math.LegacyDec `json:"price"`
}
