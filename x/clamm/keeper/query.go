package keeper

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/math"

	"github.com/helix-chain/helix/x/clamm/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the module QueryServer
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (q queryServer) Params(ctx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	return &types.QueryParamsResponse{Params: q.GetParams(ctx)}, nil
}

func (q queryServer) Owner(ctx context.Context, req *types.QueryOwnerRequest) (*types.QueryOwnerResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	resp := &types.QueryOwnerResponse{Owner: q.GetOwner(ctx)}
	if proposal, err := q.GetOwnershipProposal(ctx); err == nil {
		resp.Proposal = proposal
	}
	return resp, nil
}

func (q queryServer) Pair(ctx context.Context, req *types.QueryPairRequest) (*types.QueryPairResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &types.QueryPairResponse{
		BaseDenom:  pool.BaseDenom,
		QuoteDenom: pool.QuoteDenom,
		LpDenom:    pool.LpDenom(),
		PairType:   "concentrated",
	}, nil
}

func (q queryServer) Pool(ctx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &types.QueryPoolResponse{
		Assets: []types.Asset{
			types.NewAsset(pool.BaseDenom, pool.BaseReserve),
			types.NewAsset(pool.QuoteDenom, pool.QuoteReserve),
		},
		TotalShare: pool.TotalShares,
	}, nil
}

func (q queryServer) Share(ctx context.Context, req *types.QueryShareRequest) (*types.QueryShareResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.Amount.IsNil() || req.Amount.IsNegative() {
		return nil, status.Error(codes.InvalidArgument, "amount must be non-negative")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	assets := make([]types.Asset, 0, types.NCoins)
	for i := 0; i < types.NCoins; i++ {
		out := math.ZeroInt()
		if pool.TotalShares.IsPositive() {
			out = pool.Reserve(i).Mul(req.Amount).Quo(pool.TotalShares)
		}
		assets = append(assets, types.NewAsset(pool.Denom(i), out))
	}
	return &types.QueryShareResponse{Assets: assets}, nil
}

func (q queryServer) Simulation(ctx context.Context, req *types.QuerySimulationRequest) (*types.QuerySimulationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	returnAmount, spreadAmount, commissionAmount, err := q.SimulateSwap(
		ctx, req.PoolId, req.OfferAsset, req.AskAssetDenom)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &types.QuerySimulationResponse{
		ReturnAmount:     returnAmount,
		SpreadAmount:     spreadAmount,
		CommissionAmount: commissionAmount,
	}, nil
}

func (q queryServer) ReverseSimulation(ctx context.Context, req *types.QueryReverseSimulationRequest) (*types.QueryReverseSimulationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	offerAmount, spreadAmount, commissionAmount, err := q.SimulateReverseSwap(
		ctx, req.PoolId, req.AskAsset, req.OfferAssetDenom)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &types.QueryReverseSimulationResponse{
		OfferAmount:      offerAmount,
		SpreadAmount:     spreadAmount,
		CommissionAmount: commissionAmount,
	}, nil
}

func (q queryServer) CumulativePrices(ctx context.Context, req *types.QueryCumulativePricesRequest) (*types.QueryCumulativePricesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &types.QueryCumulativePricesResponse{
		Assets: []types.Asset{
			types.NewAsset(pool.BaseDenom, pool.BaseReserve),
			types.NewAsset(pool.QuoteDenom, pool.QuoteReserve),
		},
		TotalShare:       pool.TotalShares,
		CumulativePrice0: pool.CumulativePrice0,
		CumulativePrice1: pool.CumulativePrice1,
	}, nil
}

func (q queryServer) ComputeD(ctx context.Context, req *types.QueryComputeDRequest) (*types.QueryComputeDResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	d, err := q.Keeper.ComputeD(ctx, pool)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryComputeDResponse{D: d}, nil
}

func (q queryServer) LpPrice(ctx context.Context, req *types.QueryLpPriceRequest) (*types.QueryLpPriceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if pool.TotalShares.IsZero() {
		return &types.QueryLpPriceResponse{LpPrice: math.LegacyZeroDec()}, nil
	}
	vp, err := q.virtualPriceAt(ctx, pool, pool.PriceScale)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryLpPriceResponse{LpPrice: vp}, nil
}

func (q queryServer) Observe(ctx context.Context, req *types.QueryObserveRequest) (*types.QueryObserveResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	ts, price, err := q.Keeper.Observe(ctx, req.PoolId, req.SecondsAgo)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &types.QueryObserveResponse{Timestamp: ts, Price: price}, nil
}
