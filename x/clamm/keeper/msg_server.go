package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the module MsgServer
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, types.ErrValidation.Wrapf("invalid creator address: %v", err)
	}
	pool, err := m.Keeper.CreatePool(
		ctx, creator, msg.BaseDenom, msg.QuoteDenom,
		msg.Amp, msg.Gamma, msg.PoolParams, msg.PriceScale,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreatePoolResponse{PoolId: pool.Id, LpDenom: pool.LpDenom()}, nil
}

func (m msgServer) ProvideLiquidity(ctx context.Context, msg *types.MsgProvideLiquidity) (*types.MsgProvideLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, types.ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	receiver := sender
	if msg.Receiver != "" {
		receiver, err = sdk.AccAddressFromBech32(msg.Receiver)
		if err != nil {
			return nil, types.ErrValidation.Wrapf("invalid receiver address: %v", err)
		}
	}
	minted, err := m.Keeper.ProvideLiquidity(
		ctx, sender, msg.PoolId, msg.Assets,
		msg.SlippageTolerance, msg.AutoStake, receiver, msg.MinLpToReceive,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgProvideLiquidityResponse{MintedShares: minted}, nil
}

func (m msgServer) WithdrawLiquidity(ctx context.Context, msg *types.MsgWithdrawLiquidity) (*types.MsgWithdrawLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, types.ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	refund, err := m.Keeper.WithdrawLiquidity(ctx, sender, msg.PoolId, msg.Amount, msg.MinAssetsToReceive)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawLiquidityResponse{RefundAssets: refund}, nil
}

func (m msgServer) Swap(ctx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, types.ErrValidation.Wrapf("invalid sender address: %v", err)
	}
	var to sdk.AccAddress
	if msg.To != "" {
		to, err = sdk.AccAddressFromBech32(msg.To)
		if err != nil {
			return nil, types.ErrValidation.Wrapf("invalid recipient address: %v", err)
		}
	}
	returnAmount, spreadAmount, commissionAmount, err := m.Keeper.Swap(
		ctx, sender, msg.PoolId, msg.OfferAsset, msg.AskAssetDenom,
		msg.BeliefPrice, msg.MaxSpread, to,
	)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{
		ReturnAmount:     returnAmount,
		SpreadAmount:     spreadAmount,
		CommissionAmount: commissionAmount,
	}, nil
}

func (m msgServer) UpdateConfig(ctx context.Context, msg *types.MsgUpdateConfig) (*types.MsgUpdateConfigResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.assertOwner(ctx, msg.Sender); err != nil {
		return nil, err
	}
	pool, err := m.GetPool(ctx, msg.PoolId)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Update != nil:
		err = m.UpdatePoolParams(ctx, pool, *msg.Update)
	case msg.Promote != nil:
		err = m.PromoteAmpGamma(ctx, pool, *msg.Promote)
	case msg.StopChangingAmpGamma:
		err = m.StopAmpGammaChange(ctx, pool)
	case msg.EnableFeeShare != nil:
		pool.Params.FeeShare = msg.EnableFeeShare
		err = m.SetPool(ctx, pool)
	case msg.DisableFeeShare:
		pool.Params.FeeShare = nil
		err = m.SetPool(ctx, pool)
	}
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUpdateConfig,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", msg.PoolId)),
			sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
		),
	)
	return &types.MsgUpdateConfigResponse{}, nil
}

func (m msgServer) ProposeNewOwner(ctx context.Context, msg *types.MsgProposeNewOwner) (*types.MsgProposeNewOwnerResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.ProposeNewOwner(ctx, msg.Sender, msg.NewOwner, msg.ExpiresIn); err != nil {
		return nil, err
	}
	return &types.MsgProposeNewOwnerResponse{}, nil
}

func (m msgServer) DropOwnershipProposal(ctx context.Context, msg *types.MsgDropOwnershipProposal) (*types.MsgDropOwnershipProposalResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.DropOwnershipProposal(ctx, msg.Sender); err != nil {
		return nil, err
	}
	return &types.MsgDropOwnershipProposalResponse{}, nil
}

func (m msgServer) ClaimOwnership(ctx context.Context, msg *types.MsgClaimOwnership) (*types.MsgClaimOwnershipResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.ClaimOwnership(ctx, msg.Sender); err != nil {
		return nil, err
	}
	return &types.MsgClaimOwnershipResponse{}, nil
}

func (m msgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	if err := m.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
