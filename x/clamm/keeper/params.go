package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/helix-chain/helix/x/clamm/types"
)

// GetParams returns the module parameters
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := k.cdc.UnmarshalJSON(bz, &params); err != nil {
		panic(fmt.Errorf("unmarshal module params: %w", err))
	}
	return params
}

// SetParams sets the module parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := k.cdc.MarshalJSON(&params)
	if err != nil {
		return fmt.Errorf("marshal module params: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// GetOwner returns the module owner. The owner gates pool config updates;
// an empty owner means only the governance authority may act.
func (k Keeper) GetOwner(ctx context.Context) string {
	bz := k.getStore(ctx).Get(types.OwnerKey)
	return string(bz)
}

// SetOwner sets the module owner
func (k Keeper) SetOwner(ctx context.Context, owner string) {
	k.getStore(ctx).Set(types.OwnerKey, []byte(owner))
}

// assertOwner fails with Unauthorized unless the sender is the current
// owner or the governance authority
func (k Keeper) assertOwner(ctx context.Context, sender string) error {
	if sender == k.authority {
		return nil
	}
	if owner := k.GetOwner(ctx); owner != "" && sender == owner {
		return nil
	}
	return types.ErrUnauthorized.Wrapf("%s is not the owner", sender)
}

// GetOwnershipProposal returns the pending ownership proposal, if any
func (k Keeper) GetOwnershipProposal(ctx context.Context) (*types.OwnershipProposal, error) {
	bz := k.getStore(ctx).Get(types.OwnershipProposalKey)
	if bz == nil {
		return nil, types.ErrOwnershipProposal.Wrap("no pending ownership proposal")
	}
	var proposal types.OwnershipProposal
	if err := k.cdc.UnmarshalJSON(bz, &proposal); err != nil {
		return nil, fmt.Errorf("unmarshal ownership proposal: %w", err)
	}
	return &proposal, nil
}

// ProposeNewOwner starts the two-step ownership transfer
func (k Keeper) ProposeNewOwner(ctx context.Context, sender, newOwner string, expiresIn int64) error {
	if err := k.assertOwner(ctx, sender); err != nil {
		return err
	}
	if newOwner == k.GetOwner(ctx) {
		return types.ErrOwnershipProposal.Wrap("new owner equals current owner")
	}
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	proposal := types.OwnershipProposal{Owner: newOwner, Ttl: now + expiresIn}
	bz, err := k.cdc.MarshalJSON(&proposal)
	if err != nil {
		return fmt.Errorf("marshal ownership proposal: %w", err)
	}
	k.getStore(ctx).Set(types.OwnershipProposalKey, bz)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOwnershipProposal,
			sdk.NewAttribute(types.AttributeKeyOwner, k.GetOwner(ctx)),
			sdk.NewAttribute(types.AttributeKeyProposedOwner, newOwner),
		),
	)
	return nil
}

// DropOwnershipProposal cancels a pending ownership transfer
func (k Keeper) DropOwnershipProposal(ctx context.Context, sender string) error {
	if err := k.assertOwner(ctx, sender); err != nil {
		return err
	}
	if _, err := k.GetOwnershipProposal(ctx); err != nil {
		return err
	}
	k.getStore(ctx).Delete(types.OwnershipProposalKey)
	return nil
}

// ClaimOwnership completes the transfer. Only the proposed owner may
// claim, and only before the proposal's TTL.
func (k Keeper) ClaimOwnership(ctx context.Context, sender string) error {
	proposal, err := k.GetOwnershipProposal(ctx)
	if err != nil {
		return err
	}
	if sender != proposal.Owner {
		return types.ErrUnauthorized.Wrapf("%s is not the proposed owner", sender)
	}
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if now > proposal.Ttl {
		return types.ErrOwnershipProposal.Wrapf("proposal expired at %d", proposal.Ttl)
	}
	k.SetOwner(ctx, proposal.Owner)
	k.getStore(ctx).Delete(types.OwnershipProposalKey)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOwnershipClaimed,
			sdk.NewAttribute(types.AttributeKeyOwner, proposal.Owner),
		),
	)
	return nil
}

// SetTokenDecimals registers an asset's decimal precision
func (k Keeper) SetTokenDecimals(ctx context.Context, denom string, decimals uint8) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrValidation.Wrapf("invalid denom %q: %v", denom, err)
	}
	if decimals > types.MaxAssetDecimals {
		return types.ErrValidation.Wrapf("precision %d exceeds %d", decimals, types.MaxAssetDecimals)
	}
	k.getStore(ctx).Set(types.PrecisionKey(denom), []byte{decimals})
	return nil
}

// TokenDecimals resolves an asset's decimal precision, first from the
// registry and then from bank denom metadata
func (k Keeper) TokenDecimals(ctx context.Context, denom string) (uint8, error) {
	if bz := k.getStore(ctx).Get(types.PrecisionKey(denom)); len(bz) == 1 {
		return bz[0], nil
	}
	metadata, found := k.bankKeeper.GetDenomMetaData(ctx, denom)
	if found {
		for _, unit := range metadata.DenomUnits {
			if unit.Denom == metadata.Display && unit.Exponent <= types.MaxAssetDecimals {
				return uint8(unit.Exponent), nil
			}
		}
	}
	return 0, types.ErrPrecisionNotFound.Wrapf("no registered precision for %s", denom)
}

// UpdatePoolParams applies a partial fee parameter update to a pool
func (k Keeper) UpdatePoolParams(ctx context.Context, pool *types.Pool, update types.ConfigUpdate) error {
	params := pool.Params
	if update.MidFee != nil {
		params.MidFee = *update.MidFee
	}
	if update.OutFee != nil {
		params.OutFee = *update.OutFee
	}
	if update.FeeGamma != nil {
		params.FeeGamma = *update.FeeGamma
	}
	if update.RepegProfitThreshold != nil {
		params.RepegProfitThreshold = *update.RepegProfitThreshold
	}
	if update.MinPriceScaleDelta != nil {
		params.MinPriceScaleDelta = *update.MinPriceScaleDelta
	}
	if update.MaHalfTime != nil {
		params.MaHalfTime = *update.MaHalfTime
	}
	if err := params.Validate(); err != nil {
		return err
	}
	pool.Params = params
	return k.SetPool(ctx, pool)
}

// PromoteAmpGamma starts a gradual amp/gamma change on a pool
func (k Keeper) PromoteAmpGamma(ctx context.Context, pool *types.Pool, promote types.ConfigPromote) error {
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if err := pool.AmpGamma.ValidatePromotion(
		promote.FutureAmp, promote.FutureGamma, promote.FutureTime, now); err != nil {
		return err
	}
	curAmp, curGamma := pool.AmpGamma.At(now)
	pool.AmpGamma = types.AmpGamma{
		InitialAmp:   curAmp,
		InitialGamma: curGamma,
		FutureAmp:    promote.FutureAmp,
		FutureGamma:  promote.FutureGamma,
		InitialTime:  now,
		FutureTime:   promote.FutureTime,
	}
	return k.SetPool(ctx, pool)
}

// StopAmpGammaChange freezes a pool's amp/gamma at the current effective
// values
func (k Keeper) StopAmpGammaChange(ctx context.Context, pool *types.Pool) error {
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	amp, gamma := pool.AmpGamma.At(now)
	pool.AmpGamma = types.NewAmpGamma(amp, gamma, now)
	return k.SetPool(ctx, pool)
}
