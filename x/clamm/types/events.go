package types

// Event types emitted by the clamm module
const (
	EventTypePoolCreated       = "clamm_pool_created"
	EventTypeProvideLiquidity  = "clamm_provide"
	EventTypeWithdrawLiquidity = "clamm_withdraw"
	EventTypeSwap              = "clamm_swap"
	EventTypeRepeg             = "clamm_repeg"
	EventTypeUpdateConfig      = "clamm_update_config"
	EventTypeOwnershipProposal = "clamm_ownership_proposal"
	EventTypeOwnershipClaimed  = "clamm_ownership_claimed"
)

// Event attribute keys
const (
	AttributeKeyPoolID        = "pool_id"
	AttributeKeySender        = "sender"
	AttributeKeyReceiver      = "receiver"
	AttributeKeyBaseAsset     = "base_asset"
	AttributeKeyQuoteAsset    = "quote_asset"
	AttributeKeyOfferAsset    = "offer_asset"
	AttributeKeyAskAsset      = "ask_asset"
	AttributeKeyOfferAmount   = "offer_amount"
	AttributeKeyReturnAmount  = "return_amount"
	AttributeKeySpreadAmount  = "spread_amount"
	AttributeKeyCommission    = "commission_amount"
	AttributeKeyMakerFee      = "maker_fee_amount"
	AttributeKeyShareFee      = "fee_share_amount"
	AttributeKeyAmounts       = "amounts"
	AttributeKeyShares        = "shares"
	AttributeKeyPriceScale    = "price_scale"
	AttributeKeyOraclePrice   = "oracle_price"
	AttributeKeyXcpProfit     = "xcp_profit"
	AttributeKeyOwner         = "owner"
	AttributeKeyProposedOwner = "proposed_owner"
)
