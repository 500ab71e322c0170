package types

import (
	"encoding/json"

	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module's concrete message types
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "clamm/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgProvideLiquidity{}, "clamm/MsgProvideLiquidity", nil)
	cdc.RegisterConcrete(&MsgWithdrawLiquidity{}, "clamm/MsgWithdrawLiquidity", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "clamm/MsgSwap", nil)
	cdc.RegisterConcrete(&MsgUpdateConfig{}, "clamm/MsgUpdateConfig", nil)
	cdc.RegisterConcrete(&MsgProposeNewOwner{}, "clamm/MsgProposeNewOwner", nil)
	cdc.RegisterConcrete(&MsgDropOwnershipProposal{}, "clamm/MsgDropOwnershipProposal", nil)
	cdc.RegisterConcrete(&MsgClaimOwnership{}, "clamm/MsgClaimOwnership", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "clamm/MsgUpdateParams", nil)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc carries module state and genesis as amino JSON. State
	// types are hand-written; amino JSON handles math.Int and LegacyDec.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}

func jsonString(v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// proto.Message shims. The message types are hand-written with JSON tags;
// these methods let them satisfy sdk.Msg without generated code.

func (m *MsgCreatePool) Reset()         { *m = MsgCreatePool{} }
func (m *MsgCreatePool) String() string { return jsonString(m) }
func (m *MsgCreatePool) ProtoMessage()  {}

func (m *MsgProvideLiquidity) Reset()         { *m = MsgProvideLiquidity{} }
func (m *MsgProvideLiquidity) String() string { return jsonString(m) }
func (m *MsgProvideLiquidity) ProtoMessage()  {}

func (m *MsgWithdrawLiquidity) Reset()         { *m = MsgWithdrawLiquidity{} }
func (m *MsgWithdrawLiquidity) String() string { return jsonString(m) }
func (m *MsgWithdrawLiquidity) ProtoMessage()  {}

func (m *MsgSwap) Reset()         { *m = MsgSwap{} }
func (m *MsgSwap) String() string { return jsonString(m) }
func (m *MsgSwap) ProtoMessage()  {}

func (m *MsgUpdateConfig) Reset()         { *m = MsgUpdateConfig{} }
func (m *MsgUpdateConfig) String() string { return jsonString(m) }
func (m *MsgUpdateConfig) ProtoMessage()  {}

func (m *MsgProposeNewOwner) Reset()         { *m = MsgProposeNewOwner{} }
func (m *MsgProposeNewOwner) String() string { return jsonString(m) }
func (m *MsgProposeNewOwner) ProtoMessage()  {}

func (m *MsgDropOwnershipProposal) Reset()         { *m = MsgDropOwnershipProposal{} }
func (m *MsgDropOwnershipProposal) String() string { return jsonString(m) }
func (m *MsgDropOwnershipProposal) ProtoMessage()  {}

func (m *MsgClaimOwnership) Reset()         { *m = MsgClaimOwnership{} }
func (m *MsgClaimOwnership) String() string { return jsonString(m) }
func (m *MsgClaimOwnership) ProtoMessage()  {}

func (m *MsgUpdateParams) Reset()         { *m = MsgUpdateParams{} }
func (m *MsgUpdateParams) String() string { return jsonString(m) }
func (m *MsgUpdateParams) ProtoMessage()  {}
