package types

import (
	"cosmossdk.io/errors"
)

// Concentrated-liquidity module sentinel errors
var (
	ErrInvalidPoolId        = errors.Register(ModuleName, 1, "invalid pool id")
	ErrPoolNotFound         = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists    = errors.Register(ModuleName, 3, "pool already exists for asset pair")
	ErrValidation           = errors.Register(ModuleName, 4, "invalid input")
	ErrAssetMismatch        = errors.Register(ModuleName, 5, "asset does not belong to the pair")
	ErrInsufficientBalance  = errors.Register(ModuleName, 6, "insufficient pool balance")
	ErrConvergence          = errors.Register(ModuleName, 7, "newton solver failed to converge")
	ErrOverflow             = errors.Register(ModuleName, 8, "arithmetic overflow")
	ErrMaxSpreadAssertion   = errors.Register(ModuleName, 9, "operation exceeds max spread limit")
	ErrBeliefPriceViolation = errors.Register(ModuleName, 10, "effective price deviates from belief price beyond max spread")
	ErrWithdrawSlippage     = errors.Register(ModuleName, 11, "withdrawn amount below minimum")
	ErrProvideSlippage      = errors.Register(ModuleName, 12, "minted shares below minimum")
	ErrMinimumLiquidity     = errors.Register(ModuleName, 13, "initial provide too small to lock minimum liquidity")
	ErrUnauthorized         = errors.Register(ModuleName, 14, "unauthorized")
	ErrOwnershipProposal    = errors.Register(ModuleName, 15, "invalid ownership proposal")
	ErrAmpGammaUpdate       = errors.Register(ModuleName, 16, "invalid amp/gamma promotion")
	ErrBufferEmpty          = errors.Register(ModuleName, 17, "observation buffer is empty")
	ErrObservationTooOld    = errors.Register(ModuleName, 18, "requested observation is older than buffer coverage")
	ErrPrecisionNotFound    = errors.Register(ModuleName, 19, "asset precision not registered")
	ErrMigration            = errors.Register(ModuleName, 20, "module migration error")
)
