package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidInput              = errors.Register(ModuleName, 1, "invalid input")
	ErrPoolNotFound              = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists         = errors.Register(ModuleName, 3, "pool already exists")
	ErrInsufficientSeedLiquidity = errors.Register(ModuleName, 4, "insufficient seed liquidity")
	ErrPoolPaused                = errors.Register(ModuleName, 5, "pool is paused")
	ErrSlippageExceeded          = errors.Register(ModuleName, 6, "slippage exceeded")
	ErrInsufficientShares        = errors.Register(ModuleName, 7, "insufficient liquidity shares")
	ErrLockedShares              = errors.Register(ModuleName, 8, "locked seed shares are not redeemable")
	ErrReserveDepleted           = errors.Register(ModuleName, 9, "reserve would be depleted")
	ErrInsufficientHistory       = errors.Register(ModuleName, 10, "insufficient oracle history")
	ErrInvariantViolation        = errors.Register(ModuleName, 11, "invariant violation")
	ErrOverflow                  = errors.Register(ModuleName, 12, "arithmetic overflow")
	ErrInvalidDirection          = errors.Register(ModuleName, 13, "invalid swap direction")
)
