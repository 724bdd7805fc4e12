package types

import (
	"cosmossdk.io/errors"
)

// Settlement module sentinel errors
var (
	ErrInvalidAmount       = errors.Register(ModuleName, 1, "invalid amount")
	ErrInvalidAccount      = errors.Register(ModuleName, 2, "invalid account")
	ErrInsufficientFunds   = errors.Register(ModuleName, 3, "insufficient funds")
	ErrDuplicateDeposit    = errors.Register(ModuleName, 4, "deposit reference already consumed")
	ErrSupplyCapExceeded   = errors.Register(ModuleName, 5, "supply cap exceeded")
	ErrAccountBlacklisted  = errors.Register(ModuleName, 6, "account is blacklisted")
	ErrAccountNotFound     = errors.Register(ModuleName, 7, "account not found")
	ErrInvalidSupplyChange = errors.Register(ModuleName, 8, "invalid supply change")
)
