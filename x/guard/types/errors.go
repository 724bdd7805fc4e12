package types

import (
	"cosmossdk.io/errors"
)

// Guard module sentinel errors
var (
	ErrUnauthorized   = errors.Register(ModuleName, 1, "unauthorized")
	ErrInvalidRole    = errors.Register(ModuleName, 2, "invalid role")
	ErrInvalidAddress = errors.Register(ModuleName, 3, "invalid address")
	ErrAlreadyPaused  = errors.Register(ModuleName, 4, "already paused")
	ErrNotPaused      = errors.Register(ModuleName, 5, "not paused")
	ErrPaused         = errors.Register(ModuleName, 6, "operations are paused")
)
