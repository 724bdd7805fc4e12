package types

import (
	"cosmossdk.io/errors"
)

// Assets module sentinel errors
var (
	ErrInvalidAsset        = errors.Register(ModuleName, 1, "invalid asset")
	ErrAssetExists         = errors.Register(ModuleName, 2, "asset already registered")
	ErrAssetNotFound       = errors.Register(ModuleName, 3, "asset not found")
	ErrInvalidAmount       = errors.Register(ModuleName, 4, "invalid amount")
	ErrInvalidAccount      = errors.Register(ModuleName, 5, "invalid account")
	ErrInsufficientBalance = errors.Register(ModuleName, 6, "insufficient token balance")
)
