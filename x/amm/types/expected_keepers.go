package types

import (
	"cosmossdk.io/math"
)

// GuardKeeper is the access-control surface the pool ledger depends on.
type GuardKeeper interface {
	RequireRole(role, addr string) error
	RequireNotPaused() error
}

// SettlementKeeper moves pegged settlement tokens between traders and pool
// custody accounts. Transfer enforces pause, blacklist, and balance checks.
type SettlementKeeper interface {
	Transfer(from, to string, amount math.Int) error
	Balance(addr string) math.Int
}

// TokenLedger moves fractional asset tokens between holders.
type TokenLedger interface {
	Transfer(assetID, from, to string, amount math.Int) error
	Balance(assetID, addr string) math.Int
}

// PropertyRegistry answers whether an asset is listed and how many tokens
// are outstanding. Pool initialization refuses unregistered assets and
// deposits above the outstanding supply.
type PropertyRegistry interface {
	OutstandingSupply(assetID string) (math.Int, error)
}
