package types

import (
	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// LockedSharesOwner is the reserved owner of the permanently locked
	// seed shares. No caller can redeem this position, which guarantees a
	// pool can never be fully drained.
	LockedSharesOwner = "locked"
)

// Direction selects which leg of a pool is the swap input.
type Direction string

const (
	// DirectionTokenToSettlement sells asset tokens for settlement tokens.
	DirectionTokenToSettlement Direction = "token_to_settlement"

	// DirectionSettlementToToken buys asset tokens with settlement tokens.
	DirectionSettlementToToken Direction = "settlement_to_token"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionTokenToSettlement || d == DirectionSettlementToToken
}

// Pool is the reserve state of one asset's liquidity pool. Reserves are
// custodied by the pool's module account; PlatformFee* track the platform's
// accrued fee share per leg, held by the same account but excluded from the
// pricing reserves.
type Pool struct {
	AssetID               string   `json:"asset_id"`
	TokenReserve          math.Int `json:"token_reserve"`
	SettlementReserve     math.Int `json:"settlement_reserve"`
	TotalShares           math.Int `json:"total_shares"`
	PlatformFeeToken      math.Int `json:"platform_fee_token"`
	PlatformFeeSettlement math.Int `json:"platform_fee_settlement"`
	Active                bool     `json:"active"`
	CreatedAt             int64    `json:"created_at"`
}

// SpotPrice returns the instantaneous price of one asset token in
// settlement tokens: settlementReserve / tokenReserve.
func (p Pool) SpotPrice() math.LegacyDec {
	return math.LegacyNewDecFromInt(p.SettlementReserve).Quo(math.LegacyNewDecFromInt(p.TokenReserve))
}

// K returns the constant-product invariant value of the pool.
func (p Pool) K() math.Int {
	return p.TokenReserve.Mul(p.SettlementReserve)
}

// Reserves returns (reserveIn, reserveOut) for the given direction. The
// selection is symmetric: no pricing code special-cases a side.
func (p Pool) Reserves(d Direction) (reserveIn, reserveOut math.Int) {
	if d == DirectionTokenToSettlement {
		return p.TokenReserve, p.SettlementReserve
	}
	return p.SettlementReserve, p.TokenReserve
}

// Position is a provider's claim on a pool. Destroyed when shares reach
// zero on full withdrawal.
type Position struct {
	Owner                    string   `json:"owner"`
	AssetID                  string   `json:"asset_id"`
	Shares                   math.Int `json:"shares"`
	InitialTokenDeposit      math.Int `json:"initial_token_deposit"`
	InitialSettlementDeposit math.Int `json:"initial_settlement_deposit"`
}

// Observation is a snapshot of the cumulative price accumulator. SpotPrice
// is the price in force from Timestamp until the next observation, so the
// accumulator value at any instant between observations can be recovered
// exactly.
type Observation struct {
	Timestamp       int64           `json:"timestamp"`
	CumulativePrice math.LegacyDec  `json:"cumulative_price"`
	SpotPrice       math.LegacyDec  `json:"spot_price"`
}

// PoolOracle is the cumulative time-weighted price state of one pool. The
// accumulator grows by spotPrice * elapsed on every reserve-mutating call,
// before the mutation, so a trade can never sample a price it just moved.
type PoolOracle struct {
	AssetID         string          `json:"asset_id"`
	CumulativePrice math.LegacyDec  `json:"cumulative_price"`
	LastTimestamp   int64           `json:"last_timestamp"`
	Observations    []Observation   `json:"observations"`
}

// ModuleAccount returns the custody account address for a pool's reserves.
func ModuleAccount(assetID string) string {
	return "amm/" + assetID
}
