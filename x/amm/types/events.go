package types

import (
	"cosmossdk.io/math"
)

// EventPoolInitialized is emitted once per pool, at creation.
type EventPoolInitialized struct {
	AssetID           string   `json:"asset_id"`
	Creator           string   `json:"creator"`
	TokenReserve      math.Int `json:"token_reserve"`
	SettlementReserve math.Int `json:"settlement_reserve"`
	TotalShares       math.Int `json:"total_shares"`
	LockedShares      math.Int `json:"locked_shares"`
	CreatorShares     math.Int `json:"creator_shares"`
}

func (EventPoolInitialized) EventType() string { return "amm.pool_initialized" }

// EventSwap carries the executed trade and the post-trade reserves.
type EventSwap struct {
	AssetID           string    `json:"asset_id"`
	Trader            string    `json:"trader"`
	Direction         Direction `json:"direction"`
	AmountIn          math.Int  `json:"amount_in"`
	AmountOut         math.Int  `json:"amount_out"`
	FeePaid           math.Int  `json:"fee_paid"`
	PlatformFee       math.Int  `json:"platform_fee"`
	TokenReserve      math.Int  `json:"token_reserve"`
	SettlementReserve math.Int  `json:"settlement_reserve"`
}

func (EventSwap) EventType() string { return "amm.swap" }

// EventLiquidityAdded reports the amounts actually used after ratio
// matching, the shares minted, and the post-deposit pool state.
type EventLiquidityAdded struct {
	AssetID           string   `json:"asset_id"`
	Provider          string   `json:"provider"`
	TokenAmount       math.Int `json:"token_amount"`
	SettlementAmount  math.Int `json:"settlement_amount"`
	SharesMinted      math.Int `json:"shares_minted"`
	TokenReserve      math.Int `json:"token_reserve"`
	SettlementReserve math.Int `json:"settlement_reserve"`
	TotalShares       math.Int `json:"total_shares"`
}

func (EventLiquidityAdded) EventType() string { return "amm.liquidity_added" }

// EventLiquidityRemoved reports a share redemption and the post-withdrawal
// pool state.
type EventLiquidityRemoved struct {
	AssetID           string   `json:"asset_id"`
	Provider          string   `json:"provider"`
	SharesBurned      math.Int `json:"shares_burned"`
	TokenAmount       math.Int `json:"token_amount"`
	SettlementAmount  math.Int `json:"settlement_amount"`
	TokenReserve      math.Int `json:"token_reserve"`
	SettlementReserve math.Int `json:"settlement_reserve"`
	TotalShares       math.Int `json:"total_shares"`
}

func (EventLiquidityRemoved) EventType() string { return "amm.liquidity_removed" }

// EventPoolPaused is emitted when an operator halts one pool.
type EventPoolPaused struct {
	AssetID string `json:"asset_id"`
	By      string `json:"by"`
}

func (EventPoolPaused) EventType() string { return "amm.pool_paused" }

// EventPoolUnpaused is emitted when an operator resumes one pool.
type EventPoolUnpaused struct {
	AssetID string `json:"asset_id"`
	By      string `json:"by"`
}

func (EventPoolUnpaused) EventType() string { return "amm.pool_unpaused" }

// EventPlatformFeesWithdrawn reports a platform fee sweep for one pool.
type EventPlatformFeesWithdrawn struct {
	AssetID          string   `json:"asset_id"`
	Recipient        string   `json:"recipient"`
	TokenAmount      math.Int `json:"token_amount"`
	SettlementAmount math.Int `json:"settlement_amount"`
}

func (EventPlatformFeesWithdrawn) EventType() string { return "amm.platform_fees_withdrawn" }
