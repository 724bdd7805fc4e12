package types

import (
	"cosmossdk.io/math"
)

// EventMinted is emitted once per accepted mint. DepositReference ties the
// mint back to the verified fiat deposit that authorized it.
type EventMinted struct {
	To               string   `json:"to"`
	Amount           math.Int `json:"amount"`
	DepositReference string   `json:"deposit_reference"`
	NewBalance       math.Int `json:"new_balance"`
	TotalSupply      math.Int `json:"total_supply"`
}

func (EventMinted) EventType() string { return "settlement.minted" }

// EventBurned is emitted once per burn, together with the redemption record
// consumed by the off-chain fiat payout process.
type EventBurned struct {
	From        string           `json:"from"`
	Amount      math.Int         `json:"amount"`
	NewBalance  math.Int         `json:"new_balance"`
	TotalSupply math.Int         `json:"total_supply"`
	Redemption  RedemptionRecord `json:"redemption"`
}

func (EventBurned) EventType() string { return "settlement.burned" }

// EventTransferred is emitted once per transfer.
type EventTransferred struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Amount      math.Int `json:"amount"`
	FromBalance math.Int `json:"from_balance"`
	ToBalance   math.Int `json:"to_balance"`
}

func (EventTransferred) EventType() string { return "settlement.transferred" }

// EventBlacklistUpdated is emitted when an account is frozen or unfrozen.
type EventBlacklistUpdated struct {
	Account     string `json:"account"`
	Blacklisted bool   `json:"blacklisted"`
	By          string `json:"by"`
}

func (EventBlacklistUpdated) EventType() string { return "settlement.blacklist_updated" }
