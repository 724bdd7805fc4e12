package types

import (
	"cosmossdk.io/math"
)

// EventAssetRegistered is emitted when a property listing is registered and
// its full token supply credited to the listing owner.
type EventAssetRegistered struct {
	AssetID     string   `json:"asset_id"`
	Name        string   `json:"name"`
	TotalSupply math.Int `json:"total_supply"`
	Owner       string   `json:"owner"`
}

func (EventAssetRegistered) EventType() string { return "assets.registered" }

// EventTokensTransferred is emitted once per asset-token transfer.
type EventTokensTransferred struct {
	AssetID     string   `json:"asset_id"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Amount      math.Int `json:"amount"`
	FromBalance math.Int `json:"from_balance"`
	ToBalance   math.Int `json:"to_balance"`
}

func (EventTokensTransferred) EventType() string { return "assets.transferred" }
