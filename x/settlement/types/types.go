package types

import (
	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "settlement"
)

// Account is a settlement-token account. Accounts are created lazily on
// first mint and never deleted, only frozen via the blacklist flag.
type Account struct {
	Owner       string   `json:"owner"`
	Balance     math.Int `json:"balance"`
	Blacklisted bool     `json:"blacklisted"`
}

// RedemptionRecord describes a burn performed for fiat redemption. The
// record is emitted for the off-chain payout process; the engine does not
// track payout completion.
type RedemptionRecord struct {
	Owner  string   `json:"owner"`
	Amount math.Int `json:"amount"`
	Burner string   `json:"burner"`
}
