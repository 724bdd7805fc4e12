package types

import (
	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "assets"
)

// Asset describes a listed property whose ownership is fractionalized into
// a fixed number of tokens. Identity and supply facts originate in the
// listing/escrow registry; the ledger only tracks who holds the tokens.
type Asset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TotalSupply math.Int `json:"total_supply"`
}
