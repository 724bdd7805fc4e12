package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params are the pool ledger parameters, fixed at engine start.
type Params struct {
	// SwapFeeRate is the total fee charged on swap input (0.003 = 0.30%).
	// Pricing uses amountIn * (1 - SwapFeeRate).
	SwapFeeRate math.LegacyDec `json:"swap_fee_rate"`

	// PlatformFeeRate is the platform's slice of SwapFeeRate, withheld from
	// the reserves and accrued per pool per leg. The remainder of the fee
	// stays in the reserves and compounds for liquidity providers.
	PlatformFeeRate math.LegacyDec `json:"platform_fee_rate"`

	// MinLockedShares is the seed-share amount permanently assigned to the
	// locked owner at pool initialization.
	MinLockedShares math.Int `json:"min_locked_shares"`

	// TwapMaxObservations bounds the per-pool oracle ring. Oldest
	// observations are dropped first, shrinking the answerable window.
	TwapMaxObservations int `json:"twap_max_observations"`
}

// DefaultParams returns the production defaults: 0.30% total swap fee of
// which 0.05% accrues to the platform, 1000 locked seed shares.
func DefaultParams() Params {
	return Params{
		SwapFeeRate:         math.LegacyNewDecWithPrec(3, 3),  // 0.003
		PlatformFeeRate:     math.LegacyNewDecWithPrec(5, 4),  // 0.0005
		MinLockedShares:     math.NewInt(1000),
		TwapMaxObservations: 4096,
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.SwapFeeRate.IsNil() || p.SwapFeeRate.IsNegative() || p.SwapFeeRate.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("swap fee rate must be in [0, 1): %s", p.SwapFeeRate)
	}
	if p.PlatformFeeRate.IsNil() || p.PlatformFeeRate.IsNegative() {
		return fmt.Errorf("platform fee rate cannot be negative: %s", p.PlatformFeeRate)
	}
	if p.PlatformFeeRate.GT(p.SwapFeeRate) {
		return fmt.Errorf("platform fee rate %s exceeds total swap fee rate %s", p.PlatformFeeRate, p.SwapFeeRate)
	}
	if p.MinLockedShares.IsNil() || !p.MinLockedShares.IsPositive() {
		return fmt.Errorf("min locked shares must be positive: %s", p.MinLockedShares)
	}
	if p.TwapMaxObservations < 2 {
		return fmt.Errorf("twap max observations must be at least 2: %d", p.TwapMaxObservations)
	}
	return nil
}
