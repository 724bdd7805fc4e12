package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

type swapResult struct {
	amountOut   math.Int
	totalFee    math.Int
	platformFee math.Int
	lpFee       math.Int
}

// computeSwap prices a trade against the current reserves using the
// constant product formula:
//
//	out = (in * (1 - fee) * reserveOut) / (reserveIn + in * (1 - fee))
//
// Truncation always rounds down, in the pool's favor. The platform slice
// of the fee is carved out of the total; the LP remainder stays in the
// reserves and raises k.
func computeSwap(pool types.Pool, direction types.Direction, amountIn math.Int, params types.Params) (swapResult, error) {
	reserveIn, reserveOut := pool.Reserves(direction)
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return swapResult{}, types.ErrReserveDepleted.Wrapf("pool %s reserves must be positive", pool.AssetID)
	}

	totalFee := math.LegacyNewDecFromInt(amountIn).Mul(params.SwapFeeRate).TruncateInt()
	platformFee := math.LegacyNewDecFromInt(amountIn).Mul(params.PlatformFeeRate).TruncateInt()
	if platformFee.GT(totalFee) {
		platformFee = totalFee
	}
	lpFee := totalFee.Sub(platformFee)

	effectiveIn := amountIn.Sub(totalFee)
	if !effectiveIn.IsPositive() {
		return swapResult{}, types.ErrInvalidInput.Wrap("swap amount too small after fees")
	}

	numerator := math.LegacyNewDecFromInt(effectiveIn).Mul(math.LegacyNewDecFromInt(reserveOut))
	denominator := math.LegacyNewDecFromInt(reserveIn).Add(math.LegacyNewDecFromInt(effectiveIn))
	amountOut := numerator.Quo(denominator).TruncateInt()

	if amountOut.IsZero() {
		return swapResult{}, types.ErrInvalidInput.Wrap("swap amount too small: output rounds to zero")
	}
	if amountOut.GTE(reserveOut) {
		return swapResult{}, types.ErrReserveDepleted.Wrapf("output %s >= reserve %s",
			amountOut.String(), reserveOut.String())
	}

	return swapResult{
		amountOut:   amountOut,
		totalFee:    totalFee,
		platformFee: platformFee,
		lpFee:       lpFee,
	}, nil
}

// Quote prices a swap against the current reserves without executing it.
func (k *Keeper) Quote(assetID string, direction types.Direction, amountIn math.Int) (math.Int, error) {
	if !direction.Valid() {
		return math.ZeroInt(), types.ErrInvalidDirection.Wrapf("unknown direction %q", direction)
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("swap amount must be positive")
	}

	pool, err := k.GetPool(assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	res, err := computeSwap(pool, direction, amountIn, k.params)
	if err != nil {
		return math.ZeroInt(), err
	}
	return res.amountOut, nil
}

// Swap executes a trade against one pool. The trader's input leg settles
// first, then the output leg; reserves are updated only after both legs
// succeed, so the bookkeeping can never disagree with custody. The oracle
// accumulator advances at the pre-trade price before the reserves move.
func (k *Keeper) Swap(trader, assetID string, direction types.Direction, amountIn, minAmountOut math.Int) (math.Int, error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if err := k.guard.RequireNotPaused(); err != nil {
		return math.ZeroInt(), err
	}
	if trader == "" {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("trader cannot be empty")
	}
	if !direction.Valid() {
		return math.ZeroInt(), types.ErrInvalidDirection.Wrapf("unknown direction %q", direction)
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("swap amount must be positive")
	}
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("minimum output cannot be negative")
	}

	lock, err := k.poolLock(assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	oracle := k.oracles[assetID]
	k.mu.RUnlock()

	if !pool.Active {
		return math.ZeroInt(), types.ErrPoolPaused.Wrapf("pool %s is paused", assetID)
	}

	res, err := computeSwap(*pool, direction, amountIn, k.params)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
		return math.ZeroInt(), err
	}
	if res.amountOut.LT(minAmountOut) {
		k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s",
			minAmountOut.String(), res.amountOut.String())
	}

	// Settle both legs before touching pool state. If the output leg
	// fails (e.g. trader blacklisted on the settlement ledger), the input
	// leg is reverted and the pool is untouched.
	modAcct := types.ModuleAccount(assetID)
	if direction == types.DirectionTokenToSettlement {
		if err := k.tokens.Transfer(assetID, trader, modAcct, amountIn); err != nil {
			k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
			return math.ZeroInt(), err
		}
		if err := k.settlement.Transfer(modAcct, trader, res.amountOut); err != nil {
			if revertErr := k.tokens.Transfer(assetID, modAcct, trader, amountIn); revertErr != nil {
				k.logger.Error("failed to revert input transfer after output transfer failure",
					"asset", assetID, "trader", trader,
					"original_error", err, "revert_error", revertErr)
			}
			k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
			return math.ZeroInt(), err
		}
	} else {
		if err := k.settlement.Transfer(trader, modAcct, amountIn); err != nil {
			k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
			return math.ZeroInt(), err
		}
		if err := k.tokens.Transfer(assetID, modAcct, trader, res.amountOut); err != nil {
			if revertErr := k.settlement.Transfer(modAcct, trader, amountIn); revertErr != nil {
				k.logger.Error("failed to revert input transfer after output transfer failure",
					"asset", assetID, "trader", trader,
					"original_error", err, "revert_error", revertErr)
			}
			k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
			return math.ZeroInt(), err
		}
	}

	// Advance the accumulator at the pre-trade price, then move reserves.
	now := k.now().Unix()
	accumulate(oracle, pool.SpotPrice(), now)

	oldK := pool.K()
	reserveGain := amountIn.Sub(res.platformFee)
	if direction == types.DirectionTokenToSettlement {
		pool.TokenReserve = pool.TokenReserve.Add(reserveGain)
		pool.SettlementReserve = pool.SettlementReserve.Sub(res.amountOut)
		pool.PlatformFeeToken = pool.PlatformFeeToken.Add(res.platformFee)
	} else {
		pool.SettlementReserve = pool.SettlementReserve.Add(reserveGain)
		pool.TokenReserve = pool.TokenReserve.Sub(res.amountOut)
		pool.PlatformFeeSettlement = pool.PlatformFeeSettlement.Add(res.platformFee)
	}

	if newK := pool.K(); newK.LT(oldK) {
		// Rounding always favors the pool, so a shrinking k means the
		// pricing math is broken. Roll everything back and refuse.
		if direction == types.DirectionTokenToSettlement {
			pool.TokenReserve = pool.TokenReserve.Sub(reserveGain)
			pool.SettlementReserve = pool.SettlementReserve.Add(res.amountOut)
			pool.PlatformFeeToken = pool.PlatformFeeToken.Sub(res.platformFee)
			if revertErr := k.revertSwapTransfers(assetID, trader, direction, amountIn, res.amountOut); revertErr != nil {
				k.logger.Error("failed to revert transfers after invariant violation",
					"asset", assetID, "trader", trader, "revert_error", revertErr)
			}
		} else {
			pool.SettlementReserve = pool.SettlementReserve.Sub(reserveGain)
			pool.TokenReserve = pool.TokenReserve.Add(res.amountOut)
			pool.PlatformFeeSettlement = pool.PlatformFeeSettlement.Sub(res.platformFee)
			if revertErr := k.revertSwapTransfers(assetID, trader, direction, amountIn, res.amountOut); revertErr != nil {
				k.logger.Error("failed to revert transfers after invariant violation",
					"asset", assetID, "trader", trader, "revert_error", revertErr)
			}
		}
		k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "failed").Inc()
		return math.ZeroInt(), types.ErrInvariantViolation.Wrapf(
			"constant product decreased: old_k=%s new_k=%s", oldK.String(), newK.String())
	}

	record(oracle, pool.SpotPrice(), now, k.params.TwapMaxObservations)

	k.logger.Info("swap executed",
		"asset", assetID, "trader", trader, "direction", string(direction),
		"amount_in", amountIn.String(), "amount_out", res.amountOut.String(),
		"fee", res.totalFee.String())
	k.bus.Emit(types.EventSwap{
		AssetID:           assetID,
		Trader:            trader,
		Direction:         direction,
		AmountIn:          amountIn,
		AmountOut:         res.amountOut,
		FeePaid:           res.totalFee,
		PlatformFee:       res.platformFee,
		TokenReserve:      pool.TokenReserve,
		SettlementReserve: pool.SettlementReserve,
	})

	k.metrics.SwapsTotal.WithLabelValues(assetID, string(direction), "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(assetID, legLabel(direction)).Add(intToFloat(amountIn))
	k.metrics.PlatformFeesAccrued.WithLabelValues(assetID, legLabel(direction)).Add(intToFloat(res.platformFee))
	k.setReserveGauges(*pool)

	return res.amountOut, nil
}

// revertSwapTransfers undoes both legs of an executed swap, in reverse
// order. Only reached when the post-trade invariant check fails.
func (k *Keeper) revertSwapTransfers(assetID, trader string, direction types.Direction, amountIn, amountOut math.Int) error {
	modAcct := types.ModuleAccount(assetID)
	if direction == types.DirectionTokenToSettlement {
		if err := k.settlement.Transfer(trader, modAcct, amountOut); err != nil {
			return err
		}
		return k.tokens.Transfer(assetID, modAcct, trader, amountIn)
	}
	if err := k.tokens.Transfer(assetID, trader, modAcct, amountOut); err != nil {
		return err
	}
	return k.settlement.Transfer(modAcct, trader, amountIn)
}

// SpotPrice returns the instantaneous price of one asset token in
// settlement tokens.
func (k *Keeper) SpotPrice(assetID string) (math.LegacyDec, error) {
	pool, err := k.GetPool(assetID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if !pool.TokenReserve.IsPositive() || !pool.SettlementReserve.IsPositive() {
		return math.LegacyZeroDec(), types.ErrReserveDepleted.Wrapf("pool %s reserves must be positive", assetID)
	}
	return pool.SpotPrice(), nil
}

func legLabel(d types.Direction) string {
	if d == types.DirectionTokenToSettlement {
		return "token"
	}
	return "settlement"
}
