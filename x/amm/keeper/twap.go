package keeper

import (
	"sort"

	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// accumulate advances the cumulative price accumulator to now at the given
// spot price. Must run before any reserve mutation, while holding the pool
// lock: a trade accumulates time at the price that was in force, never at
// the price it creates.
func accumulate(o *types.PoolOracle, spot math.LegacyDec, now int64) {
	elapsed := now - o.LastTimestamp
	if elapsed > 0 {
		o.CumulativePrice = o.CumulativePrice.Add(spot.MulInt64(elapsed))
		o.LastTimestamp = now
	}
}

// record appends an observation at the post-mutation spot price. The ring
// is bounded; dropping the oldest observation shrinks the answerable TWAP
// window but never corrupts it.
func record(o *types.PoolOracle, spot math.LegacyDec, now int64, maxObservations int) {
	n := len(o.Observations)
	if n > 0 && o.Observations[n-1].Timestamp == now {
		// Several trades in the same second: the last price wins, the
		// accumulator is unchanged since no time has passed.
		o.Observations[n-1].SpotPrice = spot
		return
	}
	o.Observations = append(o.Observations, types.Observation{
		Timestamp:       now,
		CumulativePrice: o.CumulativePrice,
		SpotPrice:       spot,
	})
	if len(o.Observations) > maxObservations {
		o.Observations = o.Observations[len(o.Observations)-maxObservations:]
	}
}

// accumulatorAt reconstructs the accumulator value at ts from the newest
// observation at or before ts. Between observations the price is constant,
// so the interpolation is exact, not an estimate.
func accumulatorAt(o *types.PoolOracle, ts int64) (math.LegacyDec, bool) {
	idx := sort.Search(len(o.Observations), func(i int) bool {
		return o.Observations[i].Timestamp > ts
	}) - 1
	if idx < 0 {
		return math.LegacyDec{}, false
	}
	obs := o.Observations[idx]
	return obs.CumulativePrice.Add(obs.SpotPrice.MulInt64(ts - obs.Timestamp)), true
}

// TWAP returns the time-weighted average price over the trailing window:
//
//	(accumulator(now) - accumulator(now - window)) / window
//
// Returns ErrInsufficientHistory when the oracle has no observation old
// enough to cover the window start.
func (k *Keeper) TWAP(assetID string, window int64) (math.LegacyDec, error) {
	if window <= 0 {
		return math.LegacyZeroDec(), types.ErrInvalidInput.Wrap("twap window must be positive")
	}

	lock, err := k.poolLock(assetID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	oracle := k.oracles[assetID]
	k.mu.RUnlock()

	now := k.now().Unix()
	windowStart := now - window

	cumStart, ok := accumulatorAt(oracle, windowStart)
	if !ok {
		return math.LegacyZeroDec(), types.ErrInsufficientHistory.Wrapf(
			"pool %s has no observation at or before %d", assetID, windowStart)
	}

	// Project the live accumulator forward to now at the current spot
	// price without mutating oracle state.
	cumNow := oracle.CumulativePrice
	if elapsed := now - oracle.LastTimestamp; elapsed > 0 {
		cumNow = cumNow.Add(pool.SpotPrice().MulInt64(elapsed))
	}

	twap := cumNow.Sub(cumStart).QuoInt64(window)
	k.metrics.TwapValue.WithLabelValues(assetID).Set(decToFloat(twap))
	return twap, nil
}

// OldestObservation returns the earliest retained observation timestamp,
// which bounds the largest answerable TWAP window.
func (k *Keeper) OldestObservation(assetID string) (int64, error) {
	lock, err := k.poolLock(assetID)
	if err != nil {
		return 0, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	oracle := k.oracles[assetID]
	k.mu.RUnlock()

	return oracle.Observations[0].Timestamp, nil
}
