package keeper

import (
	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// AddLiquidityResult reports what a deposit actually did: the amounts
// pulled after ratio matching and the shares minted for them.
type AddLiquidityResult struct {
	SharesMinted     math.Int
	TokenUsed        math.Int
	SettlementUsed   math.Int
}

// RemoveLiquidityResult reports a share redemption payout.
type RemoveLiquidityResult struct {
	SharesBurned     math.Int
	TokenAmount      math.Int
	SettlementAmount math.Int
}

// AddLiquidity deposits both legs at the pool's current ratio and mints
// shares pro rata. The offered amounts are maxima: the deposit is scaled
// down to the current reserve ratio and only the matched amounts are
// pulled, so any excess simply never leaves the provider's account.
func (k *Keeper) AddLiquidity(provider, assetID string, tokenAmount, settlementAmount, minShares math.Int) (AddLiquidityResult, error) {
	if err := k.guard.RequireNotPaused(); err != nil {
		return AddLiquidityResult{}, err
	}
	if provider == "" {
		return AddLiquidityResult{}, types.ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if tokenAmount.IsNil() || !tokenAmount.IsPositive() || settlementAmount.IsNil() || !settlementAmount.IsPositive() {
		return AddLiquidityResult{}, types.ErrInvalidInput.Wrap("both deposit amounts must be positive")
	}
	if minShares.IsNil() || minShares.IsNegative() {
		return AddLiquidityResult{}, types.ErrInvalidInput.Wrap("minimum shares cannot be negative")
	}

	lock, err := k.poolLock(assetID)
	if err != nil {
		return AddLiquidityResult{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	oracle := k.oracles[assetID]
	k.mu.RUnlock()

	if !pool.Active {
		return AddLiquidityResult{}, types.ErrPoolPaused.Wrapf("pool %s is paused", assetID)
	}

	// Match the deposit to the current reserve ratio, keeping whichever
	// leg binds.
	useToken := tokenAmount
	useSettlement, err := SafeMulDiv(tokenAmount, pool.SettlementReserve, pool.TokenReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}
	if useSettlement.GT(settlementAmount) {
		useSettlement = settlementAmount
		useToken, err = SafeMulDiv(settlementAmount, pool.TokenReserve, pool.SettlementReserve)
		if err != nil {
			return AddLiquidityResult{}, err
		}
	}
	if !useToken.IsPositive() || !useSettlement.IsPositive() {
		return AddLiquidityResult{}, types.ErrInvalidInput.Wrap("deposit too small for the current pool ratio")
	}

	// Shares are the more conservative of the two pro-rata quotients, so
	// rounding never mints more than either leg justifies.
	sharesFromToken, err := SafeMulDiv(useToken, pool.TotalShares, pool.TokenReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}
	sharesFromSettlement, err := SafeMulDiv(useSettlement, pool.TotalShares, pool.SettlementReserve)
	if err != nil {
		return AddLiquidityResult{}, err
	}
	shares := math.MinInt(sharesFromToken, sharesFromSettlement)
	if !shares.IsPositive() {
		return AddLiquidityResult{}, types.ErrInvalidInput.Wrap("deposit too small: shares round to zero")
	}
	if shares.LT(minShares) {
		return AddLiquidityResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s shares, got %s",
			minShares.String(), shares.String())
	}

	modAcct := types.ModuleAccount(assetID)
	if err := k.tokens.Transfer(assetID, provider, modAcct, useToken); err != nil {
		return AddLiquidityResult{}, err
	}
	if err := k.settlement.Transfer(provider, modAcct, useSettlement); err != nil {
		if revertErr := k.tokens.Transfer(assetID, modAcct, provider, useToken); revertErr != nil {
			k.logger.Error("failed to revert token deposit after settlement transfer failure",
				"asset", assetID, "provider", provider,
				"original_error", err, "revert_error", revertErr)
		}
		return AddLiquidityResult{}, err
	}

	now := k.now().Unix()
	accumulate(oracle, pool.SpotPrice(), now)

	pool.TokenReserve = pool.TokenReserve.Add(useToken)
	pool.SettlementReserve = pool.SettlementReserve.Add(useSettlement)
	pool.TotalShares = pool.TotalShares.Add(shares)

	pos, ok := k.positions[assetID][provider]
	if !ok {
		pos = &types.Position{
			Owner:                    provider,
			AssetID:                  assetID,
			Shares:                   math.ZeroInt(),
			InitialTokenDeposit:      math.ZeroInt(),
			InitialSettlementDeposit: math.ZeroInt(),
		}
		k.positions[assetID][provider] = pos
	}
	pos.Shares = pos.Shares.Add(shares)
	pos.InitialTokenDeposit = pos.InitialTokenDeposit.Add(useToken)
	pos.InitialSettlementDeposit = pos.InitialSettlementDeposit.Add(useSettlement)

	record(oracle, pool.SpotPrice(), now, k.params.TwapMaxObservations)

	k.logger.Info("liquidity added",
		"asset", assetID, "provider", provider,
		"token_amount", useToken.String(), "settlement_amount", useSettlement.String(),
		"shares", shares.String())
	k.bus.Emit(types.EventLiquidityAdded{
		AssetID:           assetID,
		Provider:          provider,
		TokenAmount:       useToken,
		SettlementAmount:  useSettlement,
		SharesMinted:      shares,
		TokenReserve:      pool.TokenReserve,
		SettlementReserve: pool.SettlementReserve,
		TotalShares:       pool.TotalShares,
	})

	k.metrics.LiquidityAdds.WithLabelValues(assetID).Inc()
	k.setReserveGauges(*pool)

	return AddLiquidityResult{SharesMinted: shares, TokenUsed: useToken, SettlementUsed: useSettlement}, nil
}

// RemoveLiquidity burns shares and pays out both legs pro rata. The locked
// seed position can never be redeemed, so the reserves can never reach
// zero through withdrawals.
func (k *Keeper) RemoveLiquidity(provider, assetID string, shares, minTokenOut, minSettlementOut math.Int) (RemoveLiquidityResult, error) {
	if err := k.guard.RequireNotPaused(); err != nil {
		return RemoveLiquidityResult{}, err
	}
	if provider == "" {
		return RemoveLiquidityResult{}, types.ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if provider == types.LockedSharesOwner {
		return RemoveLiquidityResult{}, types.ErrLockedShares
	}
	if shares.IsNil() || !shares.IsPositive() {
		return RemoveLiquidityResult{}, types.ErrInvalidInput.Wrap("share amount must be positive")
	}
	if minTokenOut.IsNil() || minTokenOut.IsNegative() || minSettlementOut.IsNil() || minSettlementOut.IsNegative() {
		return RemoveLiquidityResult{}, types.ErrInvalidInput.Wrap("minimum outputs cannot be negative")
	}

	lock, err := k.poolLock(assetID)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	oracle := k.oracles[assetID]
	k.mu.RUnlock()

	if !pool.Active {
		return RemoveLiquidityResult{}, types.ErrPoolPaused.Wrapf("pool %s is paused", assetID)
	}

	pos, ok := k.positions[assetID][provider]
	if !ok || pos.Shares.LT(shares) {
		have := math.ZeroInt()
		if ok {
			have = pos.Shares
		}
		return RemoveLiquidityResult{}, types.ErrInsufficientShares.Wrapf(
			"position holds %s shares, redemption wants %s", have.String(), shares.String())
	}

	tokenOut, err := SafeMulDiv(pool.TokenReserve, shares, pool.TotalShares)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}
	settlementOut, err := SafeMulDiv(pool.SettlementReserve, shares, pool.TotalShares)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}
	if !tokenOut.IsPositive() || !settlementOut.IsPositive() {
		return RemoveLiquidityResult{}, types.ErrInvalidInput.Wrap("redemption too small: payout rounds to zero")
	}
	if tokenOut.LT(minTokenOut) || settlementOut.LT(minSettlementOut) {
		return RemoveLiquidityResult{}, types.ErrSlippageExceeded.Wrapf(
			"payout %s/%s below minimums %s/%s",
			tokenOut.String(), settlementOut.String(), minTokenOut.String(), minSettlementOut.String())
	}
	if tokenOut.GTE(pool.TokenReserve) || settlementOut.GTE(pool.SettlementReserve) {
		return RemoveLiquidityResult{}, types.ErrReserveDepleted.Wrapf(
			"payout would empty pool %s reserves", assetID)
	}

	modAcct := types.ModuleAccount(assetID)
	if err := k.tokens.Transfer(assetID, modAcct, provider, tokenOut); err != nil {
		return RemoveLiquidityResult{}, err
	}
	if err := k.settlement.Transfer(modAcct, provider, settlementOut); err != nil {
		if revertErr := k.tokens.Transfer(assetID, provider, modAcct, tokenOut); revertErr != nil {
			k.logger.Error("failed to revert token payout after settlement transfer failure",
				"asset", assetID, "provider", provider,
				"original_error", err, "revert_error", revertErr)
		}
		return RemoveLiquidityResult{}, err
	}

	now := k.now().Unix()
	accumulate(oracle, pool.SpotPrice(), now)

	pool.TokenReserve = pool.TokenReserve.Sub(tokenOut)
	pool.SettlementReserve = pool.SettlementReserve.Sub(settlementOut)
	pool.TotalShares = pool.TotalShares.Sub(shares)

	pos.Shares = pos.Shares.Sub(shares)
	if pos.Shares.IsZero() {
		delete(k.positions[assetID], provider)
	}

	record(oracle, pool.SpotPrice(), now, k.params.TwapMaxObservations)

	k.logger.Info("liquidity removed",
		"asset", assetID, "provider", provider,
		"shares", shares.String(),
		"token_amount", tokenOut.String(), "settlement_amount", settlementOut.String())
	k.bus.Emit(types.EventLiquidityRemoved{
		AssetID:           assetID,
		Provider:          provider,
		SharesBurned:      shares,
		TokenAmount:       tokenOut,
		SettlementAmount:  settlementOut,
		TokenReserve:      pool.TokenReserve,
		SettlementReserve: pool.SettlementReserve,
		TotalShares:       pool.TotalShares,
	})

	k.metrics.LiquidityRemovals.WithLabelValues(assetID).Inc()
	k.setReserveGauges(*pool)

	return RemoveLiquidityResult{SharesBurned: shares, TokenAmount: tokenOut, SettlementAmount: settlementOut}, nil
}
