package keeper

import (
	"sync"

	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
)

// InitPool creates the pool for one asset and seeds both reserves from the
// creator's holdings. Seed shares are the geometric mean of the two
// deposits; MinLockedShares of them are assigned to the locked owner and
// can never be redeemed, the rest go to the creator.
func (k *Keeper) InitPool(creator, assetID string, tokenAmount, settlementAmount math.Int) (types.Pool, error) {
	if err := k.guard.RequireNotPaused(); err != nil {
		return types.Pool{}, err
	}
	if creator == "" {
		return types.Pool{}, types.ErrInvalidInput.Wrap("creator cannot be empty")
	}
	if assetID == "" {
		return types.Pool{}, types.ErrInvalidInput.Wrap("asset id cannot be empty")
	}
	if tokenAmount.IsNil() || !tokenAmount.IsPositive() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("token deposit must be positive")
	}
	if settlementAmount.IsNil() || !settlementAmount.IsPositive() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("settlement deposit must be positive")
	}

	// Only listed assets can be pooled, and the deposit cannot exceed what
	// exists.
	supply, err := k.registry.OutstandingSupply(assetID)
	if err != nil {
		return types.Pool{}, err
	}
	if tokenAmount.GT(supply) {
		return types.Pool{}, types.ErrInvalidInput.Wrapf("token deposit %s exceeds outstanding supply %s",
			tokenAmount.String(), supply.String())
	}

	// Seed shares: floor(sqrt(tokenAmount * settlementAmount)).
	seedShares, err := IntSqrt(tokenAmount, settlementAmount)
	if err != nil {
		return types.Pool{}, err
	}
	locked := k.params.MinLockedShares
	if seedShares.LTE(locked) {
		return types.Pool{}, types.ErrInsufficientSeedLiquidity.Wrapf(
			"seed shares %s must exceed locked minimum %s", seedShares.String(), locked.String())
	}
	creatorShares := seedShares.Sub(locked)

	// Pool creation is rare; the map write lock is held across the custody
	// transfers so two concurrent creations of the same asset cannot both
	// pass the existence check.
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, exists := k.pools[assetID]; exists {
		return types.Pool{}, types.ErrPoolAlreadyExists.Wrapf("pool for asset %s already exists", assetID)
	}

	modAcct := types.ModuleAccount(assetID)
	if err := k.tokens.Transfer(assetID, creator, modAcct, tokenAmount); err != nil {
		return types.Pool{}, err
	}
	if err := k.settlement.Transfer(creator, modAcct, settlementAmount); err != nil {
		if revertErr := k.tokens.Transfer(assetID, modAcct, creator, tokenAmount); revertErr != nil {
			k.logger.Error("failed to revert token deposit after settlement transfer failure",
				"asset", assetID, "creator", creator,
				"original_error", err, "revert_error", revertErr)
		}
		return types.Pool{}, err
	}

	now := k.now()
	pool := &types.Pool{
		AssetID:               assetID,
		TokenReserve:          tokenAmount,
		SettlementReserve:     settlementAmount,
		TotalShares:           seedShares,
		PlatformFeeToken:      math.ZeroInt(),
		PlatformFeeSettlement: math.ZeroInt(),
		Active:                true,
		CreatedAt:             now.Unix(),
	}
	spot := pool.SpotPrice()
	k.pools[assetID] = pool
	k.locks[assetID] = &sync.Mutex{}
	k.oracles[assetID] = &types.PoolOracle{
		AssetID:         assetID,
		CumulativePrice: math.LegacyZeroDec(),
		LastTimestamp:   now.Unix(),
		Observations: []types.Observation{{
			Timestamp:       now.Unix(),
			CumulativePrice: math.LegacyZeroDec(),
			SpotPrice:       spot,
		}},
	}
	k.positions[assetID] = map[string]*types.Position{
		types.LockedSharesOwner: {
			Owner:                    types.LockedSharesOwner,
			AssetID:                  assetID,
			Shares:                   locked,
			InitialTokenDeposit:      math.ZeroInt(),
			InitialSettlementDeposit: math.ZeroInt(),
		},
		creator: {
			Owner:                    creator,
			AssetID:                  assetID,
			Shares:                   creatorShares,
			InitialTokenDeposit:      tokenAmount,
			InitialSettlementDeposit: settlementAmount,
		},
	}

	k.logger.Info("pool initialized",
		"asset", assetID, "creator", creator,
		"token_reserve", tokenAmount.String(),
		"settlement_reserve", settlementAmount.String(),
		"total_shares", seedShares.String(),
		"locked_shares", locked.String())
	k.bus.Emit(types.EventPoolInitialized{
		AssetID:           assetID,
		Creator:           creator,
		TokenReserve:      tokenAmount,
		SettlementReserve: settlementAmount,
		TotalShares:       seedShares,
		LockedShares:      locked,
		CreatorShares:     creatorShares,
	})

	k.metrics.PoolsTotal.Inc()
	k.setReserveGauges(*pool)

	return *pool, nil
}

// PausePool halts swaps and liquidity operations on one pool. Requires the
// operator role. Independent of the global guard pause.
func (k *Keeper) PausePool(operator, assetID string) error {
	return k.setPoolActive(operator, assetID, false)
}

// UnpausePool resumes a paused pool. Requires the operator role.
func (k *Keeper) UnpausePool(operator, assetID string) error {
	return k.setPoolActive(operator, assetID, true)
}

func (k *Keeper) setPoolActive(operator, assetID string, active bool) error {
	if err := k.guard.RequireRole(guardtypes.RoleOperator, operator); err != nil {
		return err
	}
	lock, err := k.poolLock(assetID)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	k.mu.RUnlock()

	if pool.Active == active {
		if active {
			return types.ErrInvalidInput.Wrapf("pool %s is not paused", assetID)
		}
		return types.ErrPoolPaused.Wrapf("pool %s is already paused", assetID)
	}
	pool.Active = active

	if active {
		k.logger.Info("pool unpaused", "asset", assetID, "by", operator)
		k.bus.Emit(types.EventPoolUnpaused{AssetID: assetID, By: operator})
	} else {
		k.logger.Info("pool paused", "asset", assetID, "by", operator)
		k.bus.Emit(types.EventPoolPaused{AssetID: assetID, By: operator})
	}
	return nil
}

// WithdrawPlatformFees sweeps the accrued platform fee balances of one pool
// to recipient. Requires the operator role. A sweep with nothing accrued is
// a no-op.
func (k *Keeper) WithdrawPlatformFees(operator, assetID, recipient string) error {
	if err := k.guard.RequireRole(guardtypes.RoleOperator, operator); err != nil {
		return err
	}
	if recipient == "" {
		return types.ErrInvalidInput.Wrap("recipient cannot be empty")
	}
	lock, err := k.poolLock(assetID)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	k.mu.RUnlock()

	tokenAmount := pool.PlatformFeeToken
	settlementAmount := pool.PlatformFeeSettlement
	if tokenAmount.IsZero() && settlementAmount.IsZero() {
		return nil
	}

	modAcct := types.ModuleAccount(assetID)
	if tokenAmount.IsPositive() {
		if err := k.tokens.Transfer(assetID, modAcct, recipient, tokenAmount); err != nil {
			return err
		}
	}
	if settlementAmount.IsPositive() {
		if err := k.settlement.Transfer(modAcct, recipient, settlementAmount); err != nil {
			if tokenAmount.IsPositive() {
				if revertErr := k.tokens.Transfer(assetID, recipient, modAcct, tokenAmount); revertErr != nil {
					k.logger.Error("failed to revert token fee sweep after settlement transfer failure",
						"asset", assetID, "recipient", recipient,
						"original_error", err, "revert_error", revertErr)
				}
			}
			return err
		}
	}

	pool.PlatformFeeToken = math.ZeroInt()
	pool.PlatformFeeSettlement = math.ZeroInt()

	k.logger.Info("platform fees withdrawn",
		"asset", assetID, "recipient", recipient,
		"token_amount", tokenAmount.String(),
		"settlement_amount", settlementAmount.String())
	k.bus.Emit(types.EventPlatformFeesWithdrawn{
		AssetID:          assetID,
		Recipient:        recipient,
		TokenAmount:      tokenAmount,
		SettlementAmount: settlementAmount,
	})
	return nil
}
