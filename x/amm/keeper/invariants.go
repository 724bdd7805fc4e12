package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// CheckPoolInvariants verifies one pool's accounting:
//   - both reserves strictly positive
//   - total shares equal the sum of all position shares
//   - the locked seed position exists and holds at least MinLockedShares
//   - custody balances cover reserves plus accrued platform fees
//
// Returns a description and true when broken.
func (k *Keeper) CheckPoolInvariants(assetID string) (string, bool) {
	lock, err := k.poolLock(assetID)
	if err != nil {
		return err.Error(), true
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	positions := k.positions[assetID]
	k.mu.RUnlock()

	if !pool.TokenReserve.IsPositive() || !pool.SettlementReserve.IsPositive() {
		return fmt.Sprintf("pool %s: non-positive reserves %s/%s",
			assetID, pool.TokenReserve.String(), pool.SettlementReserve.String()), true
	}

	sum := math.ZeroInt()
	for _, pos := range positions {
		if pos.Shares.IsNegative() {
			return fmt.Sprintf("pool %s: negative share position for %s", assetID, pos.Owner), true
		}
		sum = sum.Add(pos.Shares)
	}
	if !sum.Equal(pool.TotalShares) {
		return fmt.Sprintf("pool %s: position sum %s != total shares %s",
			assetID, sum.String(), pool.TotalShares.String()), true
	}

	locked, ok := positions[types.LockedSharesOwner]
	if !ok || locked.Shares.LT(k.params.MinLockedShares) {
		return fmt.Sprintf("pool %s: locked seed position missing or below minimum", assetID), true
	}

	modAcct := types.ModuleAccount(assetID)
	wantToken := pool.TokenReserve.Add(pool.PlatformFeeToken)
	if k.tokens.Balance(assetID, modAcct).LT(wantToken) {
		return fmt.Sprintf("pool %s: token custody %s below bookkeeping %s",
			assetID, k.tokens.Balance(assetID, modAcct).String(), wantToken.String()), true
	}
	wantSettlement := pool.SettlementReserve.Add(pool.PlatformFeeSettlement)
	if k.settlement.Balance(modAcct).LT(wantSettlement) {
		return fmt.Sprintf("pool %s: settlement custody %s below bookkeeping %s",
			assetID, k.settlement.Balance(modAcct).String(), wantSettlement.String()), true
	}

	return "", false
}

// CheckAllInvariants runs CheckPoolInvariants over every pool.
func (k *Keeper) CheckAllInvariants() (string, bool) {
	k.mu.RLock()
	ids := make([]string, 0, len(k.pools))
	for id := range k.pools {
		ids = append(ids, id)
	}
	k.mu.RUnlock()

	for _, id := range ids {
		if msg, broken := k.CheckPoolInvariants(id); broken {
			return msg, true
		}
	}
	return "", false
}
