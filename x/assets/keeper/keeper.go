package keeper

import (
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
	"github.com/Mustafa6066/Osool-sub002/x/assets/types"
)

// GuardKeeper is the access-control surface the asset ledger depends on.
type GuardKeeper interface {
	RequireRole(role, addr string) error
	RequireNotPaused() error
}

// Keeper tracks fractional ownership token balances per asset. It doubles
// as the property registry surface consulted by the pool ledger at pool
// initialization: asset identity and outstanding supply live here.
//
// A single mutex serializes balance mutations across assets. Asset-token
// volume is orders of magnitude below settlement volume (one transfer per
// swap leg), so striping per asset bought nothing measurable.
type Keeper struct {
	mu       sync.Mutex
	assets   map[string]types.Asset
	balances map[string]map[string]math.Int

	guard  GuardKeeper
	logger log.Logger
	bus    *events.Bus
}

// NewKeeper creates an asset ledger keeper.
func NewKeeper(guard GuardKeeper, logger log.Logger, bus *events.Bus) *Keeper {
	return &Keeper{
		assets:   make(map[string]types.Asset),
		balances: make(map[string]map[string]math.Int),
		guard:    guard,
		logger:   logger.With("module", "x/"+types.ModuleName),
		bus:      bus,
	}
}

// Register records a listed property and credits its full token supply to
// the listing owner. Requires the operator role. Assets are registered once
// and never deleted.
func (k *Keeper) Register(operator, assetID, name string, totalSupply math.Int, owner string) error {
	if err := k.guard.RequireRole(guardtypes.RoleOperator, operator); err != nil {
		return err
	}
	if assetID == "" {
		return types.ErrInvalidAsset.Wrap("asset id cannot be empty")
	}
	if owner == "" {
		return types.ErrInvalidAccount.Wrap("owner cannot be empty")
	}
	if totalSupply.IsNil() || !totalSupply.IsPositive() {
		return types.ErrInvalidAmount.Wrap("total supply must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, exists := k.assets[assetID]; exists {
		return types.ErrAssetExists.Wrapf("asset %s already registered", assetID)
	}

	k.assets[assetID] = types.Asset{ID: assetID, Name: name, TotalSupply: totalSupply}
	k.balances[assetID] = map[string]math.Int{owner: totalSupply}

	k.logger.Info("asset registered", "asset", assetID, "supply", totalSupply.String(), "owner", owner)
	k.bus.Emit(types.EventAssetRegistered{AssetID: assetID, Name: name, TotalSupply: totalSupply, Owner: owner})
	return nil
}

// Asset returns the registered asset, or ErrAssetNotFound.
func (k *Keeper) Asset(assetID string) (types.Asset, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	asset, ok := k.assets[assetID]
	if !ok {
		return types.Asset{}, types.ErrAssetNotFound.Wrapf("asset %s is not registered", assetID)
	}
	return asset, nil
}

// OutstandingSupply returns the registered token supply of an asset, or
// ErrAssetNotFound. This is the registry surface the pool ledger consults.
func (k *Keeper) OutstandingSupply(assetID string) (math.Int, error) {
	asset, err := k.Asset(assetID)
	if err != nil {
		return math.Int{}, err
	}
	return asset.TotalSupply, nil
}

// Transfer moves asset tokens between holders. Both legs apply in one
// critical section.
func (k *Keeper) Transfer(assetID, from, to string, amount math.Int) error {
	if err := k.guard.RequireNotPaused(); err != nil {
		return err
	}
	if from == "" || to == "" {
		return types.ErrInvalidAccount.Wrap("transfer parties cannot be empty")
	}
	if from == to {
		return types.ErrInvalidAccount.Wrap("cannot transfer to self")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("transfer amount must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	holders, ok := k.balances[assetID]
	if !ok {
		return types.ErrAssetNotFound.Wrapf("asset %s is not registered", assetID)
	}

	src, ok := holders[from]
	if !ok || src.LT(amount) {
		have := math.ZeroInt()
		if ok {
			have = src
		}
		return types.ErrInsufficientBalance.Wrapf("asset %s: balance %s < transfer amount %s",
			assetID, have.String(), amount.String())
	}

	holders[from] = src.Sub(amount)
	dst, ok := holders[to]
	if !ok {
		dst = math.ZeroInt()
	}
	holders[to] = dst.Add(amount)

	k.bus.Emit(types.EventTokensTransferred{
		AssetID:     assetID,
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: holders[from],
		ToBalance:   holders[to],
	})
	return nil
}

// Balance returns the asset-token balance of addr; unknown holders have a
// zero balance.
func (k *Keeper) Balance(assetID, addr string) math.Int {
	k.mu.Lock()
	defer k.mu.Unlock()
	if holders, ok := k.balances[assetID]; ok {
		if bal, ok := holders[addr]; ok {
			return bal
		}
	}
	return math.ZeroInt()
}

// CheckSupplyInvariant verifies that the holder balances of every asset sum
// to its registered total supply. Returns a description and true when the
// invariant is broken.
func (k *Keeper) CheckSupplyInvariant() (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for id, asset := range k.assets {
		sum := math.ZeroInt()
		for _, bal := range k.balances[id] {
			if bal.IsNegative() {
				return "negative balance in asset " + id, true
			}
			sum = sum.Add(bal)
		}
		if !sum.Equal(asset.TotalSupply) {
			return "asset " + id + ": holder sum " + sum.String() + " != supply " + asset.TotalSupply.String(), true
		}
	}
	return "", false
}
