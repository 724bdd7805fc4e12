package keeper

import (
	"sort"
	"sync"
	"time"

	"cosmossdk.io/log"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// Keeper owns the pool ledger: reserves, liquidity positions, and the
// per-pool price oracles. Pool reserves are custodied by a per-pool module
// account on the settlement and asset ledgers; the Pool struct is the
// bookkeeping view of those holdings.
//
// Locking: each pool has its own mutex, so trades on different assets
// never contend. k.mu guards only the maps themselves (pool creation and
// lookup). Lock order is pool lock first, then whatever locks the
// settlement/asset ledgers take internally; the keeper never holds two
// pool locks at once.
type Keeper struct {
	mu        sync.RWMutex
	pools     map[string]*types.Pool
	oracles   map[string]*types.PoolOracle
	positions map[string]map[string]*types.Position
	locks     map[string]*sync.Mutex

	params     types.Params
	guard      types.GuardKeeper
	settlement types.SettlementKeeper
	tokens     types.TokenLedger
	registry   types.PropertyRegistry

	logger  log.Logger
	bus     *events.Bus
	metrics *Metrics

	// now is injected so oracle tests can drive time deterministically.
	now func() time.Time
}

// NewKeeper creates a pool ledger keeper. Params are validated by the
// caller (config load) before construction.
func NewKeeper(
	params types.Params,
	guard types.GuardKeeper,
	settlement types.SettlementKeeper,
	tokens types.TokenLedger,
	registry types.PropertyRegistry,
	logger log.Logger,
	bus *events.Bus,
) *Keeper {
	return &Keeper{
		pools:      make(map[string]*types.Pool),
		oracles:    make(map[string]*types.PoolOracle),
		positions:  make(map[string]map[string]*types.Position),
		locks:      make(map[string]*sync.Mutex),
		params:     params,
		guard:      guard,
		settlement: settlement,
		tokens:     tokens,
		registry:   registry,
		logger:     logger.With("module", "x/"+types.ModuleName),
		bus:        bus,
		metrics:    NewMetrics(),
		now:        time.Now,
	}
}

// SetClock replaces the time source. Test hook only.
func (k *Keeper) SetClock(now func() time.Time) {
	k.now = now
}

// Params returns the pool ledger parameters.
func (k *Keeper) Params() types.Params {
	return k.params
}

// poolLock returns the mutex serializing operations on one pool, or
// ErrPoolNotFound. Callers lock it before touching the pool pointer.
func (k *Keeper) poolLock(assetID string) (*sync.Mutex, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	lock, ok := k.locks[assetID]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("no pool for asset %s", assetID)
	}
	return lock, nil
}

// GetPool returns a consistent snapshot of one pool.
func (k *Keeper) GetPool(assetID string) (types.Pool, error) {
	lock, err := k.poolLock(assetID)
	if err != nil {
		return types.Pool{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	pool := k.pools[assetID]
	k.mu.RUnlock()
	return *pool, nil
}

// GetPools returns snapshots of all pools, sorted by asset id.
func (k *Keeper) GetPools() []types.Pool {
	k.mu.RLock()
	ids := make([]string, 0, len(k.pools))
	for id := range k.pools {
		ids = append(ids, id)
	}
	k.mu.RUnlock()
	sort.Strings(ids)

	out := make([]types.Pool, 0, len(ids))
	for _, id := range ids {
		pool, err := k.GetPool(id)
		if err != nil {
			continue
		}
		out = append(out, pool)
	}
	return out
}

// GetPosition returns a provider's position in one pool, or
// ErrInsufficientShares if none exists.
func (k *Keeper) GetPosition(assetID, owner string) (types.Position, error) {
	lock, err := k.poolLock(assetID)
	if err != nil {
		return types.Position{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	defer k.mu.RUnlock()
	pos, ok := k.positions[assetID][owner]
	if !ok {
		return types.Position{}, types.ErrInsufficientShares.Wrapf("no position for %s in pool %s", owner, assetID)
	}
	return *pos, nil
}

// GetPositions returns all positions in one pool, sorted by owner. The
// locked seed position is included.
func (k *Keeper) GetPositions(assetID string) ([]types.Position, error) {
	lock, err := k.poolLock(assetID)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]types.Position, 0, len(k.positions[assetID]))
	for _, pos := range k.positions[assetID] {
		out = append(out, *pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out, nil
}
