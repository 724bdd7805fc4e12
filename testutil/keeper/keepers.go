package keeper

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	ammkeeper "github.com/Mustafa6066/Osool-sub002/x/amm/keeper"
	ammtypes "github.com/Mustafa6066/Osool-sub002/x/amm/types"
	assetskeeper "github.com/Mustafa6066/Osool-sub002/x/assets/keeper"
	guardkeeper "github.com/Mustafa6066/Osool-sub002/x/guard/keeper"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
	settlementkeeper "github.com/Mustafa6066/Osool-sub002/x/settlement/keeper"
)

// Well-known fixture addresses.
const (
	Admin    = "osool1admin"
	Minter   = "osool1minter"
	Burner   = "osool1burner"
	Pauser   = "osool1pauser"
	Operator = "osool1operator"
)

// Clock is a settable time source for deterministic oracle tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at a fixed instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fixture time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Fixture wires all keepers the way the engine does at start, with every
// role granted to a well-known address and a settable clock.
type Fixture struct {
	Guard      *guardkeeper.Keeper
	Settlement *settlementkeeper.Keeper
	Assets     *assetskeeper.Keeper
	AMM        *ammkeeper.Keeper
	Bus        *events.Bus
	Clock      *Clock

	depositSeq atomic.Uint64
}

// NewFixture builds a full keeper stack with default parameters and a
// generous supply cap.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return NewFixtureWithParams(t, ammtypes.DefaultParams())
}

// NewFixtureWithParams builds the stack with custom pool parameters.
func NewFixtureWithParams(t *testing.T, params ammtypes.Params) *Fixture {
	t.Helper()
	require.NoError(t, params.Validate())

	logger := log.NewNopLogger()
	bus := events.NewBus()
	clock := NewClock(time.Unix(1_700_000_000, 0))

	guard := guardkeeper.NewKeeper(Admin, logger, bus)
	require.NoError(t, guard.GrantRole(Admin, guardtypes.RoleMinter, Minter))
	require.NoError(t, guard.GrantRole(Admin, guardtypes.RoleBurner, Burner))
	require.NoError(t, guard.GrantRole(Admin, guardtypes.RolePauser, Pauser))
	require.NoError(t, guard.GrantRole(Admin, guardtypes.RoleOperator, Operator))

	settlement := settlementkeeper.NewKeeper(guard, math.NewInt(1_000_000_000_000_000), logger, bus)
	assets := assetskeeper.NewKeeper(guard, logger, bus)
	amm := ammkeeper.NewKeeper(params, guard, settlement, assets, assets, logger, bus)
	amm.SetClock(clock.Now)

	return &Fixture{
		Guard:      guard,
		Settlement: settlement,
		Assets:     assets,
		AMM:        amm,
		Bus:        bus,
		Clock:      clock,
	}
}

// FundSettlement mints settlement tokens to addr using a deposit reference
// unique within the fixture.
func (f *Fixture) FundSettlement(t *testing.T, addr string, amount math.Int) {
	t.Helper()
	ref := fmt.Sprintf("%s/%s/%d", t.Name(), addr, f.depositSeq.Add(1))
	require.NoError(t, f.Settlement.Mint(Minter, addr, amount, ref))
}

// ListAsset registers a property and credits its supply to owner.
func (f *Fixture) ListAsset(t *testing.T, assetID string, supply math.Int, owner string) {
	t.Helper()
	require.NoError(t, f.Assets.Register(Operator, assetID, "Property "+assetID, supply, owner))
}
