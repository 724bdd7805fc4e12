package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	"github.com/Mustafa6066/Osool-sub002/x/assets/keeper"
	"github.com/Mustafa6066/Osool-sub002/x/assets/types"
	guardkeeper "github.com/Mustafa6066/Osool-sub002/x/guard/keeper"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
)

const (
	admin    = "osool1admin"
	operator = "osool1operator"
	alice    = "osool1alice"
	bob      = "osool1bob"
)

func newKeeper(t *testing.T) *keeper.Keeper {
	t.Helper()
	bus := events.NewBus()
	guard := guardkeeper.NewKeeper(admin, log.NewNopLogger(), bus)
	require.NoError(t, guard.GrantRole(admin, guardtypes.RoleOperator, operator))
	return keeper.NewKeeper(guard, log.NewNopLogger(), bus)
}

func TestRegister(t *testing.T) {
	k := newKeeper(t)

	require.NoError(t, k.Register(operator, "prop-001", "Riyadh Tower Unit 4", math.NewInt(1_000_000), alice))
	asset, err := k.Asset("prop-001")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), asset.TotalSupply)
	require.Equal(t, math.NewInt(1_000_000), k.Balance("prop-001", alice))

	// Duplicate registration rejected.
	err = k.Register(operator, "prop-001", "dup", math.NewInt(1), alice)
	require.ErrorIs(t, err, types.ErrAssetExists)

	// Only operators may register.
	err = k.Register(alice, "prop-002", "x", math.NewInt(1), alice)
	require.ErrorIs(t, err, guardtypes.ErrUnauthorized)

	// Non-positive supply rejected.
	err = k.Register(operator, "prop-003", "x", math.ZeroInt(), alice)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestTransfer(t *testing.T) {
	k := newKeeper(t)
	require.NoError(t, k.Register(operator, "prop-001", "unit", math.NewInt(1000), alice))

	require.NoError(t, k.Transfer("prop-001", alice, bob, math.NewInt(400)))
	require.Equal(t, math.NewInt(600), k.Balance("prop-001", alice))
	require.Equal(t, math.NewInt(400), k.Balance("prop-001", bob))

	require.ErrorIs(t, k.Transfer("prop-001", alice, bob, math.NewInt(601)), types.ErrInsufficientBalance)
	require.ErrorIs(t, k.Transfer("prop-404", alice, bob, math.NewInt(1)), types.ErrAssetNotFound)
	require.ErrorIs(t, k.Transfer("prop-001", alice, alice, math.NewInt(1)), types.ErrInvalidAccount)

	msg, broken := k.CheckSupplyInvariant()
	require.False(t, broken, msg)
}
