package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	"github.com/Mustafa6066/Osool-sub002/x/guard/keeper"
	"github.com/Mustafa6066/Osool-sub002/x/guard/types"
)

const admin = "osool1admin"

func newKeeper() *keeper.Keeper {
	return keeper.NewKeeper(admin, log.NewNopLogger(), events.NewBus())
}

func TestGrantRole(t *testing.T) {
	tests := []struct {
		name    string
		granter string
		role    string
		addr    string
		wantErr error
	}{
		{name: "admin grants minter", granter: admin, role: types.RoleMinter, addr: "osool1verifier"},
		{name: "admin grants pauser", granter: admin, role: types.RolePauser, addr: "osool1ops"},
		{name: "non-admin cannot grant", granter: "osool1nobody", role: types.RoleMinter, addr: "osool1x", wantErr: types.ErrUnauthorized},
		{name: "unknown role rejected", granter: admin, role: "superuser", addr: "osool1x", wantErr: types.ErrInvalidRole},
		{name: "empty address rejected", granter: admin, role: types.RoleMinter, addr: "", wantErr: types.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newKeeper()
			err := k.GrantRole(tt.granter, tt.role, tt.addr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.False(t, k.HasRole(tt.role, tt.addr))
				return
			}
			require.NoError(t, err)
			require.True(t, k.HasRole(tt.role, tt.addr))
		})
	}
}

func TestRevokeRole(t *testing.T) {
	k := newKeeper()
	require.NoError(t, k.GrantRole(admin, types.RoleMinter, "osool1verifier"))
	require.NoError(t, k.RevokeRole(admin, types.RoleMinter, "osool1verifier"))
	require.False(t, k.HasRole(types.RoleMinter, "osool1verifier"))

	// Revocation is idempotent.
	require.NoError(t, k.RevokeRole(admin, types.RoleMinter, "osool1verifier"))

	// Only admin may revoke.
	err := k.RevokeRole("osool1nobody", types.RoleMinter, "osool1verifier")
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestPauseUnpause(t *testing.T) {
	k := newKeeper()
	require.NoError(t, k.GrantRole(admin, types.RolePauser, "osool1ops"))

	require.False(t, k.IsPaused())
	require.NoError(t, k.RequireNotPaused())

	require.NoError(t, k.Pause("osool1ops"))
	require.True(t, k.IsPaused())
	require.ErrorIs(t, k.RequireNotPaused(), types.ErrPaused)

	// Double pause rejected.
	require.ErrorIs(t, k.Pause("osool1ops"), types.ErrAlreadyPaused)

	require.NoError(t, k.Unpause(admin))
	require.False(t, k.IsPaused())
	require.ErrorIs(t, k.Unpause(admin), types.ErrNotPaused)

	// Unprivileged address may not toggle.
	require.ErrorIs(t, k.Pause("osool1nobody"), types.ErrUnauthorized)
}

func TestPauseEventsEmitted(t *testing.T) {
	bus := events.NewBus()
	k := keeper.NewKeeper(admin, log.NewNopLogger(), bus)
	ch, cancel := bus.Subscribe(8)
	defer cancel()

	require.NoError(t, k.Pause(admin))
	env := <-ch
	require.Equal(t, "guard.paused", env.Type)
	require.Equal(t, types.EventPaused{By: admin}, env.Event)

	require.NoError(t, k.Unpause(admin))
	env = <-ch
	require.Equal(t, "guard.unpaused", env.Type)
}
