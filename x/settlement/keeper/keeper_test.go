package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	guardkeeper "github.com/Mustafa6066/Osool-sub002/x/guard/keeper"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
	"github.com/Mustafa6066/Osool-sub002/x/settlement/keeper"
	"github.com/Mustafa6066/Osool-sub002/x/settlement/types"
)

const (
	admin    = "osool1admin"
	verifier = "osool1verifier"
	alice    = "osool1alice"
	bob      = "osool1bob"
)

func newKeepers(t *testing.T, cap int64) (*keeper.Keeper, *guardkeeper.Keeper, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	guard := guardkeeper.NewKeeper(admin, log.NewNopLogger(), bus)
	require.NoError(t, guard.GrantRole(admin, guardtypes.RoleMinter, verifier))
	k := keeper.NewKeeper(guard, math.NewInt(cap), log.NewNopLogger(), bus)
	return k, guard, bus
}

func TestMint(t *testing.T) {
	tests := []struct {
		name    string
		minter  string
		to      string
		amount  int64
		ref     string
		wantErr error
	}{
		{name: "valid mint", minter: verifier, to: alice, amount: 5000, ref: "dep-001"},
		{name: "unauthorized minter", minter: alice, to: alice, amount: 5000, ref: "dep-002", wantErr: guardtypes.ErrUnauthorized},
		{name: "zero amount", minter: verifier, to: alice, amount: 0, ref: "dep-003", wantErr: types.ErrInvalidAmount},
		{name: "empty recipient", minter: verifier, to: "", amount: 100, ref: "dep-004", wantErr: types.ErrInvalidAccount},
		{name: "empty reference", minter: verifier, to: alice, amount: 100, ref: "", wantErr: types.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, _, _ := newKeepers(t, 1_000_000)
			err := k.Mint(tt.minter, tt.to, math.NewInt(tt.amount), tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.True(t, k.TotalSupply().IsZero())
				return
			}
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tt.amount), k.Balance(tt.to))
			require.Equal(t, math.NewInt(tt.amount), k.TotalSupply())
		})
	}
}

func TestMintDuplicateDeposit(t *testing.T) {
	k, _, _ := newKeepers(t, 1_000_000)

	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))
	err := k.Mint(verifier, alice, math.NewInt(5000), "dep-001")
	require.ErrorIs(t, err, types.ErrDuplicateDeposit)

	// The balance change applied exactly once.
	require.Equal(t, math.NewInt(5000), k.Balance(alice))
	require.Equal(t, math.NewInt(5000), k.TotalSupply())

	// A fresh reference still works after the rejection.
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(1000), "dep-002"))
	require.Equal(t, math.NewInt(6000), k.Balance(alice))
}

func TestMintSupplyCap(t *testing.T) {
	k, _, _ := newKeepers(t, 10_000)

	require.NoError(t, k.Mint(verifier, alice, math.NewInt(9000), "dep-001"))
	err := k.Mint(verifier, bob, math.NewInt(2000), "dep-002")
	require.ErrorIs(t, err, types.ErrSupplyCapExceeded)

	// Rejected mint leaves the ledger unchanged, including the reference.
	require.True(t, k.Balance(bob).IsZero())
	require.Equal(t, math.NewInt(9000), k.TotalSupply())
	require.NoError(t, k.Mint(verifier, bob, math.NewInt(1000), "dep-002"))
}

func TestMintBlacklisted(t *testing.T) {
	k, _, _ := newKeepers(t, 1_000_000)
	require.NoError(t, k.SetBlacklisted(admin, alice, true))

	err := k.Mint(verifier, alice, math.NewInt(100), "dep-001")
	require.ErrorIs(t, err, types.ErrAccountBlacklisted)

	// The reference was not consumed by the rejected mint.
	require.NoError(t, k.SetBlacklisted(admin, alice, false))
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(100), "dep-001"))
}

func TestBurn(t *testing.T) {
	k, guard, bus := newKeepers(t, 1_000_000)
	require.NoError(t, guard.GrantRole(admin, guardtypes.RoleBurner, "osool1redeemer"))
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))

	ch, cancel := bus.Subscribe(16)
	defer cancel()

	// Self-redemption is allowed without the burner role.
	require.NoError(t, k.Burn(alice, alice, math.NewInt(1000)))
	require.Equal(t, math.NewInt(4000), k.Balance(alice))
	require.Equal(t, math.NewInt(4000), k.TotalSupply())

	env := <-ch
	require.Equal(t, "settlement.burned", env.Type)
	burned := env.Event.(types.EventBurned)
	require.Equal(t, types.RedemptionRecord{Owner: alice, Amount: math.NewInt(1000), Burner: alice}, burned.Redemption)

	// A burner may burn on behalf of the account.
	require.NoError(t, k.Burn("osool1redeemer", alice, math.NewInt(1000)))
	require.Equal(t, math.NewInt(3000), k.Balance(alice))

	// A third party may not.
	require.ErrorIs(t, k.Burn(bob, alice, math.NewInt(1000)), guardtypes.ErrUnauthorized)

	// Over-burn rejected.
	require.ErrorIs(t, k.Burn(alice, alice, math.NewInt(10_000)), types.ErrInsufficientFunds)
}

func TestTransfer(t *testing.T) {
	k, _, _ := newKeepers(t, 1_000_000)
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))

	require.NoError(t, k.Transfer(alice, bob, math.NewInt(2000)))
	require.Equal(t, math.NewInt(3000), k.Balance(alice))
	require.Equal(t, math.NewInt(2000), k.Balance(bob))

	require.ErrorIs(t, k.Transfer(alice, bob, math.NewInt(10_000)), types.ErrInsufficientFunds)
	require.ErrorIs(t, k.Transfer(alice, alice, math.NewInt(1)), types.ErrInvalidAccount)
	require.ErrorIs(t, k.Transfer("osool1ghost", bob, math.NewInt(1)), types.ErrAccountNotFound)
}

func TestTransferBlacklisted(t *testing.T) {
	k, _, _ := newKeepers(t, 1_000_000)
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))

	require.NoError(t, k.SetBlacklisted(admin, bob, true))
	require.ErrorIs(t, k.Transfer(alice, bob, math.NewInt(100)), types.ErrAccountBlacklisted)

	require.NoError(t, k.SetBlacklisted(admin, bob, false))
	require.NoError(t, k.SetBlacklisted(admin, alice, true))
	require.ErrorIs(t, k.Transfer(alice, bob, math.NewInt(100)), types.ErrAccountBlacklisted)
}

func TestTransferPaused(t *testing.T) {
	k, guard, _ := newKeepers(t, 1_000_000)
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))

	require.NoError(t, guard.Pause(admin))
	require.ErrorIs(t, k.Transfer(alice, bob, math.NewInt(100)), guardtypes.ErrPaused)
	require.ErrorIs(t, k.Mint(verifier, bob, math.NewInt(100), "dep-002"), guardtypes.ErrPaused)
	require.ErrorIs(t, k.Burn(alice, alice, math.NewInt(100)), guardtypes.ErrPaused)

	require.NoError(t, guard.Unpause(admin))
	require.NoError(t, k.Transfer(alice, bob, math.NewInt(100)))
}

func TestSupplyInvariant(t *testing.T) {
	k, _, _ := newKeepers(t, 1_000_000)
	require.NoError(t, k.Mint(verifier, alice, math.NewInt(5000), "dep-001"))
	require.NoError(t, k.Mint(verifier, bob, math.NewInt(2500), "dep-002"))
	require.NoError(t, k.Transfer(alice, bob, math.NewInt(123)))
	require.NoError(t, k.Burn(bob, bob, math.NewInt(777)))

	msg, broken := k.CheckSupplyInvariant()
	require.False(t, broken, msg)
}
