package keeper

import (
	"sync"

	"cosmossdk.io/log"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	"github.com/Mustafa6066/Osool-sub002/x/guard/types"
)

// Keeper holds role grants and the global pause flag. Role and pause state
// is rarely written and frequently read: every mutating entry point of the
// settlement and amm keepers consults it first, so reads go through an
// RWMutex and always observe the latest committed value.
type Keeper struct {
	mu     sync.RWMutex
	roles  map[string]map[string]struct{}
	paused bool

	logger log.Logger
	bus    *events.Bus
}

// NewKeeper creates a guard keeper with the given address holding the admin
// role. The admin grant is created at initialization and is revocable like
// any other grant (an admin may revoke itself after granting a successor).
func NewKeeper(admin string, logger log.Logger, bus *events.Bus) *Keeper {
	k := &Keeper{
		roles:  make(map[string]map[string]struct{}),
		logger: logger.With("module", "x/"+types.ModuleName),
		bus:    bus,
	}
	k.roles[types.RoleAdmin] = map[string]struct{}{admin: {}}
	return k
}

// HasRole reports whether addr currently holds role.
func (k *Keeper) HasRole(role, addr string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.roles[role][addr]
	return ok
}

// RequireRole returns ErrUnauthorized unless addr holds role. Failures are
// logged for the audit trail.
func (k *Keeper) RequireRole(role, addr string) error {
	if !k.HasRole(role, addr) {
		k.logger.Error("authorization failure", "role", role, "address", addr)
		return types.ErrUnauthorized.Wrapf("address %s does not hold role %s", addr, role)
	}
	return nil
}

// GrantRole grants role to addr. Only an admin may call.
func (k *Keeper) GrantRole(granter, role, addr string) error {
	if err := k.RequireRole(types.RoleAdmin, granter); err != nil {
		return err
	}
	if !types.IsValidRole(role) {
		return types.ErrInvalidRole.Wrapf("unknown role %q", role)
	}
	if addr == "" {
		return types.ErrInvalidAddress.Wrap("address cannot be empty")
	}

	k.mu.Lock()
	grants, ok := k.roles[role]
	if !ok {
		grants = make(map[string]struct{})
		k.roles[role] = grants
	}
	grants[addr] = struct{}{}
	k.mu.Unlock()

	k.logger.Info("role granted", "role", role, "address", addr, "granter", granter)
	k.bus.Emit(types.EventRoleGranted{Role: role, Address: addr, Granter: granter})
	return nil
}

// RevokeRole removes a grant. Only an admin may call. Revoking a grant that
// does not exist is a no-op rather than an error so revocation is idempotent.
func (k *Keeper) RevokeRole(revoker, role, addr string) error {
	if err := k.RequireRole(types.RoleAdmin, revoker); err != nil {
		return err
	}
	if !types.IsValidRole(role) {
		return types.ErrInvalidRole.Wrapf("unknown role %q", role)
	}

	k.mu.Lock()
	delete(k.roles[role], addr)
	k.mu.Unlock()

	k.logger.Info("role revoked", "role", role, "address", addr, "revoker", revoker)
	k.bus.Emit(types.EventRoleRevoked{Role: role, Address: addr, Revoker: revoker})
	return nil
}

// IsPaused reports the current global pause flag.
func (k *Keeper) IsPaused() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.paused
}

// RequireNotPaused returns ErrPaused when the global pause flag is set.
func (k *Keeper) RequireNotPaused() error {
	if k.IsPaused() {
		return types.ErrPaused.Wrap("global pause flag is set")
	}
	return nil
}

// Pause sets the global pause flag. Requires the pauser or admin role.
func (k *Keeper) Pause(by string) error {
	if err := k.requirePauser(by); err != nil {
		return err
	}

	k.mu.Lock()
	if k.paused {
		k.mu.Unlock()
		return types.ErrAlreadyPaused.Wrap("global pause flag is already set")
	}
	k.paused = true
	k.mu.Unlock()

	k.logger.Info("engine paused", "by", by)
	k.bus.Emit(types.EventPaused{By: by})
	return nil
}

// Unpause clears the global pause flag. Requires the pauser or admin role.
func (k *Keeper) Unpause(by string) error {
	if err := k.requirePauser(by); err != nil {
		return err
	}

	k.mu.Lock()
	if !k.paused {
		k.mu.Unlock()
		return types.ErrNotPaused.Wrap("global pause flag is not set")
	}
	k.paused = false
	k.mu.Unlock()

	k.logger.Info("engine unpaused", "by", by)
	k.bus.Emit(types.EventUnpaused{By: by})
	return nil
}

func (k *Keeper) requirePauser(addr string) error {
	if k.HasRole(types.RolePauser, addr) || k.HasRole(types.RoleAdmin, addr) {
		return nil
	}
	k.logger.Error("authorization failure", "role", types.RolePauser, "address", addr)
	return types.ErrUnauthorized.Wrapf("address %s may not toggle pause", addr)
}
