package types

const (
	// ModuleName defines the module name
	ModuleName = "guard"
)

// Roles understood by the access control guard. Role names are stored as
// plain strings so that new roles can be introduced without a migration.
const (
	// RoleAdmin may grant and revoke any role, including admin itself.
	RoleAdmin = "admin"

	// RoleMinter may mint settlement tokens after verifying a fiat deposit.
	RoleMinter = "minter"

	// RoleBurner may burn settlement tokens from any account (redemptions).
	RoleBurner = "burner"

	// RolePauser may toggle the global pause flag.
	RolePauser = "pauser"

	// RoleOperator administers pools: per-pool pause, platform fee
	// withdrawal, and asset registration.
	RoleOperator = "operator"
)

// ValidRoles lists every role the guard will accept in a grant.
var ValidRoles = []string{RoleAdmin, RoleMinter, RoleBurner, RolePauser, RoleOperator}

// IsValidRole reports whether role is one of the known role names.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
