package types

// GuardKeeper is the access-control surface the settlement ledger depends
// on. Satisfied by the guard module keeper.
type GuardKeeper interface {
	RequireRole(role, addr string) error
	HasRole(role, addr string) bool
	RequireNotPaused() error
}
