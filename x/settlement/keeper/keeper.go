package keeper

import (
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/Mustafa6066/Osool-sub002/pkg/events"
	guardtypes "github.com/Mustafa6066/Osool-sub002/x/guard/types"
	"github.com/Mustafa6066/Osool-sub002/x/settlement/types"
)

// Keeper owns the pegged settlement-token ledger: account balances, the
// total supply, the supply cap, and the set of consumed deposit references.
//
// All balance mutations for the ledger serialize under one mutex, which is
// a valid realization of per-account total ordering: a transfer touches two
// accounts and must be atomic with respect to both. Reads take the same
// lock; the maps are never exposed outside the keeper.
//
// The ledger does not verify fiat deposits. Callers of Mint hold the minter
// role precisely because an external payment verifier confirmed the deposit
// before calling in; that trust boundary is deliberate.
type Keeper struct {
	mu           sync.Mutex
	accounts     map[string]*types.Account
	usedDeposits map[string]struct{}
	totalSupply  math.Int
	maxSupplyCap math.Int

	guard   types.GuardKeeper
	logger  log.Logger
	bus     *events.Bus
	metrics *Metrics
}

// NewKeeper creates a settlement keeper. maxSupplyCap bounds totalSupply;
// sum(balances) == totalSupply <= maxSupplyCap holds at all times.
func NewKeeper(guard types.GuardKeeper, maxSupplyCap math.Int, logger log.Logger, bus *events.Bus) *Keeper {
	return &Keeper{
		accounts:     make(map[string]*types.Account),
		usedDeposits: make(map[string]struct{}),
		totalSupply:  math.ZeroInt(),
		maxSupplyCap: maxSupplyCap,
		guard:        guard,
		logger:       logger.With("module", "x/"+types.ModuleName),
		bus:          bus,
		metrics:      NewMetrics(),
	}
}

// Mint credits amount to the account owned by to. Only a minter may call.
// depositReference must be globally unique; a repeated reference fails
// ErrDuplicateDeposit without any state change, making client retries safe.
func (k *Keeper) Mint(minter, to string, amount math.Int, depositReference string) error {
	if err := k.guard.RequireNotPaused(); err != nil {
		return err
	}
	if err := k.guard.RequireRole(guardtypes.RoleMinter, minter); err != nil {
		return err
	}
	if to == "" {
		return types.ErrInvalidAccount.Wrap("recipient cannot be empty")
	}
	if depositReference == "" {
		return types.ErrInvalidAmount.Wrap("deposit reference cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("mint amount must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, used := k.usedDeposits[depositReference]; used {
		return types.ErrDuplicateDeposit.Wrapf("deposit reference %q already consumed", depositReference)
	}

	newSupply := k.totalSupply.Add(amount)
	if newSupply.GT(k.maxSupplyCap) {
		k.logger.Error("mint would exceed supply cap",
			"supply", k.totalSupply.String(), "amount", amount.String(), "cap", k.maxSupplyCap.String())
		return types.ErrSupplyCapExceeded.Wrapf("supply %s + %s exceeds cap %s",
			k.totalSupply.String(), amount.String(), k.maxSupplyCap.String())
	}

	acct := k.getOrCreateAccount(to)
	if acct.Blacklisted {
		return types.ErrAccountBlacklisted.Wrapf("account %s is frozen", to)
	}

	// Commit: consume the reference and apply the balance change together.
	k.usedDeposits[depositReference] = struct{}{}
	acct.Balance = acct.Balance.Add(amount)
	k.totalSupply = newSupply

	k.logger.Info("minted", "to", to, "amount", amount.String(), "deposit_reference", depositReference)
	k.metrics.MintsTotal.Inc()
	k.metrics.TotalSupply.Set(intToFloat(k.totalSupply))
	k.bus.Emit(types.EventMinted{
		To:               to,
		Amount:           amount,
		DepositReference: depositReference,
		NewBalance:       acct.Balance,
		TotalSupply:      k.totalSupply,
	})
	return nil
}

// Burn debits amount from the account owned by from and decreases the total
// supply, emitting a redemption record for the off-chain fiat payout.
// Callable by a burner or by the account owner itself.
func (k *Keeper) Burn(caller, from string, amount math.Int) error {
	if err := k.guard.RequireNotPaused(); err != nil {
		return err
	}
	if caller != from {
		if err := k.guard.RequireRole(guardtypes.RoleBurner, caller); err != nil {
			return err
		}
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("burn amount must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	acct, ok := k.accounts[from]
	if !ok {
		return types.ErrAccountNotFound.Wrapf("account %s does not exist", from)
	}
	if acct.Balance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("balance %s < burn amount %s", acct.Balance.String(), amount.String())
	}

	acct.Balance = acct.Balance.Sub(amount)
	k.totalSupply = k.totalSupply.Sub(amount)
	if k.totalSupply.IsNegative() {
		// Unreachable while sum(balances) == totalSupply holds.
		k.logger.Error("total supply went negative after burn", "from", from, "amount", amount.String())
		return types.ErrInvalidSupplyChange.Wrap("total supply underflow")
	}

	k.logger.Info("burned", "from", from, "amount", amount.String(), "caller", caller)
	k.metrics.BurnsTotal.Inc()
	k.metrics.TotalSupply.Set(intToFloat(k.totalSupply))
	k.bus.Emit(types.EventBurned{
		From:        from,
		Amount:      amount,
		NewBalance:  acct.Balance,
		TotalSupply: k.totalSupply,
		Redemption:  types.RedemptionRecord{Owner: from, Amount: amount, Burner: caller},
	})
	return nil
}

// Transfer moves amount between two accounts. Fails when the ledger is
// paused or either party is blacklisted. Both legs apply in one critical
// section: either both balances change or neither does.
func (k *Keeper) Transfer(from, to string, amount math.Int) error {
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

	src, ok := k.accounts[from]
	if !ok {
		return types.ErrAccountNotFound.Wrapf("account %s does not exist", from)
	}
	if src.Blacklisted {
		return types.ErrAccountBlacklisted.Wrapf("sender %s is frozen", from)
	}
	dst := k.getOrCreateAccount(to)
	if dst.Blacklisted {
		return types.ErrAccountBlacklisted.Wrapf("recipient %s is frozen", to)
	}
	if src.Balance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("balance %s < transfer amount %s", src.Balance.String(), amount.String())
	}

	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)

	k.metrics.TransfersTotal.Inc()
	k.bus.Emit(types.EventTransferred{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: src.Balance,
		ToBalance:   dst.Balance,
	})
	return nil
}

// SetBlacklisted freezes or unfreezes an account. Admin only. Freezing an
// unknown account creates it so the freeze applies before any first mint.
func (k *Keeper) SetBlacklisted(admin, addr string, blacklisted bool) error {
	if err := k.guard.RequireRole(guardtypes.RoleAdmin, admin); err != nil {
		return err
	}
	if addr == "" {
		return types.ErrInvalidAccount.Wrap("address cannot be empty")
	}

	k.mu.Lock()
	acct := k.getOrCreateAccount(addr)
	acct.Blacklisted = blacklisted
	k.mu.Unlock()

	k.logger.Info("blacklist updated", "account", addr, "blacklisted", blacklisted, "by", admin)
	k.bus.Emit(types.EventBlacklistUpdated{Account: addr, Blacklisted: blacklisted, By: admin})
	return nil
}

// Balance returns the balance of addr; unknown accounts have zero balance.
func (k *Keeper) Balance(addr string) math.Int {
	k.mu.Lock()
	defer k.mu.Unlock()
	if acct, ok := k.accounts[addr]; ok {
		return acct.Balance
	}
	return math.ZeroInt()
}

// Account returns a copy of the account owned by addr.
func (k *Keeper) Account(addr string) (types.Account, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	acct, ok := k.accounts[addr]
	if !ok {
		return types.Account{}, types.ErrAccountNotFound.Wrapf("account %s does not exist", addr)
	}
	return *acct, nil
}

// TotalSupply returns the current total supply.
func (k *Keeper) TotalSupply() math.Int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.totalSupply
}

// MaxSupplyCap returns the configured supply cap.
func (k *Keeper) MaxSupplyCap() math.Int {
	return k.maxSupplyCap
}

// IsBlacklisted reports whether addr is frozen.
func (k *Keeper) IsBlacklisted(addr string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	acct, ok := k.accounts[addr]
	return ok && acct.Blacklisted
}

// CheckSupplyInvariant verifies sum(balances) == totalSupply <= cap.
// Returns a description and true when the invariant is broken.
func (k *Keeper) CheckSupplyInvariant() (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	sum := math.ZeroInt()
	for _, acct := range k.accounts {
		if acct.Balance.IsNegative() {
			return "negative balance for " + acct.Owner, true
		}
		sum = sum.Add(acct.Balance)
	}
	if !sum.Equal(k.totalSupply) {
		return "sum of balances " + sum.String() + " != total supply " + k.totalSupply.String(), true
	}
	if k.totalSupply.GT(k.maxSupplyCap) {
		return "total supply " + k.totalSupply.String() + " exceeds cap " + k.maxSupplyCap.String(), true
	}
	return "", false
}

// getOrCreateAccount must be called with the keeper lock held.
func (k *Keeper) getOrCreateAccount(addr string) *types.Account {
	acct, ok := k.accounts[addr]
	if !ok {
		acct = &types.Account{Owner: addr, Balance: math.ZeroInt()}
		k.accounts[addr] = acct
	}
	return acct
}

func intToFloat(i math.Int) float64 {
	f, err := math.LegacyNewDecFromInt(i).Float64()
	if err != nil {
		return 0
	}
	return f
}
