package dashboard

import (
	"sync"
	"time"

	"finboard/internal/core"
	"finboard/internal/log"
)

// BudgetProvider supplies the current authoritative budget map.
type BudgetProvider interface {
	Current() *core.Budget
}

// Refresher serializes recomputation triggers. It keeps the last ledger
// snapshot it was given and hands out freshly assembled dashboards on
// demand. Snapshot pushes, budget commits and dashboard reads all run
// under the same lock, so no two recomputations overlap.
type Refresher struct {
	mu       sync.Mutex
	snapshot []core.Transaction
	budgets  BudgetProvider
	onChange []func()
	now      func() time.Time
	log      *log.Logger
}

// NewRefresher wires a refresher to its budget source. The logger may be
// nil when the caller does not care about trigger logging.
func NewRefresher(budgets BudgetProvider, logger *log.Logger) *Refresher {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Refresher{
		budgets: budgets,
		now:     time.Now,
		log:     logger.WithComponent(log.ComponentDashboard),
	}
}

// OnChange registers a hook invoked after every trigger, once the new
// state is in place. Hooks run under the refresher lock and must not call
// back into it.
func (rf *Refresher) OnChange(fn func()) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.onChange = append(rf.onChange, fn)
}

// OnSnapshot replaces the known ledger state with the pushed snapshot.
// It is the callback to hand to the ledger store's Subscribe.
func (rf *Refresher) OnSnapshot(txns []core.Transaction) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.snapshot = txns
	rf.log.Debug("ledger snapshot received", log.FieldCount, len(txns))
	rf.fireLocked()
}

// NotifyBudget signals that the budget map changed, typically after a
// commit. The next Dashboard call sees the new limits.
func (rf *Refresher) NotifyBudget() {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.log.Debug("budget change notified")
	rf.fireLocked()
}

// Dashboard assembles the full view state for the given range and
// calendar month from the last known snapshot.
func (rf *Refresher) Dashboard(r Range, year int, month time.Month) Dashboard {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return Assemble(rf.snapshot, rf.budgets.Current(), r, year, month, rf.now())
}

// Snapshot returns a copy of the last known transaction set.
func (rf *Refresher) Snapshot() []core.Transaction {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	out := make([]core.Transaction, len(rf.snapshot))
	copy(out, rf.snapshot)
	return out
}

func (rf *Refresher) fireLocked() {
	for _, fn := range rf.onChange {
		fn()
	}
}
