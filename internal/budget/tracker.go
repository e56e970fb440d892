// Package budget owns the authoritative category limit map and its edit
// session. Edits happen on a draft copy; the live map only changes on
// commit, atomically.
package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/prefs"
)

// prefsKey is where the budget map lives in the preference store.
const prefsKey = "budgets"

var (
	ErrNotEditing     = errors.New("no edit session in progress")
	ErrAlreadyEditing = errors.New("edit session already in progress")
)

// Tracker holds the live budget map plus, during an edit session, a
// draft. Commit persists the draft and replaces the live map; cancel
// throws the draft away.
type Tracker struct {
	mu       sync.Mutex
	current  *core.Budget
	draft    *core.Budget
	store    prefs.Store
	onCommit []func()
	log      *log.Logger
}

// Load reads the budget map from the preference store, seeding defaults
// when nothing is stored yet. A stored value that fails to parse falls
// back to defaults rather than aborting startup.
func Load(store prefs.Store, logger *log.Logger) (*Tracker, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBudget)

	t := &Tracker{store: store, log: logger}

	raw, ok, err := store.Get(prefsKey)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	if !ok {
		t.current = core.DefaultBudget()
		return t, nil
	}

	b := core.NewBudget()
	if err := json.Unmarshal([]byte(raw), b); err != nil {
		logger.Warn("stored budgets unreadable, using defaults", log.FieldError, err)
		t.current = core.DefaultBudget()
		return t, nil
	}
	t.current = b
	return t, nil
}

// Current returns a copy of the live budget map.
func (t *Tracker) Current() *core.Budget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Clone()
}

// Editing reports whether an edit session is open.
func (t *Tracker) Editing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft != nil
}

// BeginEdit copies the live map into a draft.
func (t *Tracker) BeginEdit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft != nil {
		return ErrAlreadyEditing
	}
	t.draft = t.current.Clone()
	return nil
}

// SetLimit updates a category limit on the draft only.
func (t *Tracker) SetLimit(category string, limit core.Money) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft == nil {
		return ErrNotEditing
	}
	t.draft.Set(category, limit)
	return nil
}

// AddCategory appends a new category with a zero limit to the draft.
func (t *Tracker) AddCategory(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft == nil {
		return ErrNotEditing
	}
	if _, exists := t.draft.Get(name); exists {
		return nil
	}
	t.draft.Set(name, core.Money{})
	return nil
}

// Commit persists the draft, swaps it in as the live map and closes the
// session. The live map is untouched when persisting fails.
func (t *Tracker) Commit() error {
	t.mu.Lock()
	if t.draft == nil {
		t.mu.Unlock()
		return ErrNotEditing
	}

	data, err := json.Marshal(t.draft)
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("encode budgets: %w", err)
	}
	if err := t.store.Set(prefsKey, string(data)); err != nil {
		t.mu.Unlock()
		return fmt.Errorf("persist budgets: %w", err)
	}

	t.current = t.draft
	t.draft = nil
	hooks := t.onCommit
	t.mu.Unlock()

	t.log.Info("budget committed", log.FieldOperation, log.OpCommit)
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// Cancel discards the draft without touching the live map.
func (t *Tracker) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft == nil {
		return ErrNotEditing
	}
	t.draft = nil
	return nil
}

// OnCommit registers a hook run after every successful commit.
func (t *Tracker) OnCommit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCommit = append(t.onCommit, fn)
}

// Draft returns a copy of the draft map, or nil outside a session.
func (t *Tracker) Draft() *core.Budget {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft == nil {
		return nil
	}
	return t.draft.Clone()
}
