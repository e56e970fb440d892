package export

import (
	"encoding/json"
	"fmt"
	"io"

	"finboard/internal/core"
)

// Backup is the full-state JSON snapshot: every transaction plus the
// budget map.
type Backup struct {
	Transactions []core.Transaction `json:"transactions"`
	Budgets      *core.Budget       `json:"budgets"`
}

// WriteBackup streams the backup as indented JSON.
func WriteBackup(w io.Writer, txns []core.Transaction, budgets *core.Budget) error {
	if txns == nil {
		txns = []core.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Backup{Transactions: txns, Budgets: budgets}); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// ReadBackup parses a backup previously written by WriteBackup.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	b.Budgets = core.NewBudget()
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &b, nil
}
