// Package ledger defines the contract the rest of the system uses to talk
// to a replicated transaction store. Stores push the full transaction set
// to subscribers whenever it changes; there are no partial updates.
package ledger

import (
	"context"
	"errors"

	"finboard/internal/core"
)

// ErrNotFound is returned by Remove when no transaction has the given id.
var ErrNotFound = errors.New("transaction not found")

// SnapshotFunc receives the complete current transaction set. Each call
// replaces whatever state the subscriber held before.
type SnapshotFunc func(txns []core.Transaction)

// Store is the ledger contract. Append assigns and returns the new
// transaction's id. Subscribe registers a snapshot callback and invokes
// it immediately with the current state.
type Store interface {
	Subscribe(fn SnapshotFunc)
	Append(ctx context.Context, tx core.Transaction) (string, error)
	Remove(ctx context.Context, id string) error
	Snapshot(ctx context.Context) ([]core.Transaction, error)
}
