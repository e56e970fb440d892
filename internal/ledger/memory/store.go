// Package memory provides an in-process ledger store, used for tests and
// as the default backend when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/ledger"
)

// Store keeps transactions in insertion order and fans snapshots out to
// subscribers after every write.
type Store struct {
	mu          sync.Mutex
	txns        []core.Transaction
	subscribers []ledger.SnapshotFunc
}

func New() *Store {
	return &Store{}
}

// Subscribe registers fn and immediately delivers the current snapshot.
func (s *Store) Subscribe(fn ledger.SnapshotFunc) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	fn(snapshot)
}

// Append validates the transaction, assigns it an id and notifies
// subscribers with the new full snapshot.
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.txns = append(s.txns, tx)
	snapshot := s.snapshotLocked()
	subs := s.subscribers
	s.mu.Unlock()

	notify(subs, snapshot)
	return tx.ID, nil
}

// Remove deletes the transaction with the given id, preserving the order
// of the rest, and notifies subscribers.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, tx := range s.txns {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ledger.ErrNotFound
	}
	s.txns = append(s.txns[:idx], s.txns[idx+1:]...)
	snapshot := s.snapshotLocked()
	subs := s.subscribers
	s.mu.Unlock()

	notify(subs, snapshot)
	return nil
}

// Snapshot returns a copy of the current transaction set.
func (s *Store) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// snapshotLocked copies the backing slice so subscribers never alias it.
func (s *Store) snapshotLocked() []core.Transaction {
	out := make([]core.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

func notify(subs []ledger.SnapshotFunc, snapshot []core.Transaction) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
