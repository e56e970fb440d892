package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finboard/internal/core"
	"finboard/internal/ledger"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"), nil)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Type:      core.TxExpense,
		Category:  "Trading: AAPL",
		Amount:    core.Money{Cents: 1000_00},
		Date:      core.NewDate(2024, time.June, 1),
		IsTrading: true,
		Ticker:    "AAPL",
		Tags:      []string{"swing", "tech"},
	}
	id, err := repo.Append(ctx, tx)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	snap, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 1 {
		t.Fatalf("got %d transactions, want 1", len(snap))
	}
	got := snap[0]
	if got.ID != id || got.Category != tx.Category || got.Amount != tx.Amount {
		t.Errorf("round trip lost data: %+v", got)
	}
	if !got.IsTrading || got.Ticker != "AAPL" {
		t.Errorf("trading fields lost: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "swing" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Date.ISO() != "2024-06-01" {
		t.Errorf("date = %s", got.Date.ISO())
	}
}

func TestSnapshotKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, category := range []string{"First", "Second", "Third"} {
		_, err := repo.Append(ctx, core.Transaction{
			Type:     core.TxExpense,
			Category: category,
			Amount:   core.Money{Cents: 100},
			Date:     core.NewDate(2024, time.June, 1),
		})
		if err != nil {
			t.Fatalf("append %s: %v", category, err)
		}
	}

	snap, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if snap[i].Category != want {
			t.Errorf("position %d = %s, want %s", i, snap[i].Category, want)
		}
	}
}

func TestRemoveNotifiesSubscribers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id, _ := repo.Append(ctx, core.Transaction{
		Type:     core.TxIncome,
		Category: "Salary",
		Amount:   core.Money{Cents: 5000_00},
		Date:     core.NewDate(2024, time.June, 1),
	})

	var last []core.Transaction
	repo.Subscribe(func(txns []core.Transaction) { last = txns })
	if len(last) != 1 {
		t.Fatalf("initial snapshot has %d transactions", len(last))
	}

	if err := repo.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(last) != 0 {
		t.Error("subscriber did not receive the post-remove snapshot")
	}

	if err := repo.Remove(ctx, "missing"); err != ledger.ErrNotFound {
		t.Errorf("remove unknown id = %v, want ErrNotFound", err)
	}
}

func TestAppendRejectsInvalidBeforeWrite(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Append(context.Background(), core.Transaction{
		Type:     "transfer",
		Category: "x",
		Amount:   core.Money{Cents: 1},
		Date:     core.NewDate(2024, time.June, 1),
	})
	if err == nil {
		t.Fatal("invalid type accepted")
	}
}
