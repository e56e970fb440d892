// Package storage persists the ledger in SQLite. The repository fulfils
// the ledger store contract: every successful write pushes a fresh full
// snapshot to subscribers.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finboard/internal/core"
	"finboard/internal/ledger"
	"finboard/internal/log"
)

// SQLiteRepository is a ledger.Store backed by a local SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	log *log.Logger

	mu          sync.Mutex
	subscribers []ledger.SnapshotFunc
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	return &SQLiteRepository{
		db:  db,
		log: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Subscribe registers fn and immediately delivers the current snapshot.
// Load failures at subscribe time surface as an empty snapshot.
func (r *SQLiteRepository) Subscribe(fn ledger.SnapshotFunc) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()

	snapshot, err := r.Snapshot(context.Background())
	if err != nil {
		r.log.Error("initial snapshot load failed", log.FieldError, err)
		snapshot = nil
	}
	fn(snapshot)
}

// Append stores the transaction and pushes the new snapshot.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, category, amount_cents, date, is_trading, ticker, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents, tx.Date.ISO(),
		boolToInt(tx.IsTrading), tx.Ticker, strings.Join(tx.Tags, " "))
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	r.log.InfoContext(ctx, "transaction saved",
		log.FieldTxID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldCategory, tx.Category,
		log.FieldAmountCents, tx.Amount.Cents)

	r.notify(ctx)
	return tx.ID, nil
}

// Remove deletes by id and pushes the new snapshot.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}

	r.log.InfoContext(ctx, "transaction removed", log.FieldTxID, id)
	r.notify(ctx)
	return nil
}

// Snapshot loads the full transaction set in insertion order.
func (r *SQLiteRepository) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, category, amount_cents, date, is_trading, ticker, tags
		 FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		tx        core.Transaction
		txType    string
		dateStr   string
		isTrading int
		tags      string
	)
	if err := rows.Scan(&tx.ID, &txType, &tx.Category, &tx.Amount.Cents, &dateStr, &isTrading, &tx.Ticker, &tags); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Type = core.TxType(txType)
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	tx.Date = date
	tx.IsTrading = isTrading != 0
	if tags != "" {
		tx.Tags = strings.Fields(tags)
	}
	return tx, nil
}

// notify pushes the current snapshot to every subscriber. Failures are
// logged, not returned: the write itself already succeeded.
func (r *SQLiteRepository) notify(ctx context.Context) {
	snapshot, err := r.Snapshot(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "snapshot for notify failed", log.FieldError, err)
		return
	}

	r.mu.Lock()
	subs := r.subscribers
	r.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
