// Package postgres provides a ledger store backed by PostgreSQL, for
// deployments where the ledger is shared between instances.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"finboard/internal/core"
	"finboard/internal/ledger"
	"finboard/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('income', 'expense', 'investment')),
    category TEXT NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
    date DATE NOT NULL,
    is_trading BOOLEAN NOT NULL DEFAULT FALSE,
    ticker TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    seq BIGSERIAL
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// Store is a ledger.Store on top of a PostgreSQL database.
type Store struct {
	db  *sql.DB
	log *log.Logger

	mu          sync.Mutex
	subscribers []ledger.SnapshotFunc
}

// New connects with the given DSN and ensures the schema exists.
func New(dsn string, logger *log.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		db:  db,
		log: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Subscribe(fn ledger.SnapshotFunc) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()

	snapshot, err := s.Snapshot(context.Background())
	if err != nil {
		s.log.Error("initial snapshot load failed", log.FieldError, err)
		snapshot = nil
	}
	fn(snapshot)
}

func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	const query = `INSERT INTO transactions (id, type, category, amount_cents, date, is_trading, ticker, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents, tx.Date.ISO(),
		tx.IsTrading, tx.Ticker, strings.Join(tx.Tags, " "))
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	s.log.InfoContext(ctx, "transaction saved",
		log.FieldTxID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldAmountCents, tx.Amount.Cents)

	s.notify(ctx)
	return tx.ID, nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
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

	s.log.InfoContext(ctx, "transaction removed", log.FieldTxID, id)
	s.notify(ctx)
	return nil
}

func (s *Store) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	const query = `SELECT id, type, category, amount_cents, to_char(date, 'YYYY-MM-DD'), is_trading, ticker, tags
		FROM transactions ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			txType  string
			dateStr string
			tags    string
		)
		if err := rows.Scan(&tx.ID, &txType, &tx.Category, &tx.Amount.Cents, &dateStr, &tx.IsTrading, &tx.Ticker, &tags); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TxType(txType)
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		tx.Date = date
		if tags != "" {
			tx.Tags = strings.Fields(tags)
		}
		txns = append(txns, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

func (s *Store) notify(ctx context.Context) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "snapshot for notify failed", log.FieldError, err)
		return
	}

	s.mu.Lock()
	subs := s.subscribers
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

var _ ledger.Store = (*Store)(nil)
