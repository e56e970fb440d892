// Package worker mirrors ledger snapshots into external sinks such as
// Google Sheets. It reacts to ledger events and also reconciles on a
// fixed interval to cover missed messages.
package worker

import (
	"context"
	"fmt"
	"time"

	"finboard/internal/core"
	"finboard/internal/events"
	"finboard/internal/ledger"
	"finboard/internal/log"
)

// SnapshotMirror receives the full set of transactions on every sync.
type SnapshotMirror interface {
	MirrorSnapshot(ctx context.Context, txns []core.Transaction) error
}

// RowAppender writes a single transaction to the sink. Sinks that support
// it let append events skip the wholesale rewrite.
type RowAppender interface {
	Append(ctx context.Context, tx core.Transaction) (string, error)
}

// Mirror keeps an external sink in step with the ledger.
type Mirror struct {
	store    ledger.Store
	sink     SnapshotMirror
	appender RowAppender
	log      *log.Logger
}

// NewMirror builds a mirror over the given sink. A nil appender means
// every event triggers a wholesale rewrite; with an appender, append
// events write just the new row.
func NewMirror(store ledger.Store, sink SnapshotMirror, appender RowAppender, logger *log.Logger) *Mirror {
	return &Mirror{
		store:    store,
		sink:     sink,
		appender: appender,
		log:      logger.WithComponent(log.ComponentWorker),
	}
}

// HandleLedgerEvent processes a single ledger event. Appends go through
// the incremental path when an appender is configured; everything else
// re-reads the full snapshot and mirrors it wholesale so the sink never
// drifts.
func (m *Mirror) HandleLedgerEvent(event *events.LedgerEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m.log.InfoContext(ctx, "Processing ledger event",
		log.FieldOperation, log.OpConsume,
		"event_op", event.Op,
		log.FieldTxID, event.ID)

	if event.Op == events.OpAppended && m.appender != nil {
		return m.appendRow(ctx, event.ID)
	}

	return m.Sync(ctx)
}

// appendRow mirrors the single transaction named by the event. If the
// transaction is no longer in the ledger (already removed), the wholesale
// path takes over.
func (m *Mirror) appendRow(ctx context.Context, id string) error {
	txns, err := m.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load ledger snapshot: %w", err)
	}

	for _, tx := range txns {
		if tx.ID != id {
			continue
		}
		ref, err := m.appender.Append(ctx, tx)
		if err != nil {
			return fmt.Errorf("append transaction %s: %w", id, err)
		}
		m.log.InfoContext(ctx, "Mirrored appended transaction",
			log.FieldOperation, log.OpMirror,
			log.FieldTxID, id,
			log.FieldSheetsRef, ref)
		return nil
	}

	m.log.WarnContext(ctx, "Appended transaction no longer in ledger, mirroring wholesale",
		log.FieldTxID, id)
	if err := m.sink.MirrorSnapshot(ctx, txns); err != nil {
		return fmt.Errorf("mirror snapshot: %w", err)
	}
	return nil
}

// Sync reads the current ledger snapshot and pushes it to the sink.
func (m *Mirror) Sync(ctx context.Context) error {
	txns, err := m.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load ledger snapshot: %w", err)
	}

	if err := m.sink.MirrorSnapshot(ctx, txns); err != nil {
		return fmt.Errorf("mirror snapshot: %w", err)
	}

	m.log.InfoContext(ctx, "Mirrored ledger snapshot",
		log.FieldOperation, log.OpMirror,
		log.FieldCount, len(txns))
	return nil
}

// RunReconcileLoop mirrors the snapshot on a fixed interval until the
// context is cancelled. Individual sync failures are logged and retried
// on the next tick.
func (m *Mirror) RunReconcileLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Sync(ctx); err != nil {
				m.log.ErrorContext(ctx, "Periodic mirror failed",
					log.FieldOperation, log.OpMirror,
					log.FieldError, err)
			}
		}
	}
}
