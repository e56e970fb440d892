// Package events defines the ledger change notifications published to the
// sync worker, and the publisher contract the transports implement.
package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	OpAppended = "appended"
	OpRemoved  = "removed"
)

// LedgerEvent is a lightweight change notification. It carries only the
// operation and transaction id; consumers fetch the full state themselves.
type LedgerEvent struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(op, id string) *LedgerEvent {
	return &LedgerEvent{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates an event from JSON bytes
func FromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher sends ledger events to whatever transport is configured.
type Publisher interface {
	PublishLedgerEvent(ctx context.Context, event *LedgerEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no event transport is
// configured.
type NopPublisher struct{}

func (NopPublisher) PublishLedgerEvent(context.Context, *LedgerEvent) error { return nil }
func (NopPublisher) Close() error                                           { return nil }
