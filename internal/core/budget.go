package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TradingLossLimitCategory is the shared budget bucket all trading losses
// draw from, regardless of the transaction's own category.
const TradingLossLimitCategory = "Trading Loss Limit"

// BudgetEntry is one category with its spending limit.
type BudgetEntry struct {
	Category string
	Limit    Money
}

// Budget is an ordered category-to-limit mapping. Order is first-seen and
// survives edits: setting an existing category updates it in place, a new
// category is appended. Categories are never deleted.
type Budget struct {
	entries []BudgetEntry
	index   map[string]int
}

// NewBudget returns an empty budget.
func NewBudget() *Budget {
	return &Budget{index: make(map[string]int)}
}

// DefaultBudget returns the seed category limits a fresh installation
// starts from.
func DefaultBudget() *Budget {
	b := NewBudget()
	b.Set("Rent", Money{Cents: 16000_00})
	b.Set("Groceries", Money{Cents: 6000_00})
	b.Set("Dining", Money{Cents: 3000_00})
	b.Set("Utilities", Money{Cents: 2500_00})
	b.Set(TradingLossLimitCategory, Money{Cents: 5000_00})
	return b
}

// Set updates the limit for a category, appending the category if new.
// Negative limits are clamped to zero.
func (b *Budget) Set(category string, limit Money) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if limit.Cents < 0 {
		limit.Cents = 0
	}
	if i, ok := b.index[category]; ok {
		b.entries[i].Limit = limit
		return
	}
	b.index[category] = len(b.entries)
	b.entries = append(b.entries, BudgetEntry{Category: category, Limit: limit})
}

// Get returns the limit for a category and whether it exists.
func (b *Budget) Get(category string) (Money, bool) {
	if b == nil || b.index == nil {
		return Money{}, false
	}
	i, ok := b.index[category]
	if !ok {
		return Money{}, false
	}
	return b.entries[i].Limit, true
}

// Entries returns the budget rows in their stable order. The slice is a
// copy; mutating it does not touch the budget.
func (b *Budget) Entries() []BudgetEntry {
	if b == nil {
		return nil
	}
	out := make([]BudgetEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Categories returns the category names in their stable order.
func (b *Budget) Categories() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Category
	}
	return out
}

// Len returns the number of categories.
func (b *Budget) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Clone returns an independent copy.
func (b *Budget) Clone() *Budget {
	out := NewBudget()
	if b == nil {
		return out
	}
	for _, e := range b.entries {
		out.Set(e.Category, e.Limit)
	}
	return out
}

// MarshalJSON encodes the budget as a JSON object with whole-unit limits,
// emitting keys in the budget's stable order.
func (b *Budget) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(e.Limit.DecimalString())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of category limits, preserving key
// order. A limit that is not a number is treated as zero.
func (b *Budget) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("budget: expected object, got %v", tok)
	}
	*b = *NewBudget()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		b.Set(key, parseLimit(valTok))
	}
	_, err = dec.Token() // closing brace
	return err
}

// parseLimit converts a decoded JSON value to a limit, falling back to
// zero when it does not parse as a non-negative number.
func parseLimit(v any) Money {
	switch t := v.(type) {
	case json.Number:
		cents, err := ParseDecimalToCents(t.String())
		if err != nil {
			return Money{}
		}
		return Money{Cents: cents}
	case string:
		cents, err := ParseDecimalToCents(strings.TrimSpace(t))
		if err != nil {
			return Money{}
		}
		return Money{Cents: cents}
	default:
		return Money{}
	}
}
