package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TxIncome     TxType = "income"
	TxExpense    TxType = "expense"
	TxInvestment TxType = "investment"
)

type (
	TxType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single immutable ledger record. The id is assigned
	// by the ledger store on append and is opaque to the rest of the system.
	Transaction struct {
		ID        string   `json:"id"`
		Type      TxType   `json:"type"`
		Category  string   `json:"category"`
		Amount    Money    `json:"amount"`
		Date      Date     `json:"date"`
		IsTrading bool     `json:"isTrading"`
		Ticker    string   `json:"ticker,omitempty"`
		Tags      []string `json:"tags,omitempty"`
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

// IsValid reports whether t is one of the three enumerated types.
func (t TxType) IsValid() bool {
	switch t {
	case TxIncome, TxExpense, TxInvestment:
		return true
	}
	return false
}

// NewDate creates a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO yyyy-mm-dd calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// DateOf truncates an arbitrary timestamp to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ISO renders the date as yyyy-mm-dd.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON renders the date as an ISO yyyy-mm-dd string, or null for
// the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// EffectiveBudgetKey returns the budget bucket a transaction draws from:
// trading losses share the "Trading Loss Limit" bucket, everything else
// spends against its own category.
func (tx Transaction) EffectiveBudgetKey() string {
	if tx.IsTrading {
		return TradingLossLimitCategory
	}
	return tx.Category
}
