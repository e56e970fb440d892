// Package dashboard derives every view the display layer consumes from a
// ledger snapshot. All aggregators are pure: same inputs, same outputs,
// fresh values every call. The whole dashboard is recomputed from scratch
// on every trigger; nothing here caches across invocations.
package dashboard

import (
	"time"

	"finboard/internal/core"
)

const (
	RangeAll     Range = "all"
	RangeMonth   Range = "month"
	Range3Months Range = "3months"
)

// Range selects the time window a dashboard is computed over.
type Range string

// IsValid reports whether r is a known range selector.
func (r Range) IsValid() bool {
	switch r {
	case RangeAll, RangeMonth, Range3Months:
		return true
	}
	return false
}

// FilterRange keeps transactions dated on or after the range cutoff,
// evaluated against now on every call. RangeAll keeps everything,
// RangeMonth starts at the first day of now's month, Range3Months at now
// minus three calendar months.
func FilterRange(txns []core.Transaction, r Range, now time.Time) []core.Transaction {
	if r == RangeAll {
		out := make([]core.Transaction, len(txns))
		copy(out, txns)
		return out
	}

	var cutoff core.Date
	switch r {
	case RangeMonth:
		cutoff = core.NewDate(now.Year(), now.Month(), 1)
	case Range3Months:
		cutoff = core.DateOf(now.AddDate(0, -3, 0))
	default:
		out := make([]core.Transaction, len(txns))
		copy(out, txns)
		return out
	}

	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		if !tx.Date.Before(cutoff.Time) {
			out = append(out, tx)
		}
	}
	return out
}
