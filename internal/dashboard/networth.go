package dashboard

import (
	"sort"
	"time"

	"finboard/internal/core"
)

// NetWorthPoint is one step of the running balance, emitted after the
// transaction dated Date has been applied.
type NetWorthPoint struct {
	Date    core.Date `json:"date"`
	Balance int64     `json:"balance"`
}

// NetWorthSeries walks the transactions in chronological order and emits
// one point per transaction with the running balance. Income adds, every
// other type subtracts. The sort is stable so same-day transactions keep
// their ledger order. An empty snapshot yields a single zero point at now
// so consumers always have something to plot.
func NetWorthSeries(txns []core.Transaction, now time.Time) []NetWorthPoint {
	if len(txns) == 0 {
		return []NetWorthPoint{{Date: core.DateOf(now), Balance: 0}}
	}

	sorted := make([]core.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	points := make([]NetWorthPoint, 0, len(sorted))
	var balance int64
	for _, tx := range sorted {
		if tx.Type == core.TxIncome {
			balance += tx.Amount.Cents
		} else {
			balance -= tx.Amount.Cents
		}
		points = append(points, NetWorthPoint{Date: tx.Date, Balance: balance})
	}
	return points
}
