package dashboard

import "finboard/internal/core"

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Severity classifies how close a budget category is to its limit.
type Severity string

// BudgetStatus is the utilization of one budget category.
type BudgetStatus struct {
	Category string     `json:"category"`
	Spent    core.Money `json:"spent"`
	Limit    core.Money `json:"limit"`
	Percent  float64    `json:"percent"`
	Severity Severity   `json:"severity"`
}

// BudgetUtilization computes spend against each budget entry, in budget
// order. Expenses spend against their effective budget key, so trading
// losses draw from the shared loss-limit bucket regardless of category.
// Percent is capped at 100; a zero limit reads as fully used the moment
// anything is spent.
func BudgetUtilization(txns []core.Transaction, budget *core.Budget) []BudgetStatus {
	spent := make(map[string]int64)
	for _, tx := range txns {
		if tx.Type != core.TxExpense {
			continue
		}
		spent[tx.EffectiveBudgetKey()] += tx.Amount.Cents
	}

	entries := budget.Entries()
	statuses := make([]BudgetStatus, 0, len(entries))
	for _, e := range entries {
		st := BudgetStatus{
			Category: e.Category,
			Spent:    core.Money{Cents: spent[e.Category]},
			Limit:    e.Limit,
		}
		if e.Limit.Cents > 0 {
			pct := float64(st.Spent.Cents) / float64(e.Limit.Cents) * 100
			if pct > 100 {
				pct = 100
			}
			st.Percent = pct
		} else if st.Spent.Cents > 0 {
			st.Percent = 100
		}
		st.Severity = severityOf(st.Percent)
		statuses = append(statuses, st)
	}
	return statuses
}

func severityOf(percent float64) Severity {
	switch {
	case percent > 100:
		return SeverityDanger
	case percent > 80:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
