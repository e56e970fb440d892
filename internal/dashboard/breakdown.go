package dashboard

import (
	"sort"

	"finboard/internal/core"
)

// CategorySum is one slice of a category breakdown.
type CategorySum struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
}

// BreakdownByCategory groups expense transactions by category and returns
// the sums in descending order. Ties keep the order categories were first
// seen in the snapshot. No expenses means an empty result.
func BreakdownByCategory(txns []core.Transaction) []CategorySum {
	return groupByCategory(txns, func(tx core.Transaction) bool {
		return tx.Type == core.TxExpense
	})
}

// PortfolioHoldings groups investment transactions by category, descending
// by invested amount. It mirrors BreakdownByCategory for the investment
// side of the ledger.
func PortfolioHoldings(txns []core.Transaction) []CategorySum {
	return groupByCategory(txns, func(tx core.Transaction) bool {
		return tx.Type == core.TxInvestment
	})
}

func groupByCategory(txns []core.Transaction, keep func(core.Transaction) bool) []CategorySum {
	sums := make([]CategorySum, 0)
	index := make(map[string]int)
	for _, tx := range txns {
		if !keep(tx) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(sums)
			index[tx.Category] = i
			sums = append(sums, CategorySum{Category: tx.Category})
		}
		sums[i].Amount.Cents += tx.Amount.Cents
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Amount.Cents > sums[j].Amount.Cents
	})
	return sums
}
