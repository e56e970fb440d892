package dashboard

import (
	"time"

	"finboard/internal/core"
)

// Dashboard is the fully assembled view state for one snapshot, range and
// calendar month. Every field derives from the inputs alone.
type Dashboard struct {
	Range     Range           `json:"range"`
	Totals    Totals          `json:"totals"`
	Balance   int64           `json:"balance"`
	NetWorth  []NetWorthPoint `json:"netWorth"`
	Breakdown []CategorySum   `json:"breakdown"`
	Portfolio []CategorySum   `json:"portfolio"`
	FlowGraph FlowGraph       `json:"flowGraph"`
	Calendar  []CalendarCell  `json:"calendar"`
	Trading   TradingStats    `json:"trading"`
	Budgets   []BudgetStatus  `json:"budgets"`
}

// Assemble recomputes every view over the snapshot filtered to the given
// range. The calendar is built for the requested year and month from the
// same filtered set the other aggregators see.
func Assemble(txns []core.Transaction, budget *core.Budget, r Range, year int, month time.Month, now time.Time) Dashboard {
	filtered := FilterRange(txns, r, now)
	totals := ComputeTotals(filtered)
	return Dashboard{
		Range:     r,
		Totals:    totals,
		Balance:   totals.Balance(),
		NetWorth:  NetWorthSeries(filtered, now),
		Breakdown: BreakdownByCategory(filtered),
		Portfolio: PortfolioHoldings(filtered),
		FlowGraph: BuildFlowGraph(filtered),
		Calendar:  BuildCalendar(year, month, filtered),
		Trading:   ComputeTradingStats(filtered),
		Budgets:   BudgetUtilization(filtered, budget),
	}
}
