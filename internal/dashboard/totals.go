package dashboard

import "finboard/internal/core"

// Totals holds the per-type sums for a set of transactions, split between
// trading and non-trading activity.
type Totals struct {
	Income            core.Money `json:"income"`
	Expense           core.Money `json:"expense"`
	Investment        core.Money `json:"investment"`
	TradingPnLWins    core.Money `json:"tradingPnlWins"`
	TradingPnLLosses  core.Money `json:"tradingPnlLosses"`
	TradingTradeCount int        `json:"tradingTradeCount"`
}

// ComputeTotals sums the snapshot by transaction type. Trading-flagged
// income counts toward wins, trading-flagged expense toward losses; both
// still contribute to the plain income and expense totals. Only income
// and expense rows count as trades, matching ComputeTradingStats.
func ComputeTotals(txns []core.Transaction) Totals {
	var t Totals
	for _, tx := range txns {
		switch tx.Type {
		case core.TxIncome:
			t.Income.Cents += tx.Amount.Cents
			if tx.IsTrading {
				t.TradingPnLWins.Cents += tx.Amount.Cents
				t.TradingTradeCount++
			}
		case core.TxExpense:
			t.Expense.Cents += tx.Amount.Cents
			if tx.IsTrading {
				t.TradingPnLLosses.Cents += tx.Amount.Cents
				t.TradingTradeCount++
			}
		case core.TxInvestment:
			t.Investment.Cents += tx.Amount.Cents
		}
	}
	return t
}

// Balance is income minus expense minus investment.
func (t Totals) Balance() int64 {
	return t.Income.Cents - t.Expense.Cents - t.Investment.Cents
}

// TradingNet is trading wins minus trading losses.
func (t Totals) TradingNet() int64 {
	return t.TradingPnLWins.Cents - t.TradingPnLLosses.Cents
}

// RegularIncome is income earned outside of trading.
func (t Totals) RegularIncome() int64 {
	return t.Income.Cents - t.TradingPnLWins.Cents
}

// RegularExpense is spending outside of trading losses.
func (t Totals) RegularExpense() int64 {
	return t.Expense.Cents - t.TradingPnLLosses.Cents
}
