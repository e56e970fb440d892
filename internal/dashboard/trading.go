package dashboard

import (
	"encoding/json"
	"math"

	"finboard/internal/core"
)

// TradingStats summarizes the trading-flagged slice of the ledger.
// ProfitFactor is math.Inf(1) when there are wins but no losses; JSON
// encoding represents that case with the ProfitFactorInfinite flag since
// infinity has no JSON number form.
type TradingStats struct {
	WinRate      float64    `json:"winRate"`
	ProfitFactor float64    `json:"profitFactor"`
	TotalTrades  int        `json:"totalTrades"`
	GrossProfit  core.Money `json:"grossProfit"`
	GrossLoss    core.Money `json:"grossLoss"`
}

// ComputeTradingStats counts trading income as wins and trading expense as
// losses. WinRate is the win percentage over all trades, ProfitFactor the
// gross profit to gross loss ratio rounded to two decimals.
func ComputeTradingStats(txns []core.Transaction) TradingStats {
	var s TradingStats
	var wins int
	for _, tx := range txns {
		if !tx.IsTrading {
			continue
		}
		switch tx.Type {
		case core.TxIncome:
			wins++
			s.GrossProfit.Cents += tx.Amount.Cents
			s.TotalTrades++
		case core.TxExpense:
			s.GrossLoss.Cents += tx.Amount.Cents
			s.TotalTrades++
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(wins) / float64(s.TotalTrades) * 100
	}
	switch {
	case s.GrossLoss.Cents > 0:
		ratio := float64(s.GrossProfit.Cents) / float64(s.GrossLoss.Cents)
		s.ProfitFactor = math.Round(ratio*100) / 100
	case s.GrossProfit.Cents > 0:
		s.ProfitFactor = math.Inf(1)
	}
	return s
}

// ProfitFactorInfinite reports whether every closed trade was a win.
func (s TradingStats) ProfitFactorInfinite() bool {
	return math.IsInf(s.ProfitFactor, 1)
}

func (s TradingStats) MarshalJSON() ([]byte, error) {
	pf := s.ProfitFactor
	if s.ProfitFactorInfinite() {
		pf = 0
	}
	return json.Marshal(struct {
		WinRate              float64    `json:"winRate"`
		ProfitFactor         float64    `json:"profitFactor"`
		ProfitFactorInfinite bool       `json:"profitFactorInfinite"`
		TotalTrades          int        `json:"totalTrades"`
		GrossProfit          core.Money `json:"grossProfit"`
		GrossLoss            core.Money `json:"grossLoss"`
	}{
		WinRate:              s.WinRate,
		ProfitFactor:         pf,
		ProfitFactorInfinite: s.ProfitFactorInfinite(),
		TotalTrades:          s.TotalTrades,
		GrossProfit:          s.GrossProfit,
		GrossLoss:            s.GrossLoss,
	})
}
