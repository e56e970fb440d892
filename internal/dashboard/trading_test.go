package dashboard

import (
	"encoding/json"
	"strings"
	"testing"

	"finboard/internal/core"
)

func TestComputeTradingStats(t *testing.T) {
	txns := []core.Transaction{
		tradingTx(core.TxIncome, "AAPL", 500_00, "2024-01-01"),
		tradingTx(core.TxExpense, "TSLA", 1000_00, "2024-01-02"),
		tx(core.TxExpense, "Rent", 1600_00, "2024-01-03"),
	}
	got := ComputeTradingStats(txns)

	if got.TotalTrades != 2 {
		t.Errorf("trades = %d, want 2", got.TotalTrades)
	}
	if got.WinRate != 50 {
		t.Errorf("win rate = %v, want 50", got.WinRate)
	}
	if got.GrossProfit.Cents != 500_00 || got.GrossLoss.Cents != 1000_00 {
		t.Errorf("gross profit/loss = %d/%d", got.GrossProfit.Cents, got.GrossLoss.Cents)
	}
	if got.ProfitFactor != 0.5 {
		t.Errorf("profit factor = %v, want 0.5", got.ProfitFactor)
	}
}

func TestComputeTradingStatsEdgeCases(t *testing.T) {
	tests := []struct {
		name         string
		txns         []core.Transaction
		winRate      float64
		profitFactor float64
		infinite     bool
	}{
		{
			name: "no trades",
		},
		{
			name: "all wins means infinite profit factor",
			txns: []core.Transaction{
				tradingTx(core.TxIncome, "AAPL", 300_00, "2024-01-01"),
				tradingTx(core.TxIncome, "MSFT", 200_00, "2024-01-02"),
			},
			winRate:  100,
			infinite: true,
		},
		{
			name: "all losses",
			txns: []core.Transaction{
				tradingTx(core.TxExpense, "TSLA", 300_00, "2024-01-01"),
			},
			winRate:      0,
			profitFactor: 0,
		},
		{
			name: "ratio rounds to two decimals",
			txns: []core.Transaction{
				tradingTx(core.TxIncome, "AAPL", 100_00, "2024-01-01"),
				tradingTx(core.TxExpense, "TSLA", 300_00, "2024-01-02"),
			},
			winRate:      50,
			profitFactor: 0.33,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTradingStats(tt.txns)
			if got.WinRate != tt.winRate {
				t.Errorf("win rate = %v, want %v", got.WinRate, tt.winRate)
			}
			if got.WinRate < 0 || got.WinRate > 100 {
				t.Errorf("win rate %v out of [0,100]", got.WinRate)
			}
			if got.ProfitFactorInfinite() != tt.infinite {
				t.Errorf("infinite = %v, want %v", got.ProfitFactorInfinite(), tt.infinite)
			}
			if !tt.infinite && got.ProfitFactor != tt.profitFactor {
				t.Errorf("profit factor = %v, want %v", got.ProfitFactor, tt.profitFactor)
			}
		})
	}
}

func TestTradingStatsJSONHandlesInfinity(t *testing.T) {
	stats := ComputeTradingStats([]core.Transaction{
		tradingTx(core.TxIncome, "AAPL", 300_00, "2024-01-01"),
	})
	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"profitFactorInfinite":true`) {
		t.Errorf("encoded stats = %s", data)
	}
}
