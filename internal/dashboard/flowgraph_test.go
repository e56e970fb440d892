package dashboard

import (
	"testing"

	"finboard/internal/core"
)

func TestBuildFlowGraphWithSavings(t *testing.T) {
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 50000_00, "2024-01-01"),
		tx(core.TxExpense, "Rent", 16000_00, "2024-01-02"),
		tx(core.TxExpense, "Dining", 3000_00, "2024-01-03"),
	}
	got := BuildFlowGraph(txns)

	wantNodes := []string{"Inflow", "Rent", "Dining", "Savings"}
	if len(got.Nodes) != len(wantNodes) {
		t.Fatalf("nodes = %v, want %v", got.Nodes, wantNodes)
	}
	for i, name := range wantNodes {
		if got.Nodes[i] != name {
			t.Errorf("node %d = %q, want %q", i, got.Nodes[i], name)
		}
	}

	wantLinks := []FlowLink{
		{Source: 0, Target: 1, Value: core.Money{Cents: 16000_00}},
		{Source: 0, Target: 2, Value: core.Money{Cents: 3000_00}},
		{Source: 0, Target: 3, Value: core.Money{Cents: 31000_00}},
	}
	if len(got.Links) != len(wantLinks) {
		t.Fatalf("got %d links, want %d", len(got.Links), len(wantLinks))
	}
	for i, link := range wantLinks {
		if got.Links[i] != link {
			t.Errorf("link %d = %+v, want %+v", i, got.Links[i], link)
		}
	}
}

func TestBuildFlowGraphNoSavingsWhenOutflowCoversIncome(t *testing.T) {
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 1000_00, "2024-01-01"),
		tx(core.TxExpense, "Rent", 1000_00, "2024-01-02"),
	}
	got := BuildFlowGraph(txns)
	for _, name := range got.Nodes {
		if name == "Savings" {
			t.Error("savings node present although income does not exceed outflow")
		}
	}
}

func TestBuildFlowGraphInvestmentIsOutflow(t *testing.T) {
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 5000_00, "2024-01-01"),
		tx(core.TxInvestment, "VWCE", 2000_00, "2024-01-02"),
	}
	got := BuildFlowGraph(txns)
	if len(got.Nodes) != 3 || got.Nodes[1] != "VWCE" || got.Nodes[2] != "Savings" {
		t.Fatalf("nodes = %v", got.Nodes)
	}
	if got.Links[1].Value.Cents != 3000_00 {
		t.Errorf("savings value = %d, want %d", got.Links[1].Value.Cents, int64(3000_00))
	}
}

func TestBuildFlowGraphLinkSumInvariant(t *testing.T) {
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 9000_00, "2024-01-01"),
		tx(core.TxExpense, "Rent", 1600_00, "2024-01-02"),
		tx(core.TxExpense, "Dining", 300_00, "2024-01-03"),
		tx(core.TxInvestment, "VWCE", 500_00, "2024-01-04"),
	}
	got := BuildFlowGraph(txns)

	var linkSum, outflow int64
	for _, l := range got.Links {
		linkSum += l.Value.Cents
	}
	for _, tr := range txns {
		if tr.Type != core.TxIncome {
			outflow += tr.Amount.Cents
		}
	}
	savings := int64(9000_00) - outflow
	if linkSum != outflow+savings {
		t.Errorf("link sum %d, want %d", linkSum, outflow+savings)
	}
}

func TestBuildFlowGraphEmpty(t *testing.T) {
	got := BuildFlowGraph(nil)
	if !got.Empty() {
		t.Error("graph over no transactions should be empty")
	}
	if len(got.Nodes) != 1 || got.Nodes[0] != "Inflow" {
		t.Errorf("nodes = %v, want only Inflow", got.Nodes)
	}
}

func TestBuildFlowGraphIncomeOnly(t *testing.T) {
	got := BuildFlowGraph([]core.Transaction{
		tx(core.TxIncome, "Salary", 5000_00, "2024-01-01"),
	})
	if got.Empty() {
		t.Fatal("income with no outflow should still produce a savings link")
	}
	if got.Nodes[1] != "Savings" || got.Links[0].Value.Cents != 5000_00 {
		t.Errorf("graph = %+v", got)
	}
}
