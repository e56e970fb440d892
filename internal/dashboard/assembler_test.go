package dashboard

import (
	"reflect"
	"testing"
	"time"

	"finboard/internal/core"
)

type staticBudgets struct{ b *core.Budget }

func (s staticBudgets) Current() *core.Budget { return s.b }

func TestAssembleIsConsistentAcrossViews(t *testing.T) {
	now := time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 50000_00, "2024-06-01"),
		tx(core.TxExpense, "Rent", 16000_00, "2024-06-02"),
		tx(core.TxExpense, "Dining", 3000_00, "2024-06-03"),
		tradingTx(core.TxIncome, "AAPL", 500_00, "2024-06-04"),
	}
	d := Assemble(txns, core.DefaultBudget(), RangeAll, 2024, time.June, now)

	if d.Balance != d.Totals.Balance() {
		t.Error("dashboard balance diverges from totals")
	}
	if last := d.NetWorth[len(d.NetWorth)-1]; last.Balance != d.Balance {
		t.Errorf("net worth ends at %d, dashboard balance is %d", last.Balance, d.Balance)
	}
	var breakdownSum int64
	for _, cs := range d.Breakdown {
		breakdownSum += cs.Amount.Cents
	}
	if breakdownSum != d.Totals.Expense.Cents {
		t.Error("breakdown does not cover the expense total")
	}
	var calendarNet int64
	for _, cell := range d.Calendar {
		calendarNet += cell.Net
	}
	if calendarNet != d.Totals.Income.Cents-d.Totals.Expense.Cents {
		t.Error("calendar net does not match income minus expense")
	}
}

func TestAssembleIdempotent(t *testing.T) {
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		tx(core.TxIncome, "Salary", 5000_00, "2024-06-01"),
		tx(core.TxExpense, "Rent", 1600_00, "2024-06-02"),
	}
	a := Assemble(txns, core.DefaultBudget(), RangeMonth, 2024, time.June, now)
	b := Assemble(txns, core.DefaultBudget(), RangeMonth, 2024, time.June, now)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different dashboards")
	}
}

func TestRefresherRecomputesOnSnapshot(t *testing.T) {
	rf := NewRefresher(staticBudgets{core.DefaultBudget()}, nil)

	var fired int
	rf.OnChange(func() { fired++ })

	rf.OnSnapshot([]core.Transaction{
		tx(core.TxIncome, "Salary", 5000_00, "2024-06-01"),
	})
	if fired != 1 {
		t.Fatalf("change hook fired %d times, want 1", fired)
	}

	d := rf.Dashboard(RangeAll, 2024, time.June)
	if d.Totals.Income.Cents != 5000_00 {
		t.Errorf("income = %d after snapshot", d.Totals.Income.Cents)
	}

	rf.OnSnapshot(nil)
	if fired != 2 {
		t.Errorf("change hook fired %d times, want 2", fired)
	}
	d = rf.Dashboard(RangeAll, 2024, time.June)
	if d.Totals.Income.Cents != 0 {
		t.Error("replaced snapshot still visible")
	}

	rf.NotifyBudget()
	if fired != 3 {
		t.Errorf("budget notify did not fire the hook")
	}
}
