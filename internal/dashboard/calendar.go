package dashboard

import (
	"time"

	"finboard/internal/core"
)

// CalendarCell is one slot of a month grid. Leading cells that pad the
// grid to the weekday of day 1 have Day == 0 and carry no data.
type CalendarCell struct {
	Day          int                `json:"day"`
	Date         core.Date          `json:"date"`
	Net          int64              `json:"net"`
	Transactions []core.Transaction `json:"transactions,omitempty"`
}

// Blank reports whether the cell is a leading pad slot.
func (c CalendarCell) Blank() bool {
	return c.Day == 0
}

// BuildCalendar lays out a month as a flat cell sequence: one blank cell
// per weekday offset of day 1 (weeks start on Sunday), then one cell per
// day carrying that day's transactions and net. Net counts income positive
// and expense negative; investment transactions appear in the cell's list
// but do not move the net.
func BuildCalendar(year int, month time.Month, txns []core.Transaction) []CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDay := make(map[int][]core.Transaction)
	for _, tx := range txns {
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		d := tx.Date.Day()
		byDay[d] = append(byDay[d], tx)
	}

	cells := make([]CalendarCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, CalendarCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := CalendarCell{
			Day:          day,
			Date:         core.NewDate(year, month, day),
			Transactions: byDay[day],
		}
		for _, tx := range byDay[day] {
			switch tx.Type {
			case core.TxIncome:
				cell.Net += tx.Amount.Cents
			case core.TxExpense:
				cell.Net -= tx.Amount.Cents
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
