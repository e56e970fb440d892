// Package export renders the ledger in its interchange formats: CSV for
// spreadsheets, a JSON backup bundling transactions with budgets, and a
// Google Sheets mirror.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"finboard/internal/core"
)

// csvHeader is the fixed column order consumers rely on.
var csvHeader = []string{"Date", "Type", "Category", "Amount", "Ticker", "Status", "Tags"}

// WriteCSV streams the transactions as CSV. Status is Win or Loss for
// trading transactions and Regular otherwise; tags are space-joined.
func WriteCSV(w io.Writer, txns []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range txns {
		if err := cw.Write(csvRow(tx)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(tx core.Transaction) []string {
	return []string{
		tx.Date.ISO(),
		string(tx.Type),
		tx.Category,
		tx.Amount.DecimalString(),
		tx.Ticker,
		statusOf(tx),
		strings.Join(tx.Tags, " "),
	}
}

func statusOf(tx core.Transaction) string {
	if !tx.IsTrading {
		return "Regular"
	}
	if tx.Type == core.TxIncome {
		return "Win"
	}
	return "Loss"
}
