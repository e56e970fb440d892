package http

import (
	"net/http"

	"finboard/internal/export"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	txns, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to load ledger", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.WriteCSV(w, txns); err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to write csv", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	txns, err := s.store.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to load ledger", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	if err := export.WriteBackup(w, txns, s.budgets.Current()); err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to write backup", err)
	}
}
