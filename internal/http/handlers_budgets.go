package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"finboard/internal/core"
)

// handleGetBudgets returns the live budget map as an ordered JSON object.
func (s *Server) handleGetBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.budgets.Current())
}

// handlePutBudgets replaces the budget limits in one edit session: begin,
// apply every entry of the submitted map, commit. Unknown categories are
// appended. The body is the same ordered object shape GET returns.
func (s *Server) handlePutBudgets(w http.ResponseWriter, r *http.Request) {
	submitted := core.NewBudget()
	if err := json.NewDecoder(r.Body).Decode(submitted); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed budget object", err)
		return
	}

	if err := s.budgets.BeginEdit(); err != nil {
		writeError(w, r, http.StatusConflict, err.Error(), nil)
		return
	}
	for _, entry := range submitted.Entries() {
		if err := s.budgets.SetLimit(entry.Category, entry.Limit); err != nil {
			s.budgets.Cancel()
			writeError(w, r, http.StatusInternalServerError, "failed to apply budget edit", err)
			return
		}
	}
	if err := s.budgets.Commit(); err != nil {
		s.budgets.Cancel()
		writeError(w, r, http.StatusInternalServerError, "failed to persist budgets", err)
		return
	}

	writeJSON(w, http.StatusOK, s.budgets.Current())
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

// handleAddBudgetCategory appends a new category with a zero limit.
func (s *Server) handleAddBudgetCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed request body", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "category name cannot be empty", nil)
		return
	}

	if err := s.budgets.BeginEdit(); err != nil {
		writeError(w, r, http.StatusConflict, err.Error(), nil)
		return
	}
	if err := s.budgets.AddCategory(name); err != nil {
		s.budgets.Cancel()
		writeError(w, r, http.StatusInternalServerError, "failed to add category", err)
		return
	}
	if err := s.budgets.Commit(); err != nil {
		s.budgets.Cancel()
		writeError(w, r, http.StatusInternalServerError, "failed to persist budgets", err)
		return
	}

	writeJSON(w, http.StatusCreated, s.budgets.Current())
}
