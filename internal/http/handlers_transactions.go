package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finboard/internal/core"
	"finboard/internal/events"
	"finboard/internal/ledger"
	"finboard/internal/log"
)

// createTransactionRequest accepts the amount as either a JSON string or
// a number; both go through the same decimal parser.
type createTransactionRequest struct {
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Amount    json.RawMessage `json:"amount"`
	Date      string          `json:"date"`
	IsTrading bool            `json:"isTrading"`
	Ticker    string          `json:"ticker"`
	Tags      []string        `json:"tags"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed request body", err)
		return
	}

	cents, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "amount must be a non-negative number", err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "date must be a valid yyyy-mm-dd date", err)
		return
	}

	tx := core.Transaction{
		Type:      core.TxType(req.Type),
		Category:  strings.TrimSpace(req.Category),
		Amount:    core.Money{Cents: cents},
		Date:      date,
		IsTrading: req.IsTrading,
		Ticker:    strings.TrimSpace(req.Ticker),
		Tags:      req.Tags,
	}
	if tx.Category == "" {
		tx.Category = defaultCategory(tx)
	}

	if err := tx.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	id, err := s.store.Append(r.Context(), tx)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "failed to append transaction", err)
		return
	}

	s.publishEvent(r, events.OpAppended, id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing transaction id", nil)
		return
	}

	err := s.store.Remove(r.Context(), id)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "transaction not found", nil)
		return
	case err != nil:
		writeError(w, r, http.StatusBadGateway, "failed to remove transaction", err)
		return
	}

	s.publishEvent(r, events.OpRemoved, id)
	w.WriteHeader(http.StatusNoContent)
}

// publishEvent notifies the sync worker. The write already succeeded, so
// a publish failure is logged rather than returned to the client.
func (s *Server) publishEvent(r *http.Request, op, id string) {
	if err := s.publisher.PublishLedgerEvent(r.Context(), events.NewLedgerEvent(op, id)); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "event publish failed",
			log.FieldOperation, op,
			log.FieldTxID, id,
			log.FieldError, err)
	}
}

// parseAmount converts a JSON string or number into cents, rejecting
// anything malformed before it reaches the aggregation engine.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, core.ErrInvalidAmount
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		text = str
	}
	return core.ParseDecimalToCents(text)
}

// defaultCategory fills the category when the client omits it: trading
// entries group under their ticker, everything else lands in Other.
func defaultCategory(tx core.Transaction) string {
	if tx.IsTrading {
		ticker := tx.Ticker
		if ticker == "" {
			ticker = "General"
		}
		return "Trading: " + ticker
	}
	return "Other"
}
