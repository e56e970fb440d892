package http

import (
	"encoding/json"
	"net/http"

	"finboard/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), msg, log.FieldError, err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
