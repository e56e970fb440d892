package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"finboard/internal/dashboard"
)

// handleDashboard serves the assembled dashboard for a range and calendar
// month. Defaults: range=all, year and month = current. Responses are
// memoized until the next ledger or budget change.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rng := dashboard.Range(q.Get("range"))
	if rng == "" {
		rng = dashboard.RangeAll
	}
	if !rng.IsValid() {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown range %q", rng), nil)
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if v := q.Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 9999 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid year %q", v), nil)
			return
		}
		year = parsed
	}
	if v := q.Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid month %q", v), nil)
			return
		}
		month = time.Month(parsed)
	}

	key := dashboardCacheKey(rng, year, month, now)
	if cached, ok := s.dashCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	d := s.refresher.Dashboard(rng, year, month)
	s.dashCache.Set(key, d)
	writeJSON(w, http.StatusOK, d)
}

// dashboardCacheKey builds the memoization key for an assembled dashboard.
// The month and 3months cutoffs are relative to the current day, so their
// keys carry the calendar date: a payload cached before midnight must not
// be served after it.
func dashboardCacheKey(rng dashboard.Range, year int, month time.Month, now time.Time) string {
	if rng == dashboard.RangeAll {
		return fmt.Sprintf("%s-%d-%d", rng, year, month)
	}
	return fmt.Sprintf("%s-%d-%d-%s", rng, year, month, now.Format("2006-01-02"))
}
