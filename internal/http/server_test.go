package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finboard/internal/budget"
	"finboard/internal/dashboard"
	"finboard/internal/ledger/memory"
	"finboard/internal/prefs"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	store := memory.New()
	tracker, err := budget.Load(prefs.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("load budgets: %v", err)
	}
	refresher := dashboard.NewRefresher(tracker, nil)
	store.Subscribe(refresher.OnSnapshot)
	tracker.OnCommit(refresher.NotifyBudget)

	s := NewServer(":0", store, refresher, tracker, nil, nil)
	ts := httptest.NewServer(s.Server.Handler)
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestCreateTransactionAndDashboard(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/transactions",
		`{"type":"income","category":"Salary","amount":"5000.00","date":"2024-06-01"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == "" {
		t.Fatal("no id returned")
	}

	dashResp, err := http.Get(ts.URL + "/api/dashboard?range=all&year=2024&month=6")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer dashResp.Body.Close()
	if dashResp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", dashResp.StatusCode)
	}

	var dash struct {
		Totals struct {
			Income int64 `json:"income"`
		} `json:"totals"`
		Balance int64 `json:"balance"`
	}
	if err := json.NewDecoder(dashResp.Body).Decode(&dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Totals.Income != 5000_00 || dash.Balance != 5000_00 {
		t.Errorf("dashboard = %+v", dash)
	}
}

func TestCreateTransactionDefaults(t *testing.T) {
	ts, store := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/transactions",
		`{"type":"expense","amount":250.50,"date":"2024-06-02","isTrading":true,"ticker":"TSLA"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/transactions",
		`{"type":"expense","amount":"10","date":"2024-06-03"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	snap, _ := store.Snapshot(context.Background())
	if snap[0].Category != "Trading: TSLA" {
		t.Errorf("trading category = %q", snap[0].Category)
	}
	if snap[0].Amount.Cents != 250_50 {
		t.Errorf("numeric amount = %d", snap[0].Amount.Cents)
	}
	if snap[1].Category != "Other" {
		t.Errorf("default category = %q", snap[1].Category)
	}
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not json", `{{{`, http.StatusBadRequest},
		{"malformed amount", `{"type":"expense","category":"X","amount":"abc","date":"2024-06-01"}`, http.StatusUnprocessableEntity},
		{"negative amount", `{"type":"expense","category":"X","amount":"-5","date":"2024-06-01"}`, http.StatusUnprocessableEntity},
		{"missing amount", `{"type":"expense","category":"X","date":"2024-06-01"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"type":"expense","category":"X","amount":"5","date":"June 1st"}`, http.StatusUnprocessableEntity},
		{"bad type", `{"type":"transfer","category":"X","amount":"5","date":"2024-06-01"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/transactions", tt.body)
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	ts, store := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/transactions",
		`{"type":"expense","category":"Rent","amount":"1600","date":"2024-06-01"}`)
	var created map[string]string
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/transactions/"+created["id"], nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}

	snap, _ := store.Snapshot(context.Background())
	if len(snap) != 0 {
		t.Error("transaction still present after delete")
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/transactions/nope", nil)
	delResp, _ = http.DefaultClient.Do(req)
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNotFound {
		t.Errorf("delete unknown = %d, want 404", delResp.StatusCode)
	}
}

func TestDashboardRejectsBadQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{
		"/api/dashboard?range=week",
		"/api/dashboard?month=13",
		"/api/dashboard?year=abc",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestBudgetEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/budgets")
	if err != nil {
		t.Fatalf("get budgets: %v", err)
	}
	var budgets map[string]json.Number
	json.NewDecoder(resp.Body).Decode(&budgets)
	resp.Body.Close()
	if budgets["Rent"].String() != "16000.00" {
		t.Errorf("default rent = %s", budgets["Rent"])
	}

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/budgets",
		strings.NewReader(`{"Rent":20000.00,"Travel":500}`))
	req.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put budgets: %v", err)
	}
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", putResp.StatusCode)
	}

	resp, _ = http.Get(ts.URL + "/api/budgets")
	budgets = nil
	json.NewDecoder(resp.Body).Decode(&budgets)
	resp.Body.Close()
	if budgets["Rent"].String() != "20000.00" || budgets["Travel"].String() != "500.00" {
		t.Errorf("after put = %v", budgets)
	}

	addResp := postJSON(t, ts.URL+"/api/budgets/categories", `{"name":"Hobby"}`)
	addResp.Body.Close()
	if addResp.StatusCode != http.StatusCreated {
		t.Fatalf("add category status = %d", addResp.StatusCode)
	}

	resp, _ = http.Get(ts.URL + "/api/budgets")
	budgets = nil
	json.NewDecoder(resp.Body).Decode(&budgets)
	resp.Body.Close()
	if budgets["Hobby"].String() != "0.00" {
		t.Errorf("added category = %v", budgets["Hobby"])
	}
}

func TestExportCSV(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/transactions",
		`{"type":"income","category":"Salary","amount":"5000","date":"2024-06-01"}`)
	resp.Body.Close()

	csvResp, err := http.Get(ts.URL + "/api/export/csv")
	if err != nil {
		t.Fatalf("get csv: %v", err)
	}
	defer csvResp.Body.Close()
	if ct := csvResp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}

	body, err := io.ReadAll(csvResp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if lines[0] != "Date,Type,Category,Amount,Ticker,Status,Tags" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "5000.00") || !strings.Contains(lines[1], "Regular") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}

func TestDashboardCacheKeyTracksDayForRelativeRanges(t *testing.T) {
	day1 := time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2024, time.July, 1, 0, 1, 0, 0, time.UTC)

	for _, rng := range []dashboard.Range{dashboard.RangeMonth, dashboard.Range3Months} {
		k1 := dashboardCacheKey(rng, 2024, time.June, day1)
		k2 := dashboardCacheKey(rng, 2024, time.June, day2)
		if k1 == k2 {
			t.Errorf("range %q: key %q must change across the day boundary", rng, k1)
		}
		sameDay := dashboardCacheKey(rng, 2024, time.June, day1.Add(-time.Hour))
		if k1 != sameDay {
			t.Errorf("range %q: keys within one day differ: %q vs %q", rng, k1, sameDay)
		}
	}

	// The all range has no time-relative cutoff; its payloads stay
	// cacheable across midnight.
	if k1, k2 := dashboardCacheKey(dashboard.RangeAll, 2024, time.June, day1), dashboardCacheKey(dashboard.RangeAll, 2024, time.June, day2); k1 != k2 {
		t.Errorf("all range key should not depend on the clock: %q vs %q", k1, k2)
	}
}
