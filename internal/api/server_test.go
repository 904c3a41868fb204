package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
	"github.com/ghostrider-app/ghostrider/internal/infra/store"
)

// ─── API Tests ──────────────────────────────────────────────────────────────

func setupServer(t *testing.T) (http.Handler, *engine.Engine) {
	t.Helper()
	clock := &domain.FixedClock{Current: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	eng := engine.New(store.NewMemory(), clock, zerolog.Nop())
	var mu sync.Mutex
	return NewServer(eng, &mu).Handler(), eng
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s: %v (body %q)", method, path, err, w.Body.String())
		}
	}
	return w, resp
}

func TestAPI_Health(t *testing.T) {
	h, _ := setupServer(t)
	w, resp := doJSON(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestAPI_Evaluate(t *testing.T) {
	h, _ := setupServer(t)
	w, resp := doJSON(t, h, http.MethodPost, "/api/evaluate",
		`{"price":4500,"distance_km":3}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp["verdict"] != "accept" {
		t.Errorf("expected verdict accept, got %v", resp["verdict"])
	}
	if resp["price_per_km"] != float64(1500) {
		t.Errorf("expected price_per_km=1500, got %v", resp["price_per_km"])
	}
}

func TestAPI_Evaluate_BadDistance(t *testing.T) {
	h, _ := setupServer(t)
	w, _ := doJSON(t, h, http.MethodPost, "/api/evaluate",
		`{"price":3000,"distance_km":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_Settings_RoundTrip(t *testing.T) {
	h, _ := setupServer(t)

	w, _ := doJSON(t, h, http.MethodPut, "/api/settings",
		`{"min_price":4000,"min_price_per_km":3000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	_, resp := doJSON(t, h, http.MethodGet, "/api/settings", "")
	if resp["min_price"] != float64(4000) {
		t.Errorf("expected min_price=4000, got %v", resp["min_price"])
	}
}

func TestAPI_Settings_RejectsInvalid(t *testing.T) {
	h, _ := setupServer(t)
	w, _ := doJSON(t, h, http.MethodPut, "/api/settings", `{"min_price":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_Calls_RecordListDelete(t *testing.T) {
	h, _ := setupServer(t)

	w, created := doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":4500,"distance_km":3,"store":"Dragon BBQ","accepted":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := int64(created["id"].(float64))

	_, listed := doJSON(t, h, http.MethodGet, "/api/calls?period=today", "")
	if listed["count"] != float64(1) {
		t.Fatalf("expected 1 call, got %v", listed["count"])
	}

	w, _ = doJSON(t, h, http.MethodDelete, "/api/calls/"+itoa(id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w, _ = doJSON(t, h, http.MethodDelete, "/api/calls/"+itoa(id), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete: expected 404, got %d", w.Code)
	}
}

func TestAPI_Calls_RejectsZeroPrice(t *testing.T) {
	h, _ := setupServer(t)
	w, _ := doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":0,"accepted":true}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_Calls_BadPeriod(t *testing.T) {
	h, _ := setupServer(t)
	w, _ := doJSON(t, h, http.MethodGet, "/api/calls?period=year", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_Expenses(t *testing.T) {
	h, _ := setupServer(t)

	w, _ := doJSON(t, h, http.MethodPost, "/api/expenses",
		`{"category":"fuel","amount":15000,"note":"gas"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/expenses",
		`{"category":"lodging","amount":5000}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category: expected 400, got %d", w.Code)
	}

	_, listed := doJSON(t, h, http.MethodGet, "/api/expenses", "")
	if listed["count"] != float64(1) {
		t.Errorf("expected 1 expense, got %v", listed["count"])
	}
}

func TestAPI_Memos_SearchByQuery(t *testing.T) {
	h, _ := setupServer(t)

	doJSON(t, h, http.MethodPost, "/api/memos",
		`{"place":"Gangnam Tower","content":"gate code 1234","kind":"store"}`)
	doJSON(t, h, http.MethodPost, "/api/memos",
		`{"place":"River Apartments","content":"no elevator"}`)

	_, resp := doJSON(t, h, http.MethodGet, "/api/memos?q=gangnam", "")
	if resp["count"] != float64(1) {
		t.Errorf("expected 1 match, got %v", resp["count"])
	}

	_, resp = doJSON(t, h, http.MethodGet, "/api/memos", "")
	if resp["count"] != float64(2) {
		t.Errorf("expected 2 memos without query, got %v", resp["count"])
	}
}

func TestAPI_Timers(t *testing.T) {
	h, _ := setupServer(t)

	w, _ := doJSON(t, h, http.MethodPost, "/api/timers/baemin/start", "")
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/timers/uber/start", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown platform: expected 400, got %d", w.Code)
	}

	_, resp := doJSON(t, h, http.MethodGet, "/api/timers", "")
	timers := resp["timers"].([]interface{})
	if len(timers) != 3 {
		t.Fatalf("expected 3 platforms, got %d", len(timers))
	}
	var running int
	for _, raw := range timers {
		if raw.(map[string]interface{})["running"] == true {
			running++
		}
	}
	if running != 1 {
		t.Errorf("expected exactly 1 running timer, got %d", running)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/timers/rest", "")
	if w.Code != http.StatusOK {
		t.Fatalf("rest: expected 200, got %d", w.Code)
	}
}

func TestAPI_Stats(t *testing.T) {
	h, _ := setupServer(t)
	doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":4500,"distance_km":3,"accepted":true}`)
	doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":2000,"distance_km":1,"accepted":false}`)

	_, resp := doJSON(t, h, http.MethodGet, "/api/stats?period=week", "")
	if resp["total_earnings"] != float64(4500) {
		t.Errorf("expected total_earnings=4500, got %v", resp["total_earnings"])
	}
	if resp["accept_rate"] != float64(50) {
		t.Errorf("expected accept_rate=50, got %v", resp["accept_rate"])
	}
}

func TestAPI_Dashboard(t *testing.T) {
	h, _ := setupServer(t)
	doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":4000,"distance_km":2,"accepted":true}`)

	_, resp := doJSON(t, h, http.MethodGet, "/api/dashboard", "")
	if resp["today_earnings"] != float64(4000) {
		t.Errorf("expected today_earnings=4000, got %v", resp["today_earnings"])
	}
}

func TestAPI_ExportImportClear(t *testing.T) {
	h, _ := setupServer(t)
	doJSON(t, h, http.MethodPost, "/api/calls",
		`{"price":4500,"distance_km":3,"accepted":true}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	exported := w.Body.String()

	wc, _ := doJSON(t, h, http.MethodPost, "/api/clear", "")
	if wc.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", wc.Code)
	}
	_, listed := doJSON(t, h, http.MethodGet, "/api/calls", "")
	if listed["count"] != float64(0) {
		t.Fatalf("expected 0 calls after clear, got %v", listed["count"])
	}

	wi, _ := doJSON(t, h, http.MethodPost, "/api/import", exported)
	if wi.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", wi.Code, wi.Body.String())
	}
	_, listed = doJSON(t, h, http.MethodGet, "/api/calls", "")
	if listed["count"] != float64(1) {
		t.Errorf("expected 1 call after import, got %v", listed["count"])
	}
}

func TestAPI_Status(t *testing.T) {
	h, _ := setupServer(t)
	_, resp := doJSON(t, h, http.MethodGet, "/api/status", "")
	if resp["degraded"] != false {
		t.Errorf("expected degraded=false, got %v", resp["degraded"])
	}
	if resp["risk"] != string(domain.RiskInsufficientData) {
		t.Errorf("expected insufficient_data risk, got %v", resp["risk"])
	}
}

func TestAPI_Profile(t *testing.T) {
	h, eng := setupServer(t)
	_, resp := doJSON(t, h, http.MethodGet, "/api/profile", "")
	if resp["id"] != eng.Profile().ID {
		t.Errorf("profile id mismatch: %v", resp["id"])
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
