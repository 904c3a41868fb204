package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Status & Profile ───────────────────────────────────────────────────────

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "running",
		"degraded": s.eng.Degraded(),
		"risk":     s.eng.CurrentRisk(),
	})
}

// GET /api/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.eng.Profile())
}

// ─── Evaluation & Settings ──────────────────────────────────────────────────

// POST /api/evaluate
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var offer domain.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.eng.EvaluateOffer(offer)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GET /api/settings
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.eng.Thresholds())
}

// PUT /api/settings
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var th domain.Thresholds
	if err := json.NewDecoder(r.Body).Decode(&th); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.SetThresholds(th); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.eng.Thresholds())
}

// ─── Call Ledger ────────────────────────────────────────────────────────────

// GET /api/calls?period=today|week|month
func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	period, ok := queryPeriod(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	calls := s.eng.CallsForPeriod(period)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calls": calls,
		"count": len(calls),
	})
}

// POST /api/calls
func (s *Server) handleRecordCall(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price      int64   `json:"price"`
		DistanceKm float64 `json:"distance_km"`
		Store      string  `json:"store"`
		Accepted   bool    `json:"accepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer := domain.Offer{Price: req.Price, DistanceKm: req.DistanceKm}
	rec, err := s.eng.RecordCall(offer, req.Store, req.Accepted)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DELETE /api/calls/{id}
func (s *Server) handleDeleteCall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.DeleteCall(id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Expense Ledger ─────────────────────────────────────────────────────────

// GET /api/expenses?period=today|week|month
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	period, ok := queryPeriod(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := s.eng.ExpensesForPeriod(period)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// POST /api/expenses
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category domain.ExpenseCategory `json:"category"`
		Amount   int64                  `json:"amount"`
		Note     string                 `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.eng.AddExpense(req.Category, req.Amount, req.Note)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DELETE /api/expenses/{id}
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.DeleteExpense(id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Memos ──────────────────────────────────────────────────────────────────

// GET /api/memos?q=search
func (s *Server) handleListMemos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	defer s.mu.Unlock()

	memos := s.eng.SearchMemos(query)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"memos": memos,
		"count": len(memos),
	})
}

// POST /api/memos
func (s *Server) handleAddMemo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Place   string          `json:"place"`
		Content string          `json:"content"`
		Kind    domain.MemoKind `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" {
		req.Kind = domain.MemoStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.eng.AddMemo(req.Place, req.Content, req.Kind)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DELETE /api/memos/{id}
func (s *Server) handleDeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.DeleteMemo(id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Timers ─────────────────────────────────────────────────────────────────

// GET /api/timers
func (s *Server) handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses, total := s.eng.TimerStatuses()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timers":        statuses,
		"total_seconds": total,
		"total":         domain.FormatSeconds(total),
	})
}

// POST /api/timers/{platform}/start
func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	platform, ok := pathPlatform(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.StartTimer(platform); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "started",
		"platform": platform,
	})
}

// POST /api/timers/{platform}/stop
func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	platform, ok := pathPlatform(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.StopTimer(platform); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "stopped",
		"platform": platform,
	})
}

// POST /api/timers/rest
func (s *Server) handleRest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eng.StopAllTimers()
	writeJSON(w, http.StatusOK, map[string]string{"status": "resting"})
}

// ─── Stats & Dashboard ──────────────────────────────────────────────────────

// GET /api/stats?period=today|week|month
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	period, ok := queryPeriod(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.eng.Stats(period)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GET /api/dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.eng.TodayDashboard())
}

// ─── Export / Import / Clear ────────────────────────────────────────────────

// GET /api/export
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.eng.SerializeAll())
}

// POST /api/import
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var snap engine.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.ImportAll(snap); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// POST /api/clear
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eng.ClearAll()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ─── Param Helpers ──────────────────────────────────────────────────────────

// queryPeriod parses the period query param, defaulting to today.
func queryPeriod(w http.ResponseWriter, r *http.Request) (domain.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return domain.PeriodToday, true
	}
	p := domain.Period(raw)
	if !p.Valid() {
		writeError(w, http.StatusBadRequest, "period must be today, week, or month")
		return "", false
	}
	return p, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func pathPlatform(w http.ResponseWriter, r *http.Request) (domain.Platform, bool) {
	p := domain.Platform(chi.URLParam(r, "platform"))
	if !p.Valid() {
		writeError(w, http.StatusBadRequest, "unknown platform")
		return "", false
	}
	return p, true
}
