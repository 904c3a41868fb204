// Package api exposes the engine over HTTP for the CLI, the desktop
// overlay, and anything else speaking JSON on localhost.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// Server is the GhostRider HTTP API server. The engine underneath is
// single-threaded, so every handler takes the shared mutex before
// touching it; the daemon's tick loop holds the same lock.
type Server struct {
	eng *engine.Engine
	mu  *sync.Mutex

	metricsEnabled bool
}

// NewServer wraps eng behind HTTP. mu is the engine's serialization
// lock, shared with the tick loop.
func NewServer(eng *engine.Engine, mu *sync.Mutex) *Server {
	return &Server{eng: eng, mu: mu}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/profile", s.handleProfile)

		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)

		r.Get("/calls", s.handleListCalls)
		r.Post("/calls", s.handleRecordCall)
		r.Delete("/calls/{id}", s.handleDeleteCall)

		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleAddExpense)
		r.Delete("/expenses/{id}", s.handleDeleteExpense)

		r.Get("/memos", s.handleListMemos)
		r.Post("/memos", s.handleAddMemo)
		r.Delete("/memos/{id}", s.handleDeleteMemo)

		r.Get("/timers", s.handleTimerStatus)
		r.Post("/timers/{platform}/start", s.handleStartTimer)
		r.Post("/timers/{platform}/stop", s.handleStopTimer)
		r.Post("/timers/rest", s.handleRest)

		r.Get("/stats", s.handleStats)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)

		r.Get("/events", s.handleEvents)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeEngineError maps engine errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the local overlay UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
