package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"pcon/internal"
	"pcon/internal/session"
)

// AdminApp is the operational surface served on its own port: health and
// readiness probes, the downloadable session log, and session counters.
type AdminApp struct {
	router   *chi.Mux
	db       *sqlx.DB
	sessions *session.Store
	log      *internal.Logger
}

// NewAdminApp creates the admin router
func NewAdminApp(db *sqlx.DB, sessions *session.Store, logger *internal.Logger) *AdminApp {
	a := &AdminApp{
		router:   chi.NewRouter(),
		db:       db,
		sessions: sessions,
		log:      logger,
	}
	a.router.Use(middleware.RequestID, middleware.Recoverer)
	a.setupRoutes()
	return a
}

func (a *AdminApp) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/readyz", a.handleReady)
	a.router.Get("/logs", a.handleLogDownload)
	a.router.Delete("/logs", a.handleLogClear)
	a.router.Get("/stats", a.handleStats)
}

// Handler exposes the router for serving and for tests
func (a *AdminApp) Handler() http.Handler {
	return a.router
}

func (a *AdminApp) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady pings the store; without it the service can only fail requests
func (a *AdminApp) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := a.db.PingContext(r.Context()); err != nil {
		a.log.Warn("readiness probe failed: %v", err)
		http.Error(w, "store unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (a *AdminApp) handleLogDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pcon.log"`)
	w.Write([]byte(a.log.Render()))
}

func (a *AdminApp) handleLogClear(w http.ResponseWriter, r *http.Request) {
	a.log.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (a *AdminApp) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"live_sessions": a.sessions.Len(),
		"has_errors":    a.log.HasErrors(),
	})
}
