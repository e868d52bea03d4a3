// Package ui exposes the analysis engine over a JSON HTTP API.
package ui

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goinfer/app"
	"goinfer/internal"
	"goinfer/ports"
)

// App represents the HTTP application
type App struct {
	router *chi.Mux
	sweeps *app.SweepService
	ledger ports.RunLedger
	logger *internal.Logger

	// Ingestion settings for the sweep endpoint.
	dataFile        string
	timestampColumn string
	timestampLayout string

	mu        sync.RWMutex
	lastSweep *app.SweepResult
}

// Config holds UI application configuration
type Config struct {
	Port            string
	DataFile        string
	TimestampColumn string
	TimestampLayout string
}

// NewApp creates the HTTP application and mounts its routes.
func NewApp(cfg Config, sweeps *app.SweepService, ledger ports.RunLedger, logger *internal.Logger) *App {
	a := &App{
		router:          chi.NewRouter(),
		sweeps:          sweeps,
		ledger:          ledger,
		logger:          logger,
		dataFile:        cfg.DataFile,
		timestampColumn: cfg.TimestampColumn,
		timestampLayout: cfg.TimestampLayout,
	}

	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/describe", a.handleDescribe)
		r.Post("/tests/ttest", a.handleTTest)
		r.Post("/tests/anova", a.handleANOVA)
		r.Post("/tests/rmanova", a.handleRMANOVA)
		r.Post("/sweep", a.handleSweep)
		r.Get("/runs", a.handleListRuns)
	})
	a.router.Get("/report", a.handleReport)
	a.router.Get("/health", a.handleHealth)

	return a
}

// Router returns the mounted router, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port.
func (a *App) Serve(port string) error {
	a.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *App) setLastSweep(result *app.SweepResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSweep = result
}

func (a *App) getLastSweep() *app.SweepResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastSweep
}
