package api

import (
	"context"
	"net/http"
	"transport-planner-service/internal/api/handlers"
	"transport-planner-service/internal/config"
	"transport-planner-service/internal/ports"

	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Manifest ports.ManifestSource
	Roster   ports.DriverRoster
	Metrics  ports.PlanMetrics
	Planner  config.PlannerConfig
	// Optional; nil leaves /metrics unregistered.
	MetricsHandler http.Handler
	// Optional storage probe for /health.
	Ping func(ctx context.Context) error
	Log  zerolog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see ports, never concrete adapters.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Ping: d.Ping}
	driverHandler := &handlers.DriverHandler{Roster: d.Roster}
	planHandler := &handlers.PlanHandler{
		Manifest: d.Manifest,
		Roster:   d.Roster,
		Metrics:  d.Metrics,
		Defaults: d.Planner,
	}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/drivers", driverHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	if d.MetricsHandler != nil {
		mux.Handle("/metrics", d.MetricsHandler)
	}

	return loggingMiddleware(d.Log, mux)
}
