package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// HealthHandler reports liveness, and storage reachability when Ping is set.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health: storage unreachable")
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "storage": "unreachable"})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
