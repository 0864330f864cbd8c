package api

import (
	"context"
	"net/http"
	"time"

	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
)

const readinessTimeout = 2 * time.Second

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 when every readiness check passes, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	for _, check := range s.ReadinessChecks {
		if err := check.Check(ctx); err != nil {
			log.Warn("readiness check failed - %s: %v", check.Name, err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(check.Name + " unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
