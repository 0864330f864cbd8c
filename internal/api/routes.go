package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/puzzles", s.handleListPlayablePuzzles)
		r.Post("/puzzles", s.handleCreatePuzzle)
		r.Get("/puzzles/mine", s.handleListMyPuzzles)
		r.Get("/puzzles/{id}", s.handleGetPuzzle)
		r.Patch("/puzzles/{id}", s.handleUpdatePuzzle)
		r.Post("/puzzles/{id}/deactivate", s.handleDeactivatePuzzle)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/end", s.handleEndSession)

		r.Post("/attempts", s.handleSubmitAttempt)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewBadRequestError("method not allowed"))
	})
	return r
}
