package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("starting session")

	var in models.StartSessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.StartSession(r.Context(), userFromContext(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).Debug("ending session: id=%s", id)

	var in models.EndSessionInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	ended, err := s.SessionService.EndSession(r.Context(), userFromContext(r.Context()), id, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, idResponse{ID: ended})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := s.SessionService.GetSession(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}
