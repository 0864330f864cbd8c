package api

import (
	"net/http"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
)

func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var in models.SubmitAttemptInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.SubmitAttempt(r.Context(), userFromContext(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, attempt)
}
