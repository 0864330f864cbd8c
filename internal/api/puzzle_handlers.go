package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
)

func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("creating puzzle")

	var in models.CreatePuzzleInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	puzzle, err := s.PuzzleService.CreatePuzzle(r.Context(), userFromContext(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, puzzle)
}

func (s *Server) handleUpdatePuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).Debug("updating puzzle: id=%s", id)

	var in models.UpdatePuzzleInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	puzzle, err := s.PuzzleService.UpdatePuzzle(r.Context(), userFromContext(r.Context()), id, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, puzzle)
}

func (s *Server) handleDeactivatePuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).Debug("deactivating puzzle: id=%s", id)

	deactivated, err := s.PuzzleService.DeactivatePuzzle(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, idResponse{ID: deactivated})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	puzzle, err := s.PuzzleService.GetPuzzle(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, puzzle)
}

func (s *Server) handleListMyPuzzles(w http.ResponseWriter, r *http.Request) {
	filter, err := puzzleFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := s.PuzzleService.ListMyPuzzles(r.Context(), userFromContext(r.Context()), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleListPlayablePuzzles(w http.ResponseWriter, r *http.Request) {
	filter, err := puzzleFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := s.PuzzleService.ListPlayablePuzzles(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}
