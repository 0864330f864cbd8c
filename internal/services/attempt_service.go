package services

import (
	"context"

	"github.com/srkarthi1982/guess-the-emoji/internal/answer"
	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

// AttemptService scores and records guesses
type AttemptService interface {
	SubmitAttempt(ctx context.Context, userID string, in models.SubmitAttemptInput) (*models.Attempt, error)
}

type attemptService struct {
	puzzleRepo  repository.PuzzleRepository
	sessionRepo repository.SessionRepository
	attemptRepo repository.AttemptRepository
	opts        options
}

// NewAttemptService creates a new AttemptService. puzzleRepo may be the
// cached repository; only GetActive is used.
func NewAttemptService(
	puzzleRepo repository.PuzzleRepository,
	sessionRepo repository.SessionRepository,
	attemptRepo repository.AttemptRepository,
	opts ...Option,
) AttemptService {
	return &attemptService{
		puzzleRepo:  puzzleRepo,
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		opts:        buildOptions(opts),
	}
}

func (s *attemptService) SubmitAttempt(ctx context.Context, userID string, in models.SubmitAttemptInput) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting attempt: puzzle_id=%s", in.PuzzleID)

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireText("puzzleId", in.PuzzleID); err != nil {
		return nil, err
	}
	if err := requireText("guess", in.Guess); err != nil {
		return nil, err
	}
	sessionID := optionalText(in.SessionID)
	if in.SessionID != nil && sessionID == nil {
		return nil, errors.NewValidationError("sessionId", "cannot be empty")
	}

	puzzle, err := s.puzzleRepo.GetActive(ctx, in.PuzzleID)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil || !puzzle.IsActive {
		return nil, errors.NewNotFoundError("puzzle", in.PuzzleID)
	}
	if puzzle.OwnerID != nil && !puzzle.OwnedBy(userID) {
		return nil, errors.NewForbiddenError("puzzle belongs to another user")
	}

	if sessionID != nil {
		session, err := s.sessionRepo.GetOwned(ctx, *sessionID, userID)
		if err != nil {
			log.Error("failed to load session: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if session == nil {
			return nil, errors.NewNotFoundError("session", *sessionID)
		}
	}

	attempt := models.Attempt{
		ID:        s.opts.newID(),
		SessionID: sessionID,
		PuzzleID:  puzzle.ID,
		UserID:    userID,
		Guess:     in.Guess,
		IsCorrect: answer.Match(in.Guess, puzzle.Answer),
		CreatedAt: s.opts.timestamp(),
	}

	if err := s.attemptRepo.Insert(ctx, attempt); err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("attempt recorded: id=%s, correct=%t", attempt.ID, attempt.IsCorrect)
	return &attempt, nil
}
