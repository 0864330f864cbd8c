package services

import (
	"context"
	stderrors "errors"

	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

// SessionService manages the start and end of play sessions
type SessionService interface {
	StartSession(ctx context.Context, ownerID string, in models.StartSessionInput) (*models.Session, error)
	EndSession(ctx context.Context, ownerID string, id string, in models.EndSessionInput) (string, error)
	GetSession(ctx context.Context, ownerID string, id string) (*models.SessionDetail, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	attemptRepo repository.AttemptRepository
	opts        options
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo repository.SessionRepository, attemptRepo repository.AttemptRepository, opts ...Option) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		opts:        buildOptions(opts),
	}
}

func (s *sessionService) StartSession(ctx context.Context, ownerID string, in models.StartSessionInput) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session")

	if err := requireUser(ownerID); err != nil {
		return nil, err
	}
	mode := optionalText(in.Mode)
	if in.Mode != nil && (mode == nil || !models.ValidMode(*mode)) {
		return nil, errors.NewValidationError("mode", "must be 'practice' or 'timed'")
	}
	if in.TotalQuestions != nil && *in.TotalQuestions <= 0 {
		return nil, errors.NewValidationError("totalQuestions", "must be greater than 0")
	}

	session := models.Session{
		ID:             s.opts.newID(),
		OwnerID:        ownerID,
		Mode:           mode,
		CreatedAt:      s.opts.timestamp(),
		TotalQuestions: in.TotalQuestions,
	}

	if err := s.sessionRepo.Insert(ctx, session); err != nil {
		log.Error("failed to start session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("session started: id=%s", session.ID)
	return &session, nil
}

func validateCounts(total, correct *int) error {
	if total != nil && *total <= 0 {
		return errors.NewValidationError("totalQuestions", "must be greater than 0")
	}
	if correct != nil && *correct < 0 {
		return errors.NewValidationError("correctAnswers", "cannot be negative")
	}
	if total != nil && correct != nil && *correct > *total {
		return errors.NewInvalidRequestError("correctAnswers cannot exceed totalQuestions")
	}
	return nil
}

func mergeCount(supplied, stored *int) *int {
	if supplied != nil {
		return supplied
	}
	return stored
}

func (s *sessionService) EndSession(ctx context.Context, ownerID string, id string, in models.EndSessionInput) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending session: id=%s", id)

	if err := requireUser(ownerID); err != nil {
		return "", err
	}
	if err := validateCounts(in.TotalQuestions, in.CorrectAnswers); err != nil {
		return "", err
	}

	session, err := s.sessionRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return "", errors.NewInternalError(err)
	}
	if session == nil {
		return "", errors.NewNotFoundError("session", id)
	}

	total := mergeCount(in.TotalQuestions, session.TotalQuestions)
	correct := mergeCount(in.CorrectAnswers, session.CorrectAnswers)
	if total != nil && correct != nil && *correct > *total {
		return "", errors.NewInvalidRequestError("correctAnswers cannot exceed totalQuestions")
	}

	endedAt := s.opts.timestamp()
	if session.EndedAt != nil && session.EndedAt.After(endedAt) {
		endedAt = *session.EndedAt
	}

	err = s.sessionRepo.EndOwned(ctx, id, ownerID, models.SessionEnd{
		EndedAt:        endedAt,
		TotalQuestions: in.TotalQuestions,
		CorrectAnswers: in.CorrectAnswers,
	})
	if stderrors.Is(err, repository.ErrNoRows) {
		return "", s.endConflict(ctx, id, ownerID)
	}
	if err != nil {
		log.Error("failed to end session: %v", err)
		return "", errors.NewInternalError(err)
	}

	log.Info("session ended: id=%s, reended=%t", id, session.Ended())
	return id, nil
}

// endConflict explains a conditional end that matched nothing: the session is
// gone, or a concurrent end changed the counts under us.
func (s *sessionService) endConflict(ctx context.Context, id string, ownerID string) error {
	current, err := s.sessionRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to reload session: %v", err)
		return errors.NewInternalError(err)
	}
	if current == nil {
		return errors.NewNotFoundError("session", id)
	}
	return errors.NewInvalidRequestError("correctAnswers cannot exceed totalQuestions")
}

func (s *sessionService) GetSession(ctx context.Context, ownerID string, id string) (*models.SessionDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting session: id=%s", id)

	if err := requireUser(ownerID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", id)
	}

	attempts, err := s.attemptRepo.ListBySession(ctx, id)
	if err != nil {
		log.Error("failed to list session attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}

	return &models.SessionDetail{Session: *session, Attempts: attempts}, nil
}
