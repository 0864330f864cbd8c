package repository

import (
	"context"
	"errors"
	"time"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
)

// ErrNoRows is returned by conditional writes whose predicate matched nothing.
var ErrNoRows = errors.New("no matching row")

// PuzzleRepository handles puzzle data access. Lookups return (nil, nil)
// when no row matches.
type PuzzleRepository interface {
	Insert(ctx context.Context, puzzle models.Puzzle) error
	Get(ctx context.Context, id string) (*models.Puzzle, error)
	GetOwned(ctx context.Context, id string, ownerID string) (*models.Puzzle, error)
	GetActive(ctx context.Context, id string) (*models.Puzzle, error)
	List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error)
	UpdateOwned(ctx context.Context, id string, ownerID string, changes models.PuzzleChanges) error
	DeactivateOwned(ctx context.Context, id string, ownerID string, at time.Time) error
}

// SessionRepository handles session data access.
type SessionRepository interface {
	Insert(ctx context.Context, session models.Session) error
	GetOwned(ctx context.Context, id string, ownerID string) (*models.Session, error)
	EndOwned(ctx context.Context, id string, ownerID string, end models.SessionEnd) error
}

// AttemptRepository handles attempt data access.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Attempt, error)
}
