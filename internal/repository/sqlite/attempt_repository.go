package sqlite

import (
	"context"
	"database/sql"

	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: id=%s, puzzle_id=%s, correct=%t", a.ID, a.PuzzleID, a.IsCorrect)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (id, session_id, puzzle_id, user_id, guess, is_correct, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.ID, nullableString(a.SessionID), a.PuzzleID, a.UserID, a.Guess, a.IsCorrect, a.CreatedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
	}
	return err
}

func (r *attemptRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("fetching attempts: session_id=%s", sessionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, puzzle_id, user_id, guess, is_correct, created_at
FROM attempts
WHERE session_id = ?
ORDER BY created_at ASC, rowid ASC
`, sessionID)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	attempts := []models.Attempt{}
	for rows.Next() {
		var a models.Attempt
		var sid sql.NullString
		if err := rows.Scan(&a.ID, &sid, &a.PuzzleID, &a.UserID, &a.Guess, &a.IsCorrect, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt: %v", err)
			return nil, err
		}
		a.SessionID = stringPtr(sid)
		a.CreatedAt = a.CreatedAt.UTC()
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}
