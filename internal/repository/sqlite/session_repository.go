package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, owner_id=%s", s.ID, s.OwnerID)

	var endedAt any
	if s.EndedAt != nil {
		endedAt = *s.EndedAt
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (id, owner_id, mode, created_at, ended_at, total_questions, correct_answers)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.OwnerID, nullableString(s.Mode), s.CreatedAt, endedAt, nullableInt(s.TotalQuestions), nullableInt(s.CorrectAnswers))
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) GetOwned(ctx context.Context, id string, ownerID string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("fetching session: id=%s", id)

	var s models.Session
	var mode sql.NullString
	var endedAt sql.NullTime
	var total, correct sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, mode, created_at, ended_at, total_questions, correct_answers
FROM sessions
WHERE id = ? AND owner_id = ?
`, id, ownerID).Scan(&s.ID, &s.OwnerID, &mode, &s.CreatedAt, &endedAt, &total, &correct)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	s.Mode = stringPtr(mode)
	s.CreatedAt = s.CreatedAt.UTC()
	s.EndedAt = timePtr(endedAt)
	s.TotalQuestions = intPtr(total)
	s.CorrectAnswers = intPtr(correct)
	return &s, nil
}

// EndOwned stamps the end of a session. The stored end time never moves
// backward and the write matches nothing when the resulting correct count
// would exceed the resulting total.
func (r *sessionRepository) EndOwned(ctx context.Context, id string, ownerID string, end models.SessionEnd) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("ending session: id=%s", id)

	query := sqlBuilder.Update("sessions").
		Set("ended_at", squirrel.Expr(
			"CASE WHEN ended_at IS NOT NULL AND ended_at > ? THEN ended_at ELSE ? END",
			end.EndedAt, end.EndedAt,
		))
	if end.TotalQuestions != nil {
		query = query.Set("total_questions", *end.TotalQuestions)
	}
	if end.CorrectAnswers != nil {
		query = query.Set("correct_answers", *end.CorrectAnswers)
	}

	total, correct := nullableInt(end.TotalQuestions), nullableInt(end.CorrectAnswers)
	stmt, args, err := query.Where(squirrel.And{
		squirrel.Eq{"id": id, "owner_id": ownerID},
		squirrel.Expr(
			"(COALESCE(?, correct_answers) IS NULL OR COALESCE(?, total_questions) IS NULL OR COALESCE(?, correct_answers) <= COALESCE(?, total_questions))",
			correct, total, correct, total,
		),
	}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to end session: %v", err)
		return err
	}
	return affected(res)
}
