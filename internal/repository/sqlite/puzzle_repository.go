package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

var puzzleColumns = []string{
	"id", "owner_id", "emoji_sequence", "answer", "hint", "category", "difficulty",
	"language", "is_system", "is_active", "created_at", "updated_at",
}

type puzzleRepository struct {
	db *sql.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: db}
}

func scanPuzzle(row rowScanner) (*models.Puzzle, error) {
	var p models.Puzzle
	var ownerID, hint, category, difficulty, language sql.NullString
	err := row.Scan(&p.ID, &ownerID, &p.EmojiSequence, &p.Answer, &hint, &category, &difficulty,
		&language, &p.IsSystem, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.OwnerID = stringPtr(ownerID)
	p.Hint = stringPtr(hint)
	p.Category = stringPtr(category)
	p.Difficulty = stringPtr(difficulty)
	p.Language = stringPtr(language)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (r *puzzleRepository) Insert(ctx context.Context, p models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("inserting puzzle: id=%s, system=%t", p.ID, p.IsSystem)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO puzzles (id, owner_id, emoji_sequence, answer, hint, category, difficulty, language, is_system, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.ID, nullableString(p.OwnerID), p.EmojiSequence, p.Answer, nullableString(p.Hint), nullableString(p.Category),
		nullableString(p.Difficulty), nullableString(p.Language), p.IsSystem, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Error("failed to insert puzzle: %v", err)
	}
	return err
}

func (r *puzzleRepository) getWhere(ctx context.Context, pred squirrel.Sqlizer) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")

	query, args, err := sqlBuilder.Select(puzzleColumns...).From("puzzles").Where(pred).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	p, err := scanPuzzle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("puzzle not found: %v", args)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *puzzleRepository) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

func (r *puzzleRepository) GetOwned(ctx context.Context, id string, ownerID string) (*models.Puzzle, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id, "owner_id": ownerID})
}

func (r *puzzleRepository) GetActive(ctx context.Context, id string) (*models.Puzzle, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id, "is_active": true})
}

func (r *puzzleRepository) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing puzzles: owner_id=%s, system_only=%t, include_inactive=%t, category=%s, difficulty=%s, page=%d, page_size=%d",
		filter.OwnerID, filter.SystemOnly, filter.IncludeInactive, filter.Category, filter.Difficulty, filter.Page, filter.PageSize)

	query := sqlBuilder.Select(puzzleColumns...).From("puzzles")

	if filter.SystemOnly {
		query = query.Where(squirrel.Eq{"owner_id": nil})
	} else {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if !filter.IncludeInactive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	filter.PageSize = pageSize
	query = query.OrderBy("created_at ASC", "rowid ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(filter.Offset()))

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()

	puzzles := []models.Puzzle{}
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, *p)
	}
	log.Debug("found %d puzzles", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) UpdateOwned(ctx context.Context, id string, ownerID string, c models.PuzzleChanges) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("updating puzzle: id=%s", id)

	set := map[string]any{"updated_at": c.UpdatedAt}
	if c.EmojiSequence != nil {
		set["emoji_sequence"] = *c.EmojiSequence
	}
	if c.Answer != nil {
		set["answer"] = *c.Answer
	}
	if c.SetHint {
		set["hint"] = nullableString(c.Hint)
	}
	if c.SetCategory {
		set["category"] = nullableString(c.Category)
	}
	if c.SetDifficulty {
		set["difficulty"] = nullableString(c.Difficulty)
	}
	if c.SetLanguage {
		set["language"] = nullableString(c.Language)
	}
	if c.IsActive != nil {
		set["is_active"] = *c.IsActive
	}

	stmt, args, err := sqlBuilder.Update("puzzles").
		SetMap(set).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to update puzzle: %v", err)
		return err
	}
	return affected(res)
}

func (r *puzzleRepository) DeactivateOwned(ctx context.Context, id string, ownerID string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("deactivating puzzle: id=%s", id)

	res, err := r.db.ExecContext(ctx, `
UPDATE puzzles
SET is_active = 0, updated_at = ?
WHERE id = ? AND owner_id = ? AND is_active = 1
`, at, id, ownerID)
	if err != nil {
		log.Error("failed to deactivate puzzle: %v", err)
		return err
	}
	return affected(res)
}
