package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
)

// PuzzleService handles puzzle ownership, visibility and listing rules
type PuzzleService interface {
	CreatePuzzle(ctx context.Context, ownerID string, in models.CreatePuzzleInput) (*models.Puzzle, error)
	CreateSystemPuzzle(ctx context.Context, in models.CreatePuzzleInput) (*models.Puzzle, error)
	UpdatePuzzle(ctx context.Context, ownerID string, id string, in models.UpdatePuzzleInput) (*models.Puzzle, error)
	DeactivatePuzzle(ctx context.Context, ownerID string, id string) (string, error)
	GetPuzzle(ctx context.Context, userID string, id string) (*models.Puzzle, error)
	ListMyPuzzles(ctx context.Context, ownerID string, filter models.PuzzleFilter) (*models.PuzzlePage, error)
	ListPlayablePuzzles(ctx context.Context, filter models.PuzzleFilter) (*models.PuzzlePage, error)
}

type puzzleService struct {
	puzzleRepo repository.PuzzleRepository
	opts       options
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(puzzleRepo repository.PuzzleRepository, opts ...Option) PuzzleService {
	return &puzzleService{
		puzzleRepo: puzzleRepo,
		opts:       buildOptions(opts),
	}
}

func (s *puzzleService) CreatePuzzle(ctx context.Context, ownerID string, in models.CreatePuzzleInput) (*models.Puzzle, error) {
	if err := requireUser(ownerID); err != nil {
		return nil, err
	}
	owner := ownerID
	return s.create(ctx, &owner, in)
}

func (s *puzzleService) CreateSystemPuzzle(ctx context.Context, in models.CreatePuzzleInput) (*models.Puzzle, error) {
	return s.create(ctx, nil, in)
}

func (s *puzzleService) create(ctx context.Context, ownerID *string, in models.CreatePuzzleInput) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating puzzle: system=%t", ownerID == nil)

	difficulty, lang, err := checkCreate(in)
	if err != nil {
		return nil, err
	}

	now := s.opts.timestamp()
	puzzle := models.Puzzle{
		ID:            s.opts.newID(),
		OwnerID:       ownerID,
		EmojiSequence: in.EmojiSequence,
		Answer:        in.Answer,
		Hint:          optionalText(in.Hint),
		Category:      optionalText(in.Category),
		Difficulty:    difficulty,
		Language:      lang,
		IsSystem:      ownerID == nil,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.puzzleRepo.Insert(ctx, puzzle); err != nil {
		log.Error("failed to create puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("puzzle created: id=%s", puzzle.ID)
	return &puzzle, nil
}

// ValidateCreatePuzzle reports the error CreatePuzzle or CreateSystemPuzzle
// would return for in before touching storage.
func ValidateCreatePuzzle(in models.CreatePuzzleInput) error {
	_, _, err := checkCreate(in)
	return err
}

// checkCreate validates a create input and returns its normalized
// difficulty and language.
func checkCreate(in models.CreatePuzzleInput) (difficulty, lang *string, err error) {
	if err := requireText("emojiSequence", in.EmojiSequence); err != nil {
		return nil, nil, err
	}
	if err := requireText("answer", in.Answer); err != nil {
		return nil, nil, err
	}
	difficulty = optionalText(in.Difficulty)
	if err := validateDifficulty(difficulty); err != nil {
		return nil, nil, err
	}
	lang, err = canonicalLanguage(in.Language)
	if err != nil {
		return nil, nil, err
	}
	return difficulty, lang, nil
}

// puzzleChanges validates the supplied fields. Absent fields are left out.
func (s *puzzleService) puzzleChanges(in models.UpdatePuzzleInput) (models.PuzzleChanges, error) {
	var c models.PuzzleChanges

	if in.EmojiSequence.Set {
		if in.EmojiSequence.Null {
			return c, errors.NewValidationError("emojiSequence", "cannot be null")
		}
		if err := requireText("emojiSequence", in.EmojiSequence.Value); err != nil {
			return c, err
		}
		c.EmojiSequence = in.EmojiSequence.Ptr()
	}
	if in.Answer.Set {
		if in.Answer.Null {
			return c, errors.NewValidationError("answer", "cannot be null")
		}
		if err := requireText("answer", in.Answer.Value); err != nil {
			return c, err
		}
		c.Answer = in.Answer.Ptr()
	}
	if in.Hint.Set {
		c.SetHint = true
		c.Hint = optionalText(in.Hint.Ptr())
	}
	if in.Category.Set {
		c.SetCategory = true
		c.Category = optionalText(in.Category.Ptr())
	}
	if in.Difficulty.Set {
		d := optionalText(in.Difficulty.Ptr())
		if in.Difficulty.Ptr() != nil && d == nil {
			return c, errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
		}
		if err := validateDifficulty(d); err != nil {
			return c, err
		}
		c.SetDifficulty = true
		c.Difficulty = d
	}
	if in.Language.Set {
		lang, err := canonicalLanguage(in.Language.Ptr())
		if err != nil {
			return c, err
		}
		c.SetLanguage = true
		c.Language = lang
	}
	if in.IsActive.Set {
		if in.IsActive.Null {
			return c, errors.NewValidationError("isActive", "cannot be null")
		}
		c.IsActive = in.IsActive.Ptr()
	}
	return c, nil
}

func (s *puzzleService) UpdatePuzzle(ctx context.Context, ownerID string, id string, in models.UpdatePuzzleInput) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating puzzle: id=%s", id)

	if err := requireUser(ownerID); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, errors.NewInvalidRequestError("no fields to update")
	}
	changes, err := s.puzzleChanges(in)
	if err != nil {
		return nil, err
	}
	changes.UpdatedAt = s.opts.timestamp()

	err = s.puzzleRepo.UpdateOwned(ctx, id, ownerID, changes)
	if stderrors.Is(err, repository.ErrNoRows) {
		return nil, errors.NewNotFoundError("puzzle", id)
	}
	if err != nil {
		log.Error("failed to update puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}

	puzzle, err := s.puzzleRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		log.Error("failed to reload puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("puzzle", id)
	}

	log.Info("puzzle updated: id=%s", id)
	return puzzle, nil
}

func (s *puzzleService) DeactivatePuzzle(ctx context.Context, ownerID string, id string) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("deactivating puzzle: id=%s", id)

	if err := requireUser(ownerID); err != nil {
		return "", err
	}

	err := s.puzzleRepo.DeactivateOwned(ctx, id, ownerID, s.opts.timestamp())
	if stderrors.Is(err, repository.ErrNoRows) {
		return "", errors.NewNotFoundError("puzzle", id)
	}
	if err != nil {
		log.Error("failed to deactivate puzzle: %v", err)
		return "", errors.NewInternalError(err)
	}

	log.Info("puzzle deactivated: id=%s", id)
	return id, nil
}

func (s *puzzleService) GetPuzzle(ctx context.Context, userID string, id string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting puzzle: id=%s", id)

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	puzzle, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	switch {
	case puzzle == nil:
		return nil, errors.NewNotFoundError("puzzle", id)
	case puzzle.OwnedBy(userID):
		return puzzle, nil
	case puzzle.OwnerID == nil && puzzle.IsActive:
		redacted := puzzle.Redacted()
		return &redacted, nil
	default:
		return nil, errors.NewNotFoundError("puzzle", id)
	}
}

func normalizePage(filter *models.PuzzleFilter) error {
	if filter.Page < 0 {
		return errors.NewValidationError("page", "must be 1 or greater")
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = models.DefaultPageSize
	}
	if filter.PageSize < 1 || filter.PageSize > models.MaxPageSize {
		return errors.NewValidationError("pageSize", "must be between 1 and 100")
	}
	filter.Category = strings.TrimSpace(filter.Category)
	if filter.Difficulty != "" && !models.ValidDifficulty(filter.Difficulty) {
		return errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}
	return nil
}

func (s *puzzleService) list(ctx context.Context, filter models.PuzzleFilter) (*models.PuzzlePage, error) {
	log := logger.FromContext(ctx)

	puzzles, err := s.puzzleRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzles == nil {
		puzzles = []models.Puzzle{}
	}
	return &models.PuzzlePage{
		Items:    puzzles,
		Count:    len(puzzles),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *puzzleService) ListMyPuzzles(ctx context.Context, ownerID string, filter models.PuzzleFilter) (*models.PuzzlePage, error) {
	logger.FromContext(ctx).Debug("listing own puzzles: page=%d, page_size=%d", filter.Page, filter.PageSize)

	if err := requireUser(ownerID); err != nil {
		return nil, err
	}
	if err := normalizePage(&filter); err != nil {
		return nil, err
	}
	filter.OwnerID = ownerID
	filter.SystemOnly = false
	return s.list(ctx, filter)
}

func (s *puzzleService) ListPlayablePuzzles(ctx context.Context, filter models.PuzzleFilter) (*models.PuzzlePage, error) {
	logger.FromContext(ctx).Debug("listing playable puzzles: page=%d, page_size=%d", filter.Page, filter.PageSize)

	if err := normalizePage(&filter); err != nil {
		return nil, err
	}
	filter.OwnerID = ""
	filter.SystemOnly = true
	filter.IncludeInactive = false

	page, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		page.Items[i] = page.Items[i].Redacted()
	}
	return page, nil
}
