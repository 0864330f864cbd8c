package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/srkarthi1982/guess-the-emoji/internal/errors"
	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository/sqlite"
	"github.com/srkarthi1982/guess-the-emoji/internal/services"
	"github.com/srkarthi1982/guess-the-emoji/internal/testutil"
	"github.com/srkarthi1982/guess-the-emoji/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	userA = "user-a"
	userB = "user-b"
)

// sequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type PuzzleServiceSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sql.DB
	clock   *testutil.Clock
	repo    repository.PuzzleRepository
	service services.PuzzleService
}

func (s *PuzzleServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.clock = testutil.NewClock()
	s.repo = sqlite.NewPuzzleRepository(s.db)
	s.service = services.NewPuzzleService(s.repo,
		services.WithClock(s.clock.Now),
		services.WithIDGenerator(sequentialIDs("puzzle")),
	)
}

func (s *PuzzleServiceSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PuzzleServiceSuite) create(owner, answer string) *models.Puzzle {
	p, err := s.service.CreatePuzzle(s.ctx, owner, models.CreatePuzzleInput{
		EmojiSequence: "🧩",
		Answer:        answer,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	return p
}

func (s *PuzzleServiceSuite) system(answer string) *models.Puzzle {
	p, err := s.service.CreateSystemPuzzle(s.ctx, models.CreatePuzzleInput{
		EmojiSequence: "🌍",
		Answer:        answer,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	return p
}

func (s *PuzzleServiceSuite) TestCreatePuzzle() {
	now := s.clock.Now()
	p, err := s.service.CreatePuzzle(s.ctx, userA, models.CreatePuzzleInput{
		EmojiSequence: "🚗💨🏁",
		Answer:        "Fast and Furious",
		Hint:          testutil.Ptr("  "),
		Category:      testutil.Ptr("movies"),
		Difficulty:    testutil.Ptr(models.DifficultyEasy),
		Language:      testutil.Ptr("en-us"),
	})
	s.Require().NoError(err)

	s.Equal("puzzle-1", p.ID)
	s.Require().NotNil(p.OwnerID)
	s.Equal(userA, *p.OwnerID)
	s.False(p.IsSystem)
	s.True(p.IsActive)
	s.Nil(p.Hint)
	s.Equal("movies", *p.Category)
	s.Equal("en-US", *p.Language)
	s.Equal(now, p.CreatedAt)
	s.Equal(now, p.UpdatedAt)

	stored, err := s.repo.GetOwned(s.ctx, p.ID, userA)
	s.Require().NoError(err)
	s.Equal(p, stored)
}

func (s *PuzzleServiceSuite) TestCreatePuzzle_Validation() {
	cases := []struct {
		name string
		in   models.CreatePuzzleInput
	}{
		{"blank emoji", models.CreatePuzzleInput{EmojiSequence: "  ", Answer: "x"}},
		{"blank answer", models.CreatePuzzleInput{EmojiSequence: "🧩", Answer: ""}},
		{"bad difficulty", models.CreatePuzzleInput{EmojiSequence: "🧩", Answer: "x", Difficulty: testutil.Ptr("extreme")}},
		{"bad language", models.CreatePuzzleInput{EmojiSequence: "🧩", Answer: "x", Language: testutil.Ptr("not a tag!")}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.CreatePuzzle(s.ctx, userA, tc.in)
			s.True(apperrors.IsInvalidRequest(err), "got %v", err)
		})
	}
}

func (s *PuzzleServiceSuite) TestCreatePuzzle_RequiresUser() {
	_, err := s.service.CreatePuzzle(s.ctx, "", models.CreatePuzzleInput{EmojiSequence: "🧩", Answer: "x"})
	s.Equal(apperrors.ErrCodeUnauthenticated, apperrors.Code(err))
}

func (s *PuzzleServiceSuite) TestUpdatePuzzle_FieldSemantics() {
	p, err := s.service.CreatePuzzle(s.ctx, userA, models.CreatePuzzleInput{
		EmojiSequence: "🦁👑",
		Answer:        "The Lion King",
		Hint:          testutil.Ptr("Hakuna"),
		Category:      testutil.Ptr("movies"),
		Difficulty:    testutil.Ptr(models.DifficultyMedium),
	})
	s.Require().NoError(err)
	later := s.clock.Advance(time.Hour)

	updated, err := s.service.UpdatePuzzle(s.ctx, userA, p.ID, models.UpdatePuzzleInput{
		Answer:     models.Some("Lion King"),
		Hint:       models.Null[string](),
		Category:   models.Some(""),
		Difficulty: models.Null[string](),
		Language:   models.Some("fr"),
	})
	s.Require().NoError(err)

	s.Equal("🦁👑", updated.EmojiSequence)
	s.Equal("Lion King", updated.Answer)
	s.Nil(updated.Hint)
	s.Nil(updated.Category)
	s.Nil(updated.Difficulty)
	s.Equal("fr", *updated.Language)
	s.True(updated.IsActive)
	s.Equal(p.CreatedAt, updated.CreatedAt)
	s.Equal(later, updated.UpdatedAt)
}

func (s *PuzzleServiceSuite) TestUpdatePuzzle_Reactivate() {
	p := s.create(userA, "Up")
	_, err := s.service.DeactivatePuzzle(s.ctx, userA, p.ID)
	s.Require().NoError(err)

	updated, err := s.service.UpdatePuzzle(s.ctx, userA, p.ID, models.UpdatePuzzleInput{IsActive: models.Some(true)})
	s.Require().NoError(err)
	s.True(updated.IsActive)
}

func (s *PuzzleServiceSuite) TestUpdatePuzzle_RejectsInvalidFields() {
	p := s.create(userA, "Up")
	cases := map[string]models.UpdatePuzzleInput{
		"empty set":        {},
		"null answer":      {Answer: models.Null[string]()},
		"blank emoji":      {EmojiSequence: models.Some(" ")},
		"bad difficulty":   {Difficulty: models.Some("impossible")},
		"empty difficulty": {Difficulty: models.Some("")},
		"null isActive":    {IsActive: models.Null[bool]()},
	}
	for name, in := range cases {
		s.Run(name, func() {
			_, err := s.service.UpdatePuzzle(s.ctx, userA, p.ID, in)
			s.True(apperrors.IsInvalidRequest(err), "got %v", err)
		})
	}

	stored, err := s.repo.GetOwned(s.ctx, p.ID, userA)
	s.Require().NoError(err)
	s.Equal("Up", stored.Answer)
	s.Equal(p.UpdatedAt, stored.UpdatedAt)
}

func (s *PuzzleServiceSuite) TestUpdateAndDeactivate_ForeignAndSystemPuzzlesNotFound() {
	foreign := s.create(userB, "Jaws")
	sys := s.system("Titanic")

	for _, id := range []string{foreign.ID, sys.ID, "missing"} {
		_, err := s.service.UpdatePuzzle(s.ctx, userA, id, models.UpdatePuzzleInput{Answer: models.Some("hacked")})
		s.Equal(apperrors.ErrCodeNotFound, apperrors.Code(err), id)

		_, err = s.service.DeactivatePuzzle(s.ctx, userA, id)
		s.Equal(apperrors.ErrCodeNotFound, apperrors.Code(err), id)
	}

	stored, err := s.repo.Get(s.ctx, foreign.ID)
	s.Require().NoError(err)
	s.Equal("Jaws", stored.Answer)
	s.True(stored.IsActive)
}

func (s *PuzzleServiceSuite) TestDeactivatePuzzle_RepeatIsNotFound() {
	p := s.create(userA, "Cars")

	id, err := s.service.DeactivatePuzzle(s.ctx, userA, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, id)

	_, err = s.service.DeactivatePuzzle(s.ctx, userA, p.ID)
	s.Equal(apperrors.ErrCodeNotFound, apperrors.Code(err))
}

func (s *PuzzleServiceSuite) TestListMyPuzzles_SecondPageOfOne() {
	s.create(userA, "first")
	second := s.create(userA, "second")
	s.create(userA, "third")
	s.create(userB, "other")

	page, err := s.service.ListMyPuzzles(s.ctx, userA, models.PuzzleFilter{Page: 2, PageSize: 1})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(second.ID, page.Items[0].ID)
	s.Equal(1, page.Count)
	s.Equal(2, page.Page)
	s.Equal(1, page.PageSize)
}

func (s *PuzzleServiceSuite) TestListMyPuzzles_Defaults() {
	s.create(userA, "only")

	page, err := s.service.ListMyPuzzles(s.ctx, userA, models.PuzzleFilter{})
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(models.DefaultPageSize, page.PageSize)
	s.Equal(1, page.Count)
}

func (s *PuzzleServiceSuite) TestListMyPuzzles_ExcludesInactiveUnlessAsked() {
	active := s.create(userA, "active")
	inactive := s.create(userA, "inactive")
	_, err := s.service.DeactivatePuzzle(s.ctx, userA, inactive.ID)
	s.Require().NoError(err)

	page, err := s.service.ListMyPuzzles(s.ctx, userA, models.PuzzleFilter{})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(active.ID, page.Items[0].ID)
	for _, p := range page.Items {
		s.True(p.IsActive)
	}

	page, err = s.service.ListMyPuzzles(s.ctx, userA, models.PuzzleFilter{IncludeInactive: true})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
}

func (s *PuzzleServiceSuite) TestListMyPuzzles_FiltersByCategoryAndDifficulty() {
	_, err := s.service.CreatePuzzle(s.ctx, userA, models.CreatePuzzleInput{
		EmojiSequence: "🎬", Answer: "a", Category: testutil.Ptr("movies"), Difficulty: testutil.Ptr(models.DifficultyHard),
	})
	s.Require().NoError(err)
	_, err = s.service.CreatePuzzle(s.ctx, userA, models.CreatePuzzleInput{
		EmojiSequence: "🎵", Answer: "b", Category: testutil.Ptr("songs"), Difficulty: testutil.Ptr(models.DifficultyHard),
	})
	s.Require().NoError(err)

	page, err := s.service.ListMyPuzzles(s.ctx, userA, models.PuzzleFilter{Category: "movies", Difficulty: models.DifficultyHard})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("a", page.Items[0].Answer)
}

func (s *PuzzleServiceSuite) TestListMyPuzzles_InvalidPaging() {
	for _, f := range []models.PuzzleFilter{{Page: -1}, {PageSize: 101}, {PageSize: -5}, {Difficulty: "nope"}} {
		_, err := s.service.ListMyPuzzles(s.ctx, userA, f)
		s.True(apperrors.IsInvalidRequest(err), "filter %+v", f)
	}
}

func (s *PuzzleServiceSuite) TestGetPuzzle_Visibility() {
	own := s.create(userA, "Mine")
	foreign := s.create(userB, "Theirs")
	sys := s.system("Shared")
	retired := s.system("Retired")
	_, err := s.db.Exec(`UPDATE puzzles SET is_active = 0 WHERE id = ?`, retired.ID)
	s.Require().NoError(err)

	got, err := s.service.GetPuzzle(s.ctx, userA, own.ID)
	s.Require().NoError(err)
	s.Equal("Mine", got.Answer)

	got, err = s.service.GetPuzzle(s.ctx, userA, sys.ID)
	s.Require().NoError(err)
	s.Empty(got.Answer)
	s.True(got.IsSystem)

	for _, id := range []string{foreign.ID, retired.ID, "missing"} {
		_, err = s.service.GetPuzzle(s.ctx, userA, id)
		s.Equal(apperrors.ErrCodeNotFound, apperrors.Code(err), id)
	}
}

func (s *PuzzleServiceSuite) TestListPlayablePuzzles() {
	s.create(userA, "private")
	first := s.system("one")
	second := s.system("two")

	page, err := s.service.ListPlayablePuzzles(s.ctx, models.PuzzleFilter{IncludeInactive: true})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 2)
	s.Equal(first.ID, page.Items[0].ID)
	s.Equal(second.ID, page.Items[1].ID)
	for _, p := range page.Items {
		s.Empty(p.Answer)
		s.Nil(p.OwnerID)
	}
}

func TestPuzzleServiceSuite(t *testing.T) {
	suite.Run(t, new(PuzzleServiceSuite))
}

func TestUpdatePuzzle_ValidatesBeforeStorage(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := services.NewPuzzleService(repo)

	_, err := svc.UpdatePuzzle(context.Background(), userA, "p1", models.UpdatePuzzleInput{})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.Code(err))

	_, err = svc.UpdatePuzzle(context.Background(), userA, "p1", models.UpdatePuzzleInput{Difficulty: models.Some("nope")})
	assert.True(t, apperrors.IsInvalidRequest(err))

	repo.AssertNotCalled(t, "UpdateOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePuzzle_StorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPuzzleRepository)
	repo.On("Insert", ctx, mock.AnythingOfType("models.Puzzle")).Return(fmt.Errorf("disk full"))

	_, err := services.NewPuzzleService(repo).CreatePuzzle(ctx, userA, models.CreatePuzzleInput{EmojiSequence: "🧩", Answer: "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.Code(err))
	assert.ErrorContains(t, err, "disk full")
}
