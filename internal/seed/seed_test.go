package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository/sqlite"
	"github.com/srkarthi1982/guess-the-emoji/internal/seed"
	"github.com/srkarthi1982/guess-the-emoji/internal/services"
	"github.com/srkarthi1982/guess-the-emoji/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
puzzles:
  - emoji: "🦁👑"
    answer: The Lion King
    category: movies
    difficulty: easy
  - emoji: "🕷️🧑"
    answer: Spider-Man
    hint: friendly neighbourhood
    language: en
`

func TestParse(t *testing.T) {
	f, err := seed.Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, f.Puzzles, 2)
	assert.Equal(t, "The Lion King", f.Puzzles[0].Answer)
	assert.Equal(t, "easy", *f.Puzzles[0].Difficulty)
	assert.Nil(t, f.Puzzles[0].Hint)
	assert.Equal(t, "friendly neighbourhood", *f.Puzzles[1].Hint)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("puzzles:\n  - emoji: x\n    owner: someone\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	f, err := seed.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Puzzles)
}

func TestApply(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.MustClose(t, database)
	svc := services.NewPuzzleService(sqlite.NewPuzzleRepository(database))

	f, err := seed.Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	n, err := seed.Apply(context.Background(), svc, f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	page, err := svc.ListPlayablePuzzles(context.Background(), models.PuzzleFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, p := range page.Items {
		assert.True(t, p.IsSystem)
		assert.Nil(t, p.OwnerID)
	}
}

func TestApply_InvalidEntryCreatesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.MustClose(t, database)
	svc := services.NewPuzzleService(sqlite.NewPuzzleRepository(database))

	f := seed.File{Puzzles: []seed.Puzzle{
		{Emoji: "🎈🏠", Answer: "Up"},
		{Emoji: "🧊", Answer: ""},
		{Emoji: "🐟", Answer: "Nemo"},
	}}
	n, err := seed.Apply(context.Background(), svc, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puzzle 2")
	assert.Zero(t, n)

	page, err := svc.ListPlayablePuzzles(context.Background(), models.PuzzleFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, seed.File{Puzzles: []seed.Puzzle{{Emoji: "🦈", Answer: "Jaws"}}}.Validate())
	assert.Error(t, seed.File{Puzzles: []seed.Puzzle{
		{Emoji: "🦈", Answer: "Jaws", Difficulty: testutil.Ptr("legendary")},
	}}.Validate())
}
