package db_test

import (
	"context"
	"testing"

	"github.com/srkarthi1982/guess-the-emoji/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	versions, err := database.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_indexes.sql", "0003_session_guards.sql"}, versions)

	for _, table := range []string{"puzzles", "sessions", "attempts"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Migrate(context.Background()))

	versions, err := database.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Len(t, versions, 3)
}

func TestSchema_RejectsUnknownDifficulty(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`
INSERT INTO puzzles (id, emoji_sequence, answer, difficulty, created_at, updated_at)
VALUES ('p1', '🐟', 'Nemo', 'extreme', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestSchema_SessionGuards(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`
INSERT INTO sessions (id, owner_id, created_at, total_questions, correct_answers)
VALUES ('s1', 'u1', '2024-03-01 12:00:00+00:00', 5, 6)`)
	assert.Error(t, err, "correct above total on insert")

	_, err = database.Exec(`
INSERT INTO sessions (id, owner_id, created_at, ended_at, total_questions)
VALUES ('s1', 'u1', '2024-03-01 12:00:00+00:00', '2024-03-01 12:05:00+00:00', 5)`)
	require.NoError(t, err)

	_, err = database.Exec(`UPDATE sessions SET correct_answers = 6 WHERE id = 's1'`)
	assert.Error(t, err, "correct above total on update")

	_, err = database.Exec(`UPDATE sessions SET ended_at = '2024-03-01 12:01:00+00:00' WHERE id = 's1'`)
	assert.Error(t, err, "ended_at moved backward")

	_, err = database.Exec(`UPDATE sessions SET ended_at = '2024-03-01 12:10:00+00:00', correct_answers = 5 WHERE id = 's1'`)
	assert.NoError(t, err)
}
