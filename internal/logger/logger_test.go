package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("error"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_TextFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf)).
		WithPrefix("svc").
		WithFields(map[string]any{"zeta": 2, "alpha": 1})

	log.Info("hello")

	line := buf.String()
	assert.Contains(t, line, "[svc]")
	assert.Less(t, strings.Index(line, "alpha=1"), strings.Index(line, "zeta=2"))
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.ParseFormat("json"))).
		WithPrefix("repo").
		WithField("user_id", "u1")

	log.Error("boom: %s", "disk")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom: disk", entry["msg"])
	assert.Equal(t, "repo", entry["component"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	custom := logger.New()
	ctx := logger.NewContext(context.Background(), custom)
	assert.Same(t, custom, logger.FromContext(ctx))
}
