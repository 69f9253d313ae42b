package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "info", "json")
	logger.Debug("hidden")
	logger.Info("recompute failed", "key", "a/b/2024-06")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "recompute failed", line["msg"])
	assert.Equal(t, "a/b/2024-06", line["key"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, "debug", "text").Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
