package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf)

	logger.WithField("problem", "simple1").Info("Comparison finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Comparison finished", entry["message"])
	assert.Equal(t, "simple1", entry["problem"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
}

func TestLoggerTextFormat(t *testing.T) {
	logger, err := NewLogger(&Config{Level: "info", Format: "text", Output: "stderr"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger.output = &buf
	logger.Info("Starting server", map[string]interface{}{"address": ":8080"})

	out := buf.String()
	assert.NotEmpty(t, out)
	assert.Error(t, json.Unmarshal(buf.Bytes(), &map[string]interface{}{}),
		"text format must not emit JSON")
	assert.Contains(t, out, "[INFO] Starting server")
	assert.Contains(t, out, "address")
}

func TestLoggerTextFormatSurvivesWithFields(t *testing.T) {
	logger, err := NewLogger(&Config{Level: "debug", Format: "TEXT", Output: "stdout"})
	require.NoError(t, err)

	derived := logger.WithFields(map[string]interface{}{"service": "gauntlet"})
	var buf bytes.Buffer
	derived.output = &buf
	derived.Warn("Candidate exceeded evaluation budget")

	assert.Contains(t, buf.String(), "[WARN]")
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WarnLevel, &buf)

	logger.Debug("dropped")
	logger.Info("dropped too")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestCtxLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctxLogger := &CtxLogger{New(DebugLevel, &buf)}

	ctx := ctxLogger.WithContext(context.Background())
	got := FromContext(ctx)
	require.Same(t, ctxLogger, got)

	got.Debug("Health check")
	assert.Contains(t, buf.String(), "Health check")
}

func TestFromContextFallsBack(t *testing.T) {
	got := FromContext(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, InfoLevel, got.level)
}
