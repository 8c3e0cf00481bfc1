package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLoggerVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelError, true).Debug("tap", "column", 2)
	assert.Contains(t, buf.String(), "msg=tap")
	assert.Contains(t, buf.String(), "app=techbar")

	buf.Reset()
	NewLogger(&buf, slog.LevelWarn, false).Info("hidden")
	assert.Empty(t, buf.String())
}
