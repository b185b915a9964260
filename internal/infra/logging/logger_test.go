package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_WritesToDataDir(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("store", "created task task-1")
	logger.Error("persist", "write failed")

	// Assert
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[INFO] [store] created task task-1")
	assert.Contains(t, lines[1], "[ERROR] [persist] write failed")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelWarn)

	logger.Debug("store", "debug")
	logger.Info("store", "info")
	logger.Warn("assign", "warn")
	logger.Error("tool", "error")

	out := buf.String()
	assert.NotContains(t, out, "debug")
	assert.NotContains(t, out, "[INFO]")
	assert.Contains(t, out, "[WARN] [assign] warn")
	assert.Contains(t, out, "[ERROR] [tool] error")
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelDebug)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }

	logger.Debug("ws", "client connected")

	assert.Equal(t, "[2025-12-30 09:32:51] [DEBUG] [ws] client connected\n", buf.String())
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)

	assert.NotPanics(t, func() { logger.Info("store", "dropped") })
	assert.NoError(t, logger.Close())
}
