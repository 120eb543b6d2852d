package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = map[Category]*Logger{}
	logsDir = ""
	enabled = false
	logLevel = LevelInfo
}

func TestDisabledIsNoOp(t *testing.T) {
	defer reset()
	stateDir := t.TempDir()
	require.NoError(t, Initialize(stateDir, false, "info"))

	Get(CategoryLint).Info("should go nowhere")
	Close()

	_, err := os.Stat(filepath.Join(stateDir, "logs"))
	assert.True(t, os.IsNotExist(err), "logs directory must not be created when disabled")
}

func TestEnabledWritesCategoryFiles(t *testing.T) {
	defer reset()
	stateDir := t.TempDir()
	require.NoError(t, Initialize(stateDir, true, "debug"))

	Get(CategoryLint).Info("linted %d pages", 3)
	Get(CategoryWatch).Debug("event %s", "write")
	Close()

	lintLog, err := os.ReadFile(filepath.Join(stateDir, "logs", "lint.log"))
	require.NoError(t, err)
	assert.Contains(t, string(lintLog), "linted 3 pages")
	assert.Contains(t, string(lintLog), "[INFO]")

	watchLog, err := os.ReadFile(filepath.Join(stateDir, "logs", "watch.log"))
	require.NoError(t, err)
	assert.Contains(t, string(watchLog), "[DEBUG]")
}

func TestLevelFiltering(t *testing.T) {
	defer reset()
	stateDir := t.TempDir()
	require.NoError(t, Initialize(stateDir, true, "warn"))

	l := Get(CategoryBlocks)
	l.Info("filtered out")
	l.Warn("kept")
	Close()

	data, err := os.ReadFile(filepath.Join(stateDir, "logs", "blocks.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered out")
	assert.Contains(t, string(data), "kept")
}
