package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`log { level = "warn" }`), 0o644))

	cfg, err := loadConfig(&Globals{Config: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "blackjack.log", cfg.Log.File)

	cfg, err = loadConfig(&Globals{Config: path, LogLevel: "debug", LogFile: "other.log"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "other.log", cfg.Log.File)

	cfg, err = loadConfig(&Globals{Config: filepath.Join(dir, "missing.hcl")})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(os.Stderr, "debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = newLogger(os.Stderr, "chatty")
	require.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.log")
	logger, closeLog, err := fileLogger(path, "info")
	require.NoError(t, err)

	logger.Info("Starting game", "players", 2)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Starting game")
	assert.Contains(t, string(data), "players=2")
}
