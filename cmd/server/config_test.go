package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"HEXGAME_PORT", "HEXGAME_REDIS_ADDR", "HEXGAME_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Port)
	assert.Empty(t, cfg.RedisAddr)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HEXGAME_PORT", "6000")
	t.Setenv("HEXGAME_REDIS_ADDR", "localhost:6379")
	t.Setenv("HEXGAME_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("HEXGAME_LOG_LEVEL", "chatty")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("HEXGAME_LOG_LEVEL", "info")
	t.Setenv("HEXGAME_PORT", "70000")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("HEXGAME_PORT", "not-a-port")
	_, err = LoadConfig()
	assert.Error(t, err)
}
