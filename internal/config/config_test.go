package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, "fourinarow.log", cfg.LogFile)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.ShowLeaderboard)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FOURINAROW_SERVER", "wss://play.example.com")
	t.Setenv("FOURINAROW_USERNAME", "alice")
	t.Setenv("FOURINAROW_THEME", "ocean")
	t.Setenv("FOURINAROW_DEBUG", "true")
	t.Setenv("FOURINAROW_LEADERBOARD", "false")

	cfg := FromEnv()

	assert.Equal(t, "wss://play.example.com", cfg.ServerURL)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "ocean", cfg.Theme)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.ShowLeaderboard)
}

func TestFromEnvIgnoresBadBool(t *testing.T) {
	t.Setenv("FOURINAROW_DEBUG", "definitely")

	cfg := FromEnv()
	assert.False(t, cfg.Debug)
}
