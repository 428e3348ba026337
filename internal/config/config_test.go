package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success - defaults", func(t *testing.T) {
		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
		assert.Equal(t, ":8088", cfg.ListenAddr)
		assert.Equal(t, "sqlite", cfg.OutboxDriver)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 120*time.Second, cfg.GenerateTimeout)
		assert.Equal(t, 30*time.Millisecond, cfg.TypingInterval)
		assert.Equal(t, 8, cfg.HydrateConcurrency)
	})

	t.Run("Success - environment overrides", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://chat.example.org/")
		t.Setenv("USER_ID", "u-7")
		t.Setenv("OUTBOX_DRIVER", "redis")
		t.Setenv("TYPING_INTERVAL", "5ms")
		t.Setenv("HYDRATE_CONCURRENCY", "2")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "https://chat.example.org", cfg.APIBaseURL, "trailing slash is trimmed")
		assert.Equal(t, "u-7", cfg.UserID)
		assert.Equal(t, "redis", cfg.OutboxDriver)
		assert.Equal(t, 5*time.Millisecond, cfg.TypingInterval)
		assert.Equal(t, 2, cfg.HydrateConcurrency)
	})
}
