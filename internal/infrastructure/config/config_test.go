package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 25, cfg.DatabaseMaxConns)
	assert.Equal(t, 5*time.Second, cfg.QuoteTimeout)
	assert.Equal(t, 15*time.Second, cfg.QuoteCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("QUOTE_FEED_URL", "http://feed.internal:9000")
	t.Setenv("QUOTE_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "http://feed.internal:9000", cfg.QuoteFeedURL)
	assert.Equal(t, 30*time.Second, cfg.QuoteCacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("QUOTE_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
