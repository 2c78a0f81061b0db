package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ListenPort)
	assert.Equal(t, "https", cfg.UpstreamScheme)
	assert.Equal(t, time.Duration(0), cfg.UpstreamTimeout)
	assert.False(t, cfg.Processor.Enabled)
	assert.Equal(t, 21*24*time.Hour, cfg.Processor.ResolveAfter)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_PORT", "8080")
	t.Setenv("UPSTREAM_SCHEME", "http")
	t.Setenv("UPSTREAM_HOST", "backend:5000")
	t.Setenv("UPSTREAM_TIMEOUT", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com,http://b.example.com")
	t.Setenv("PROCESSOR_ENABLED", "true")
	t.Setenv("RESOLVE_AFTER_DAYS", "7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ListenPort)
	assert.Equal(t, "http://backend:5000", cfg.UpstreamBase())
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Processor.Enabled)
	assert.Equal(t, 7*24*time.Hour, cfg.Processor.ResolveAfter)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("LISTEN_PORT", "not-a-port")

	_, err := config.Load()
	assert.Error(t, err)
}
