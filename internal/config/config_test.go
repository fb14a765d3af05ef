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

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "8080", cfg.StubHTTPPort)
	assert.Equal(t, 12, cfg.SeedDoctors)
	assert.Equal(t, 60, cfg.SeedPatients)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("HTTP_TIMEOUT", "5")
	t.Setenv("RATE_LIMIT_RPS", "25.5")
	t.Setenv("SEED_DOCTORS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 25.5, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.SeedDoctors)
}

func TestLoadAcceptsDurationStrings(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "1m30s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")
	_, err := Load()
	assert.Error(t, err)
}
