package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("COURSERA_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COURSERA_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "CollegeCoursera API", cfg.AppName)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	require.Equal(t, 100, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COURSERA_JWT_SECRET", "test-secret")
	t.Setenv("COURSERA_APP_PORT", "9090")
	t.Setenv("COURSERA_TOKEN_TTL", "1h")
	t.Setenv("COURSERA_RATE_LIMIT_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 5, cfg.RateLimitMax)
}
