package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "NODE_ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "JWT_TTL_HOURS", "CLIENT_URL", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
}

func TestLoadAcceptsNodeEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "production")

	assert.True(t, Load().IsProduction())
}
