package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 300*time.Second, cfg.WeatherCacheTTL)
	assert.False(t, cfg.HasRemoteStorage())
	assert.Len(t, cfg.JWTSecret, 64)
	assert.False(t, cfg.HasSessionSecret())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("S3_ACCESS_KEY", "AKIA")
	t.Setenv("S3_PROVIDER", "minio")
	t.Setenv("S3_USE_SSL", "false")
	t.Setenv("WEATHER_CACHE_TTL", "90s")
	t.Setenv("JWT_EXPIRY", "not-a-duration")

	cfg := Load()

	assert.True(t, cfg.HasSessionSecret())
	assert.True(t, cfg.HasRemoteStorage())
	assert.Equal(t, "minio", cfg.S3Provider)
	assert.False(t, cfg.S3UseSSL)
	assert.Equal(t, 90*time.Second, cfg.WeatherCacheTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:       "Deskboard",
		JWTSecret:     "secret",
		S3AccessKey:   "access",
		S3SecretKey:   "secret-key",
		ResendAPIKey:  "re_123",
		WeatherAPIKey: "owm",
		SentryDSN:     "https://dsn",
		RedisURL:      "redis://:pw@localhost:6379",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "Deskboard", safe.AppName)
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.S3AccessKey)
	assert.Empty(t, safe.S3SecretKey)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.WeatherAPIKey)
	assert.Empty(t, safe.SentryDSN)
	assert.Empty(t, safe.RedisURL)
}
