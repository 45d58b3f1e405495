package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:         "development",
		Port:        8080,
		StorageType: "memory",
		JWTSecret:   "secret",
		GuestToken:  "guest",
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TOKEN", "guest")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.LeaderboardLimit)
	assert.Equal(t, 100, cfg.RateLimitMax)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TOKEN", "guest")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadFailsWithoutSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestValidateRequiresGuestToken(t *testing.T) {
	cfg := validConfig()
	cfg.GuestToken = ""
	assert.ErrorContains(t, cfg.Validate(), "APP_TOKEN")
}

func TestValidateRejectsUnknownStorageType(t *testing.T) {
	cfg := validConfig()
	cfg.StorageType = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "STORAGE_TYPE")
}

func TestValidateRequiresRedisURLForRedisStorage(t *testing.T) {
	cfg := validConfig()
	cfg.StorageType = "redis"
	cfg.RedisURL = ""
	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "PORT")
}

func TestCookieDuration(t *testing.T) {
	cfg := validConfig()
	cfg.CookieDays = 7
	assert.Equal(t, 7*24*time.Hour, cfg.CookieDuration())
}
