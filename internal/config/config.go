package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all server configuration, loaded from environment variables
// with an optional .env file for local development
type Config struct {
	Env  string `mapstructure:"NODE_ENV"`
	Host string `mapstructure:"HOST"`
	Port int    `mapstructure:"PORT"`

	StorageType string `mapstructure:"STORAGE_TYPE"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	JWTExpiry  time.Duration `mapstructure:"JWT_EXPIRES_IN"`
	CookieDays int           `mapstructure:"JWT_COOKIE_EXPIRES_IN"`

	GuestToken string `mapstructure:"APP_TOKEN"`

	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX"`

	LeaderboardLimit    int `mapstructure:"LEADERBOARD_LIMIT"`
	LeaderboardMaxLimit int `mapstructure:"LEADERBOARD_MAX_LIMIT"`

	NookipediaBaseURL string        `mapstructure:"NOOKIPEDIA_BASE_URL"`
	NookipediaKey     string        `mapstructure:"NOOKIPEDIA_API_KEY"`
	WikiBaseURL       string        `mapstructure:"WIKI_BASE_URL"`
	GamedataTTL       time.Duration `mapstructure:"GAMEDATA_CACHE_TTL"`

	MaxBodyBytes int64 `mapstructure:"MAX_BODY_BYTES"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal case in production
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("HOST", "")
	v.SetDefault("PORT", 8080)
	v.SetDefault("STORAGE_TYPE", "redis")
	v.SetDefault("REDIS_URL", "redis://localhost:6379")
	v.SetDefault("JWT_EXPIRES_IN", "168h")
	v.SetDefault("JWT_COOKIE_EXPIRES_IN", 7)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("LEADERBOARD_LIMIT", 10)
	v.SetDefault("LEADERBOARD_MAX_LIMIT", 100)
	v.SetDefault("NOOKIPEDIA_BASE_URL", "https://api.nookipedia.com")
	v.SetDefault("WIKI_BASE_URL", "https://nookipedia.com")
	v.SetDefault("GAMEDATA_CACHE_TTL", "1h")
	v.SetDefault("MAX_BODY_BYTES", 16<<10)

	cfg := &Config{
		Env:                 v.GetString("NODE_ENV"),
		Host:                v.GetString("HOST"),
		Port:                v.GetInt("PORT"),
		StorageType:         v.GetString("STORAGE_TYPE"),
		RedisURL:            v.GetString("REDIS_URL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTExpiry:           v.GetDuration("JWT_EXPIRES_IN"),
		CookieDays:          v.GetInt("JWT_COOKIE_EXPIRES_IN"),
		GuestToken:          v.GetString("APP_TOKEN"),
		AllowedOrigins:      splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		RateLimitWindow:     v.GetDuration("RATE_LIMIT_WINDOW"),
		RateLimitMax:        v.GetInt("RATE_LIMIT_MAX"),
		LeaderboardLimit:    v.GetInt("LEADERBOARD_LIMIT"),
		LeaderboardMaxLimit: v.GetInt("LEADERBOARD_MAX_LIMIT"),
		NookipediaBaseURL:   v.GetString("NOOKIPEDIA_BASE_URL"),
		NookipediaKey:       v.GetString("NOOKIPEDIA_API_KEY"),
		WikiBaseURL:         v.GetString("WIKI_BASE_URL"),
		GamedataTTL:         v.GetDuration("GAMEDATA_CACHE_TTL"),
		MaxBodyBytes:        v.GetInt64("MAX_BODY_BYTES"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and coherent
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.GuestToken == "" {
		return errors.New("APP_TOKEN is required")
	}
	if c.StorageType != "memory" && c.StorageType != "redis" {
		return fmt.Errorf("STORAGE_TYPE must be 'memory' or 'redis', got %q", c.StorageType)
	}
	if c.StorageType == "redis" && c.RedisURL == "" {
		return errors.New("REDIS_URL is required when STORAGE_TYPE=redis")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CookieDuration returns the browser cookie lifetime
func (c *Config) CookieDuration() time.Duration {
	return time.Duration(c.CookieDays) * 24 * time.Hour
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
