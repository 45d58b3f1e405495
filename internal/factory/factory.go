package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/config"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/clock"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/ratelimit"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/gamedata"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/leaderboard"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage/memory"
	redisstorage "github.com/Manfred-Klatt/nooktrivia-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService        *auth.Service
	ScoreService       *score.Service
	LeaderboardService *leaderboard.Service
	GamedataService    *gamedata.Service

	// Rate limiting
	Limiter ratelimit.Limiter
}

// New creates a new application with all dependencies wired from config
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var redisStore *redisstorage.Storage

	switch cfg.StorageType {
	case StorageTypeMemory, "":
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		rs, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		redisStore = rs
		store = rs
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	// The limiter shares the Redis connection when Redis backs storage, so
	// the budget holds across replicas; otherwise it is per-process
	var limiter ratelimit.Limiter
	if redisStore != nil {
		limiter = ratelimit.NewRedisLimiter(redisStore.Client(), cfg.RateLimitWindow, cfg.RateLimitMax)
	} else {
		limiter = ratelimit.NewMemoryLimiter(clk, cfg.RateLimitWindow, cfg.RateLimitMax)
	}

	app := newWithDependencies(store, clk, logger, serviceConfigs{
		auth: auth.Config{
			TokenSecret:   cfg.JWTSecret,
			TokenDuration: cfg.JWTExpiry,
		},
		score: score.Config{
			GuestToken: cfg.GuestToken,
		},
		leaderboard: leaderboard.Config{
			DefaultLimit: cfg.LeaderboardLimit,
			MaxLimit:     cfg.LeaderboardMaxLimit,
		},
		gamedata: gamedata.Config{
			BaseURL:  cfg.NookipediaBaseURL,
			APIKey:   cfg.NookipediaKey,
			CacheTTL: cfg.GamedataTTL,
		},
	})
	app.Limiter = limiter
	return app, nil
}

type serviceConfigs struct {
	auth        auth.Config
	score       score.Config
	leaderboard leaderboard.Config
	gamedata    gamedata.Config
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger, cfgs serviceConfigs) *App {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	return &App{
		Storage:            store,
		Clock:              clk,
		AuthService:        auth.New(store, clk, cfgs.auth),
		ScoreService:       score.New(store, clk, logger, cfgs.score),
		LeaderboardService: leaderboard.New(store, cfgs.leaderboard),
		GamedataService:    gamedata.New(httpClient, clk, logger, cfgs.gamedata),
	}
}
