package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/handler"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/middleware"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/ratelimit"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/gamedata"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/leaderboard"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Storage            storage.Storage
	AuthService        *auth.Service
	ScoreService       *score.Service
	LeaderboardService *leaderboard.Service
	GamedataService    *gamedata.Service
	Limiter            ratelimit.Limiter

	AllowedOrigins []string
	Production     bool
	MaxBodyBytes   int64
	CookieDuration time.Duration
	WikiBaseURL    string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 16 << 10
	}

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.CookieDuration, cfg.Production)
	scoreHandler := handler.NewScoreHandler(cfg.ScoreService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	gamedataHandler := handler.NewGamedataHandler(cfg.GamedataService, cfg.WikiBaseURL)
	healthHandler := handler.NewHealthHandler(cfg.Storage)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// API subrouter with common middleware, outermost first
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.CORS(cfg.AllowedOrigins))
	api.Use(middleware.SecurityHeaders(cfg.Production))
	api.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.Limiter != nil {
		api.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
	}

	// Preflight requests must reach the CORS middleware, so every path
	// accepts OPTIONS
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Account routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Score and leaderboard routes
	api.HandleFunc("/submit-guest-score", scoreHandler.SubmitGuest).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard/{category}", leaderboardHandler.Get).Methods(http.MethodGet)

	api.Handle("/submit-score",
		authMiddleware(http.HandlerFunc(scoreHandler.Submit))).Methods(http.MethodPost)

	// Quiz data routes
	api.HandleFunc("/gamedata/villagers/{name}", gamedataHandler.VillagerDetails).Methods(http.MethodGet)
	api.HandleFunc("/gamedata/{category}", gamedataHandler.Get).Methods(http.MethodGet)

	// Health endpoints
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/health/db", healthHandler.HealthDB).Methods(http.MethodGet)

	return r
}
