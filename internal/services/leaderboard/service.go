package leaderboard

import (
	"context"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// Service serves ranked score listings per category
type Service struct {
	storage storage.Storage

	defaultLimit int
	maxLimit     int
}

// Config holds configuration for the leaderboard service
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns default leaderboard configuration
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// New creates a new leaderboard service
func New(storage storage.Storage, cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultConfig().MaxLimit
	}
	return &Service{
		storage:      storage,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}
}

// TopScores returns the best scores for a category, ordered by score
// descending with ties broken by earliest submission. A limit of zero or
// below means the default; limits above the maximum are clamped.
func (s *Service) TopScores(ctx context.Context, category model.Category, limit int) ([]*model.ScoreRecord, error) {
	if !category.Valid() {
		return nil, model.ErrInvalidCategory
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	return s.storage.TopScores(ctx, category, limit)
}
