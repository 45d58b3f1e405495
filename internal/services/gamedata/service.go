package gamedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/clock"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
)

// Errors
var (
	ErrUpstreamUnavailable = errors.New("game data source is unavailable")
)

// Item is one quiz subject: a fish, bug, sea creature or villager
type Item struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	IconURL  string `json:"icon_url,omitempty"`
}

// wireItem matches the upstream API's field names
type wireItem struct {
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	RenderURL string `json:"render_url"`
	IconURL   string `json:"icon_url"`
}

// Service fetches and caches category data from the wiki API. Entries are
// kept past their TTL so a flaky upstream degrades to stale data instead of
// errors.
type Service struct {
	client  *http.Client
	clock   clock.Clock
	logger  *slog.Logger
	baseURL string
	apiKey  string
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[model.Category]cacheEntry
}

type cacheEntry struct {
	items     []Item
	fetchedAt time.Time
}

// Config holds configuration for the game data service
type Config struct {
	// BaseURL is the wiki API root (e.g. https://api.nookipedia.com)
	BaseURL string
	// APIKey is sent as the X-API-KEY header
	APIKey string
	// CacheTTL controls how long fetched category data stays fresh
	CacheTTL time.Duration
}

// DefaultConfig returns default game data configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://api.nookipedia.com",
		CacheTTL: time.Hour,
	}
}

// New creates a new game data service
func New(client *http.Client, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	return &Service{
		client:  client,
		clock:   clock,
		logger:  logger,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		ttl:     cfg.CacheTTL,
		cache:   make(map[model.Category]cacheEntry),
	}
}

// Items returns the quiz subjects for a category, from cache when fresh
func (s *Service) Items(ctx context.Context, category model.Category) ([]Item, error) {
	if !category.Valid() {
		return nil, model.ErrInvalidCategory
	}

	now := s.clock.Now()

	s.mu.RLock()
	entry, ok := s.cache[category]
	s.mu.RUnlock()

	if ok && now.Sub(entry.fetchedAt) < s.ttl {
		return entry.items, nil
	}

	items, err := s.fetch(ctx, category)
	if err != nil {
		if ok {
			s.logger.Warn("serving stale game data after fetch failure",
				"category", category,
				"age", now.Sub(entry.fetchedAt).String(),
				"error", err)
			return entry.items, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[category] = cacheEntry{items: items, fetchedAt: now}
	s.mu.Unlock()

	return items, nil
}

func (s *Service) fetch(ctx context.Context, category model.Category) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpointFor(category), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-KEY", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var raw []wireItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	items := make([]Item, 0, len(raw))
	for _, w := range raw {
		image := w.ImageURL
		if image == "" {
			image = w.RenderURL
		}
		items = append(items, Item{
			Name:     w.Name,
			ImageURL: image,
			IconURL:  w.IconURL,
		})
	}
	return items, nil
}

func endpointFor(category model.Category) string {
	switch category {
	case model.CategoryVillagers:
		return "/villagers"
	default:
		return "/nh/" + string(category)
	}
}
