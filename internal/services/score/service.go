package score

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/clock"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// Errors
var (
	ErrBadGuestToken   = errors.New("invalid game token")
	ErrMissingDeviceID = errors.New("a device identifier is required")
	ErrInvalidUsername = errors.New("username must be 3-20 characters")
)

// Result describes the outcome of a submission
type Result struct {
	Accepted bool  `json:"accepted"`
	NewBest  int64 `json:"newBest"`
}

// Service handles score submission for both accounts and guests
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	guestToken string
}

// Config holds configuration for the score service
type Config struct {
	// GuestToken is the shared token that guest clients must present
	GuestToken string
}

// New creates a new score service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	return &Service{
		storage:    storage,
		clock:      clock,
		logger:     logger,
		guestToken: cfg.GuestToken,
	}
}

// Submit records a score for an authenticated user. The stored score for a
// (user, category) pair never decreases.
func (s *Service) Submit(ctx context.Context, user *model.User, category model.Category, points int64) (*Result, error) {
	if !category.Valid() {
		return nil, model.ErrInvalidCategory
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}

	rec := &model.ScoreRecord{
		Username: user.Username,
		Category: category,
		Score:    points,
		Date:     s.clock.Now(),
	}

	res, err := s.storage.SubmitScore(ctx, rec)
	if err != nil {
		return nil, err
	}

	if res.Accepted {
		// The snapshot is a convenience copy; the leaderboard record is
		// authoritative, so a failure here is logged rather than returned
		if err := s.storage.SetUserHighScore(ctx, user.ID, category, points); err != nil {
			s.logger.Warn("failed to update high score snapshot",
				"user_id", user.ID,
				"category", category,
				"error", err)
		}
	}

	return &Result{Accepted: res.Accepted, NewBest: res.Best}, nil
}

// SubmitGuest records a score for an unauthenticated player. Guests are
// keyed by device so renaming does not reset their best score.
func (s *Service) SubmitGuest(ctx context.Context, token, deviceID, username string, category model.Category, points int64) (*Result, error) {
	if s.guestToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(s.guestToken)) != 1 {
		return nil, ErrBadGuestToken
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMissingDeviceID
	}

	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 20 {
		return nil, ErrInvalidUsername
	}

	if !category.Valid() {
		return nil, model.ErrInvalidCategory
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}

	rec := &model.ScoreRecord{
		Username: username,
		Category: category,
		Score:    points,
		Date:     s.clock.Now(),
		IsGuest:  true,
		DeviceID: deviceID,
	}

	res, err := s.storage.SubmitScore(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &Result{Accepted: res.Accepted, NewBest: res.Best}, nil
}

func validatePoints(points int64) error {
	if points < 0 {
		return model.ErrNegativeScore
	}
	if points > model.MaxScore {
		return model.ErrScoreOutOfRange
	}
	return nil
}
