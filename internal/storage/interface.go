package storage

import (
	"context"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
)

// SubmitResult is the outcome of a conditional score submission
type SubmitResult struct {
	// Accepted is true if the submission became the new best score
	Accepted bool
	// Best is the best score on record after the submission
	Best int64
}

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// SetUserHighScore updates the denormalized per-category snapshot on the
	// user, only ever raising the stored value
	SetUserHighScore(ctx context.Context, id model.UserID, category model.Category, score int64) error

	// Score operations
	//
	// SubmitScore is an atomic compare-and-update: it creates the record if
	// absent, replaces it if the candidate score is strictly greater, and is
	// a no-op otherwise. Two concurrent submissions for the same identity and
	// category must never both win with a stale comparison. Records with a
	// score outside [0, model.MaxScore] are rejected with ErrScoreOutOfRange.
	SubmitScore(ctx context.Context, rec *model.ScoreRecord) (SubmitResult, error)
	GetScore(ctx context.Context, identity string, category model.Category) (*model.ScoreRecord, error)
	// TopScores returns up to limit records for the category, ordered by
	// score descending with ties broken by earliest date. A non-positive
	// limit returns the full leaderboard.
	TopScores(ctx context.Context, category model.Category, limit int) ([]*model.ScoreRecord, error)

	// Ping verifies the backing store is reachable
	Ping(ctx context.Context) error
}
