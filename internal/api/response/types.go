package response

import (
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
)

// User represents an account in API responses
type User struct {
	ID         string           `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	HighScores map[string]int64 `json:"highScores,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	var highScores map[string]int64
	if len(u.HighScores) > 0 {
		highScores = make(map[string]int64, len(u.HighScores))
		for cat, best := range u.HighScores {
			highScores[string(cat)] = best
		}
	}
	return User{
		ID:         string(u.ID),
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		HighScores: highScores,
	}
}

// AuthResponse is the response for signup and login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// NewAuthResponse builds an AuthResponse from a user and token
func NewAuthResponse(u *model.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		User:  UserFromModel(u),
	}
}

// ScoreEntry is one row of a leaderboard
type ScoreEntry struct {
	Username string    `json:"username"`
	Score    int64     `json:"score"`
	Date     time.Time `json:"date"`
	IsGuest  bool      `json:"isGuest,omitempty"`
}

// ScoreEntryFromModel converts a model.ScoreRecord to a leaderboard row.
// Device identifiers stay server-side.
func ScoreEntryFromModel(rec *model.ScoreRecord) ScoreEntry {
	return ScoreEntry{
		Username: rec.Username,
		Score:    rec.Score,
		Date:     rec.Date,
		IsGuest:  rec.IsGuest,
	}
}

// LeaderboardResponse is the response for a leaderboard query
type LeaderboardResponse struct {
	Category string       `json:"category"`
	Scores   []ScoreEntry `json:"scores"`
}

// NewLeaderboardResponse builds a LeaderboardResponse from records
func NewLeaderboardResponse(category model.Category, records []*model.ScoreRecord) LeaderboardResponse {
	scores := make([]ScoreEntry, len(records))
	for i, rec := range records {
		scores[i] = ScoreEntryFromModel(rec)
	}
	return LeaderboardResponse{
		Category: string(category),
		Scores:   scores,
	}
}

// SubmitResponse is the response for a score submission
type SubmitResponse struct {
	Accepted bool  `json:"accepted"`
	NewBest  int64 `json:"newBest"`
}

// SubmitResponseFromResult converts a score.Result
func SubmitResponseFromResult(res *score.Result) SubmitResponse {
	return SubmitResponse{
		Accepted: res.Accepted,
		NewBest:  res.NewBest,
	}
}

// HealthResponse is the response for health endpoints
type HealthResponse struct {
	Status string `json:"status"`
}
