package model

import "time"

// Category is one of the fixed quiz topics
type Category string

const (
	CategoryFish      Category = "fish"
	CategoryBugs      Category = "bugs"
	CategorySea       Category = "sea"
	CategoryVillagers Category = "villagers"
)

// Categories lists every valid quiz category
var Categories = []Category{CategoryFish, CategoryBugs, CategorySea, CategoryVillagers}

// MaxScore is the largest score any submission may carry. A quiz round cannot
// produce anything close to it, and the bound keeps the packed leaderboard
// rank in Redis exact.
const MaxScore int64 = 1_000_000

// Valid reports whether c is one of the fixed quiz categories
func (c Category) Valid() bool {
	switch c {
	case CategoryFish, CategoryBugs, CategorySea, CategoryVillagers:
		return true
	}
	return false
}

// ScoreRecord is a stored best-score entry for one identity (registered
// user or guest device) in one quiz category
type ScoreRecord struct {
	Username string    `json:"username"`
	Category Category  `json:"category"`
	Score    int64     `json:"score"`
	Date     time.Time `json:"date"`
	IsGuest  bool      `json:"isGuest"`
	DeviceID string    `json:"deviceId,omitempty"`
}

// Identity returns the uniqueness key for the record within its category.
// Guests are keyed by device ID so they never collide with a registered
// user sharing the same display name.
func (r *ScoreRecord) Identity() string {
	if r.IsGuest {
		return "g:" + r.DeviceID
	}
	return "u:" + r.Username
}
