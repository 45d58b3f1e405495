package redis

import (
	"fmt"
	"strings"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
)

// Key prefix for all quiz-related data
const keyPrefix = "nookquiz"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index.
// Lowercased so lookups are case-insensitive, same as the memory backend.
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// highScoresKey returns the Redis key for a user's per-category snapshot hash
func highScoresKey(id model.UserID) string {
	return fmt.Sprintf("%s:highscores:%s", keyPrefix, id)
}

// scoreKey returns the Redis key for a ScoreRecord
func scoreKey(category model.Category, identity string) string {
	return fmt.Sprintf("%s:score:%s:%s", keyPrefix, category, identity)
}

// leaderboardKey returns the Redis key for the ranked ZSET of a category
func leaderboardKey(category model.Category) string {
	return fmt.Sprintf("%s:lb:%s", keyPrefix, category)
}
