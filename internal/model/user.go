package model

import "time"

// UserID uniquely identifies a registered user
type UserID string

// Role determines a user's permission level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account
// PasswordHash is a bcrypt hash and is never serialized to clients
type User struct {
	ID           UserID             `json:"id"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	Role         Role               `json:"role"`
	Active       bool               `json:"active"`
	HighScores   map[Category]int64 `json:"highScores,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}
