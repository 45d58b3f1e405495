package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")

	// Score errors
	ErrScoreNotFound   = errors.New("score record not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNegativeScore   = errors.New("score must be a non-negative integer")
	ErrScoreOutOfRange = errors.New("score exceeds the maximum allowed value")
)
