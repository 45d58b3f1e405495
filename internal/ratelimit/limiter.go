package ratelimit

import "context"

// Limiter decides whether a keyed caller may proceed
type Limiter interface {
	// Allow reports whether the caller identified by key is within its
	// budget for the current window
	Allow(ctx context.Context, key string) (bool, error)
}
