package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/clock"
)

// sweepEvery is how many Allow calls pass between full sweeps of idle callers
const sweepEvery = 256

// MemoryLimiter is a sliding-window limiter suitable for a single process
type MemoryLimiter struct {
	clock  clock.Clock
	window time.Duration
	max    int

	mu      sync.Mutex
	callers map[string][]time.Time
	ops     int
}

// NewMemoryLimiter creates a limiter allowing max requests per window per key
func NewMemoryLimiter(clock clock.Clock, window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		clock:   clock,
		window:  window,
		max:     max,
		callers: make(map[string][]time.Time),
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

// Allow records the request and reports whether it fits in the window
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Sweep every so often so callers that went quiet do not pile up
	l.ops++
	if l.ops >= sweepEvery {
		l.ops = 0
		l.cleanupLocked(cutoff)
	}

	stamps := l.callers[key]

	// Drop entries that have slid out of the window
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.callers[key] = kept
		return false, nil
	}

	l.callers[key] = append(kept, now)
	return true, nil
}

// Cleanup drops keys with no requests in the current window. Allow runs it
// periodically on its own; this is exposed for explicit pruning.
func (l *MemoryLimiter) Cleanup() {
	cutoff := l.clock.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanupLocked(cutoff)
}

func (l *MemoryLimiter) cleanupLocked(cutoff time.Time) {
	for key, stamps := range l.callers {
		live := false
		for _, t := range stamps {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.callers, key)
		}
	}
}
