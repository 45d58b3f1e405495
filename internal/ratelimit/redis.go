package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript counts a request and sets the window expiry on the first hit,
// atomically.
// KEYS[1] = counter key, ARGV[1] = window in seconds
var incrScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter is a fixed-window limiter shared across processes
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

// NewRedisLimiter creates a limiter allowing max requests per window per key
func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
	}
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow counts the request and reports whether it fits in the current window
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrScript.Run(ctx, l.client,
		[]string{fmt.Sprintf("nookquiz:ratelimit:%s", key)},
		int(l.window.Seconds()),
	).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(l.max), nil
}
