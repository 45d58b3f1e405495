package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, window time.Duration, max int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLimiter(client, window, max), mini
}

func TestRedisLimiterAllowsUpToMax(t *testing.T) {
	limiter, _ := newRedisLimiter(t, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newRedisLimiter(t, time.Minute, 1)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)

	ok, _ = limiter.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)
}

func TestRedisLimiterWindowExpires(t *testing.T) {
	limiter, mini := newRedisLimiter(t, time.Minute, 1)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "1.2.3.4")
	require.True(t, ok)

	ok, _ = limiter.Allow(ctx, "1.2.3.4")
	require.False(t, ok)

	mini.FastForward(61 * time.Second)

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "a fresh window starts after expiry")
}

func TestRedisLimiterErrorsWhenBackendDown(t *testing.T) {
	limiter, mini := newRedisLimiter(t, time.Minute, 1)
	mini.Close()

	_, err := limiter.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}
