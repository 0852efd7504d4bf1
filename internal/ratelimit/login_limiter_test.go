package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, max int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, window, nil), mr
}

func TestLimiterBlocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "admin@example.com"))
		limiter.RecordFailure(ctx, "admin@example.com")
	}
	assert.False(t, limiter.Allow(ctx, "admin@example.com"))
	assert.False(t, limiter.Allow(ctx, " ADMIN@example.com"), "emails are normalized")
	assert.True(t, limiter.Allow(ctx, "other@example.com"))
}

func TestLimiterWindowExpires(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newLimiter(t, 1, time.Minute)

	limiter.RecordFailure(ctx, "admin@example.com")
	require.False(t, limiter.Allow(ctx, "admin@example.com"))
	assert.Equal(t, time.Minute, mr.TTL(key("admin@example.com")))

	mr.FastForward(time.Minute)
	assert.True(t, limiter.Allow(ctx, "admin@example.com"))
}

func TestLimiterResetClearsFailures(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newLimiter(t, 2, time.Minute)

	limiter.RecordFailure(ctx, "admin@example.com")
	limiter.Reset(ctx, "admin@example.com")

	assert.False(t, mr.Exists(key("admin@example.com")))
	assert.True(t, limiter.Allow(ctx, "admin@example.com"))
}

func TestLimiterFailsOpen(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newLimiter(t, 1, time.Minute)

	limiter.RecordFailure(ctx, "admin@example.com")
	mr.Close()

	assert.True(t, limiter.Allow(ctx, "admin@example.com"))
	limiter.RecordFailure(ctx, "admin@example.com")
	limiter.Reset(ctx, "admin@example.com")
}

func TestDisabledLimiterAlwaysAllows(t *testing.T) {
	ctx := context.Background()

	var missing *LoginLimiter
	assert.True(t, missing.Allow(ctx, "admin@example.com"))

	limiter := NewLoginLimiter(nil, 5, time.Minute, nil)
	limiter.RecordFailure(ctx, "admin@example.com")
	assert.True(t, limiter.Allow(ctx, "admin@example.com"))
}

func TestFailureCounterAlwaysCarriesTTL(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newLimiter(t, 5, time.Minute)
	k := key("admin@example.com")

	limiter.RecordFailure(ctx, "admin@example.com")
	assert.Equal(t, time.Minute, mr.TTL(k))

	mr.FastForward(20 * time.Second)
	limiter.RecordFailure(ctx, "admin@example.com")
	assert.Equal(t, 40*time.Second, mr.TTL(k), "the window starts at the first failure")

	got, err := mr.Get(k)
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestFailureCounterRepairsMissingTTL(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newLimiter(t, 3, time.Minute)
	k := key("admin@example.com")

	require.NoError(t, mr.Set(k, "3"))
	require.Zero(t, mr.TTL(k))

	limiter.RecordFailure(ctx, "admin@example.com")
	assert.Equal(t, time.Minute, mr.TTL(k))

	mr.FastForward(time.Minute)
	assert.True(t, limiter.Allow(ctx, "admin@example.com"))
}
