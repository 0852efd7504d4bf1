package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

const keyPrefix = "login:failures:"

// recordFailure increments the counter and attaches the window TTL in one
// atomic step. A counter found without a TTL gets one, so a key can never
// outlive its window.
var recordFailure = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// LoginLimiter counts failed logins per email in Redis. Once an email reaches
// maxAttempts failures inside the window further attempts are refused until
// the window expires. Redis outages never block logins.
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client or non-positive limits
// disable throttling.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

func (l *LoginLimiter) enabled() bool {
	return l != nil && l.client != nil && l.maxAttempts > 0 && l.window > 0
}

// Allow reports whether another login attempt may be made for email.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if !l.enabled() {
		return true
	}
	count, err := l.client.Get(ctx, key(email)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("login throttle unavailable", zap.Error(err))
		}
		return true
	}
	return count < l.maxAttempts
}

// RecordFailure counts a failed attempt. The window starts at the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	if err := recordFailure.Run(ctx, l.client, []string{key(email)}, l.window.Milliseconds()).Err(); err != nil {
		l.logger.Warn("login throttle unavailable", zap.Error(err))
	}
}

// Reset clears the failure count after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	if err := l.client.Del(ctx, key(email)).Err(); err != nil {
		l.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}

func key(email string) string {
	return keyPrefix + domain.NormalizeEmail(email)
}
