package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTooManyAttempts is returned while a username is locked out.
var ErrTooManyAttempts = errors.New("journal: too many login attempts")

// LoginLimiter counts failed logins per username.
type LoginLimiter interface {
	Check(ctx context.Context, username string) error
	Failed(ctx context.Context, username string) error
	Succeeded(ctx context.Context, username string) error
}

// NoopLimiter never locks anyone out.
type NoopLimiter struct{}

func (NoopLimiter) Check(context.Context, string) error     { return nil }
func (NoopLimiter) Failed(context.Context, string) error    { return nil }
func (NoopLimiter) Succeeded(context.Context, string) error { return nil }

// RedisLimiter keeps failure counters in redis; a counter expires window
// after the first failure it records.
type RedisLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewRedisLimiter returns a limiter allowing maxFailures failures per window.
func NewRedisLimiter(client *redis.Client, maxFailures int, window time.Duration) *RedisLimiter {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RedisLimiter{client: client, maxFailures: int64(maxFailures), window: window}
}

func (l *RedisLimiter) key(username string) string {
	return fmt.Sprintf("journal:login:failures:%s", username)
}

func (l *RedisLimiter) Check(ctx context.Context, username string) error {
	count, err := l.client.Get(ctx, l.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if count >= l.maxFailures {
		return ErrTooManyAttempts
	}
	return nil
}

func (l *RedisLimiter) Failed(ctx context.Context, username string) error {
	key := l.key(username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return l.client.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *RedisLimiter) Succeeded(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.key(username)).Err()
}
