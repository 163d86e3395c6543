package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kacchi/model"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles failed logins per email.
type LoginLimiter interface {
	// Check returns model.ErrTooManyAttempts once the failure budget is spent.
	Check(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// NewRedisClient parses url and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

type RedisLoginLimiter struct {
	Client      *redis.Client
	MaxAttempts int64
	Window      time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{Client: client, MaxAttempts: maxAttempts, Window: window}
}

func loginKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

func (l *RedisLoginLimiter) Check(ctx context.Context, email string) error {
	n, err := l.Client.Get(ctx, loginKey(email)).Int64()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read login attempts: %w", err)
	}
	if n >= l.MaxAttempts {
		return model.ErrTooManyAttempts
	}
	return nil
}

// RecordFailure counts a failure. The window starts at the first failure.
func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := loginKey(email)

	pipe := l.Client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.Client.Del(ctx, loginKey(email)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

// NoopLoginLimiter never throttles. It is used when REDIS_URL is unset.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Check(context.Context, string) error         { return nil }
func (NoopLoginLimiter) RecordFailure(context.Context, string) error { return nil }
func (NoopLoginLimiter) Reset(context.Context, string) error         { return nil }
