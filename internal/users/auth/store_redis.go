// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAttemptLimiter implements [AttemptLimiter] with expiring Redis counters.
//
// It fails open: when Redis is unreachable every attempt is allowed and the
// error is logged.
type RedisAttemptLimiter struct {
	client      redis.UniversalClient
	maxAttempts int64
	window      time.Duration
	logger      *slog.Logger
}

// NewAttemptLimiter constructs a [RedisAttemptLimiter].
func NewAttemptLimiter(client redis.UniversalClient, maxAttempts int64, window time.Duration, logger *slog.Logger) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

func attemptKey(key string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(key))
}

// Allow implements [AttemptLimiter].
func (limiter *RedisAttemptLimiter) Allow(ctx context.Context, key string) bool {
	count, err := limiter.client.Get(ctx, attemptKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		limiter.logger.WarnContext(ctx, "login_attempt_read_failed", slog.Any("error", err))
		return true
	}
	return count < limiter.maxAttempts
}

// Fail implements [AttemptLimiter]. The window starts at the first failure.
func (limiter *RedisAttemptLimiter) Fail(ctx context.Context, key string) {
	redisKey := attemptKey(key)

	pipe := limiter.client.TxPipeline()
	pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, limiter.window)
	if _, err := pipe.Exec(ctx); err != nil {
		limiter.logger.WarnContext(ctx, "login_attempt_write_failed", slog.Any("error", err))
	}
}

// Reset implements [AttemptLimiter].
func (limiter *RedisAttemptLimiter) Reset(ctx context.Context, key string) {
	if err := limiter.client.Del(ctx, attemptKey(key)).Err(); err != nil {
		limiter.logger.WarnContext(ctx, "login_attempt_reset_failed", slog.Any("error", err))
	}
}
