package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter defines the interface for rate limiting operations
type Limiter interface {
	// Allow checks if a request should be allowed based on rate limits.
	// Returns true if allowed, false if the limit is exceeded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Reset clears the current window's counter for a key
	Reset(ctx context.Context, key string, window time.Duration) error
}

// TokenBucketLimiter implements rate limiting with Redis counters.
// Buckets are keyed by caller identity plus the current time window.
type TokenBucketLimiter struct {
	redisClient *redis.Client
	logger      *zap.Logger
	fallback    bool // If true, allow requests when Redis is unavailable (fail-open)
}

// NewTokenBucketLimiter creates a new token bucket rate limiter.
// With fallback enabled, Redis failures allow the request through.
func NewTokenBucketLimiter(redisClient *redis.Client, logger *zap.Logger, fallback bool) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		redisClient: redisClient,
		logger:      logger,
		fallback:    fallback,
	}
}

// Allow checks if a single request should be allowed.
// It increments the window counter atomically via a Redis pipeline and
// compares the result against the limit.
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	bucketKey := l.getBucketKey(key, now, window)

	pipe := l.redisClient.Pipeline()
	incrCmd := pipe.Incr(ctx, bucketKey)
	pipe.Expire(ctx, bucketKey, window+time.Second) // buffer past the window edge

	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("rate limit check failed",
			zap.String("key", bucketKey),
			zap.Error(err),
		)

		if l.fallback {
			l.logger.Warn("rate limit check failed, allowing request (fail-open)",
				zap.String("key", key),
			)
			return true, nil
		}
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	allowed := incrCmd.Val() <= int64(limit)
	if !allowed {
		l.logger.Warn("rate limit exceeded",
			zap.String("key", key),
			zap.Int64("count", incrCmd.Val()),
			zap.Int("limit", limit),
			zap.Duration("window", window),
		)
	}
	return allowed, nil
}

// Reset clears the current window's counter for a key
func (l *TokenBucketLimiter) Reset(ctx context.Context, key string, window time.Duration) error {
	bucketKey := l.getBucketKey(key, time.Now(), window)
	if err := l.redisClient.Del(ctx, bucketKey).Err(); err != nil {
		return fmt.Errorf("rate limit reset failed: %w", err)
	}
	return nil
}

// getBucketKey builds the Redis key for the window containing t
func (l *TokenBucketLimiter) getBucketKey(key string, t time.Time, window time.Duration) string {
	bucket := t.UnixNano() / int64(window)
	return fmt.Sprintf("ratelimit:%s:%d", key, bucket)
}
