package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"prd-builder-api/internal/config"
	"prd-builder-api/internal/interfaces/http/dto"
	apperrors "prd-builder-api/pkg/errors"
)

// RateLimiter checks whether a key may make another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit throttles per caller and path. A limiter failure lets the
// request through; throttling must not take the API down with Redis.
func RateLimit(cfg config.RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limit := cfg.RequestsPerSecond
	if limit <= 0 {
		limit = 100
	}

	return func(c *gin.Context) {
		caller := c.GetString(UserIDKey)
		if caller == "" {
			caller = c.ClientIP()
		}

		key := "ratelimit:" + caller + ":" + c.Request.URL.Path

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, time.Second)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			dto.AbortError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

// NewRedisRateLimiter builds the sliding-window limiter on Redis.
func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	if client == nil {
		return nil
	}
	return &redisRateLimiter{client: client}
}

type redisRateLimiter struct {
	client *redis.Client
}

// Allow implements a sliding window over a sorted set keyed by request
// timestamps.
func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - window.Nanoseconds()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() <= int64(limit), nil
}
