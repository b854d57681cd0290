package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"prd-builder-api/pkg/logger"
)

// ResultCache caches extracted generation results keyed by template and
// prompt. Lookups and writes are best effort: any Redis failure is
// logged and the caller proceeds as if the cache missed.
type ResultCache struct {
	client *Client
	ttl    time.Duration
}

// NewResultCache creates a generation result cache. A zero ttl disables
// it.
func NewResultCache(client *Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Enabled reports whether the cache is active.
func (c *ResultCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key derives the cache key from the template id and the full prompt.
func (c *ResultCache) Key(templateID, prompt string) string {
	sum := sha256.Sum256([]byte(templateID + "\x00" + prompt))
	return "genresult:" + templateID + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for key, or (nil, false) on miss.
func (c *ResultCache) Get(ctx context.Context, key string) (map[string]any, bool) {
	if !c.Enabled() {
		return nil, false
	}

	ctx, span := tracer.Start(ctx, "redis.ResultCache.Get")
	defer span.End()

	raw, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Warn(ctx, "result cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Warn(ctx, "result cache entry corrupt, dropping", "key", key, "error", err)
		c.client.rdb.Del(ctx, key)
		return nil, false
	}

	return result, true
}

// Set stores result under key for the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result map[string]any) {
	if !c.Enabled() {
		return
	}

	ctx, span := tracer.Start(ctx, "redis.ResultCache.Set")
	defer span.End()

	raw, err := json.Marshal(result)
	if err != nil {
		logger.Warn(ctx, "result cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "result cache write failed", "key", key, "error", err)
	}
}
