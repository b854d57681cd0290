package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResultCacheDisabledByZeroTTL(t *testing.T) {
	// A zero TTL keeps the cache off even with a live client wired in,
	// so generation stays stateless unless caching is opted into.
	cache := NewResultCache(&Client{}, 0)
	assert.False(t, cache.Enabled())

	result, ok := cache.Get(context.Background(), "genresult:x:deadbeef")
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestResultCacheDisabledWithoutClient(t *testing.T) {
	assert.False(t, NewResultCache(nil, 10*time.Minute).Enabled())

	var cache *ResultCache
	assert.False(t, cache.Enabled())
}

func TestResultCacheKeyIsStable(t *testing.T) {
	cache := NewResultCache(&Client{}, time.Minute)

	k1 := cache.Key("generate-mvp-features", "prompt one")
	k2 := cache.Key("generate-mvp-features", "prompt one")
	k3 := cache.Key("generate-mvp-features", "prompt two")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "genresult:generate-mvp-features:")
}
