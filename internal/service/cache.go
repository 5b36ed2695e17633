package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "splitledger_result_cache_lookups_total",
		Help: "Ledger result cache lookups, by outcome.",
	},
	[]string{"result"},
)

// resultCache memoizes ledger query results. Keys include the store revision,
// so any write makes older entries unreachable; they age out with the TTL.
// Concurrent misses on the same key share one computation.
type resultCache struct {
	items *cache.Cache
	group singleflight.Group
}

// newResultCache returns nil when ttl is 0, which disables caching.
func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		return nil
	}
	return &resultCache{items: cache.New(ttl, 2*ttl)}
}

// cacheKey identifies one query against one store revision.
func cacheKey(procedure string, revision int64, req any) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return fmt.Sprintf("%s@%d:%s", procedure, revision, b), nil
}

// cached returns the value stored under key or computes, stores and returns it.
// Errors are never cached. Cached values are shared and must not be mutated.
func cached[T any](c *resultCache, key string, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}
	if v, ok := c.items.Get(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return v.(T), nil
	}
	cacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.items.SetDefault(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
