package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/pkg/metrics"
)

const (
	featuredKey        = "jobs:featured"
	featuredGenKey     = "jobs:featured:gen"
	defaultFeaturedTTL = 5 * time.Minute
)

// setIfGeneration writes the list only while the generation still matches
// the one the caller read. A missing generation counts as "0".
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// invalidateFeatured bumps the generation and drops the list atomically.
var invalidateFeatured = redis.NewScript(`
redis.call("INCR", KEYS[2])
redis.call("DEL", KEYS[1])
return 1
`)

// FeaturedJobCache keeps the rendered featured-jobs list under a single key,
// guarded by a generation counter that every job write bumps. The TTL bounds
// staleness if an invalidation is lost.
type FeaturedJobCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeaturedJobCache wraps client. A non-positive ttl falls back to five
// minutes.
func NewFeaturedJobCache(client *redis.Client, ttl time.Duration) *FeaturedJobCache {
	if ttl <= 0 {
		ttl = defaultFeaturedTTL
	}
	return &FeaturedJobCache{client: client, ttl: ttl}
}

// Get returns the cached list and the generation it was read under. ok is
// false on a miss.
func (c *FeaturedJobCache) Get(ctx context.Context) ([]ports.JobView, string, bool, error) {
	vals, err := c.client.MGet(ctx, featuredKey, featuredGenKey).Result()
	if err != nil {
		return nil, "", false, fmt.Errorf("featured cache get: %w", err)
	}
	gen := "0"
	if g, ok := vals[1].(string); ok {
		gen = g
	}

	raw, ok := vals[0].(string)
	if !ok {
		metrics.FeaturedCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, false, nil
	}

	var views []ports.JobView
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		// A payload we cannot read is as good as absent.
		metrics.FeaturedCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, false, nil
	}
	metrics.FeaturedCacheTotal.WithLabelValues("hit").Inc()
	return views, gen, true, nil
}

// Set stores views unless the cache was invalidated after gen was read.
func (c *FeaturedJobCache) Set(ctx context.Context, gen string, views []ports.JobView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("featured cache encode: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{featuredKey, featuredGenKey}, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("featured cache set: %w", err)
	}
	if stored == 0 {
		metrics.FeaturedCacheTotal.WithLabelValues("stale_write").Inc()
	}
	return nil
}

func (c *FeaturedJobCache) Invalidate(ctx context.Context) error {
	if err := invalidateFeatured.Run(ctx, c.client, []string{featuredKey, featuredGenKey}).Err(); err != nil {
		return fmt.Errorf("featured cache invalidate: %w", err)
	}
	return nil
}
