package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"pv-intake/internal/domain"
)

// SummaryLoader fetches the aggregate snapshot from the backend.
type SummaryLoader interface {
	Summary(ctx context.Context) (domain.SummaryStats, error)
}

// SummaryCache caches the summary snapshot with TTL so screens that render
// it on every repaint do not hammer the backend. Concurrent misses collapse
// into one fetch.
type SummaryCache struct {
	loader SummaryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    domain.SummaryStats
	hasCached bool
	expiresAt time.Time
}

func NewSummaryCache(loader SummaryLoader, ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *SummaryCache) Summary(ctx context.Context) (domain.SummaryStats, error) {
	now := c.clock()

	c.mu.RLock()
	if c.hasCached && c.expiresAt.After(now) {
		stats := c.cached
		c.mu.RUnlock()
		return stats, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("summary", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.hasCached && c.expiresAt.After(now) {
			stats := c.cached
			c.mu.RUnlock()
			return stats, nil
		}
		c.mu.RUnlock()

		stats, err := c.loader.Summary(ctx)
		if err != nil {
			return domain.SummaryStats{}, err
		}

		c.mu.Lock()
		c.cached = stats
		c.hasCached = true
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return stats, nil
	})
	if err != nil {
		return domain.SummaryStats{}, err
	}
	return result.(domain.SummaryStats), nil
}

// Invalidate drops the cached snapshot so the next read refetches. Called
// after operations known to change the aggregates (completed sessions,
// reconciliation runs).
func (c *SummaryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasCached = false
}

func (c *SummaryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
