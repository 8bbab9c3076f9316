package ads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/models"
)

const (
	// CacheTTL is how long a fetched ad list is served without asking the store again.
	CacheTTL = 30 * time.Minute
	// ListLimit is the number of ads the board shows.
	ListLimit = 10
)

// Lister is the read side of the ad store the cache fills from.
type Lister interface {
	ListPaidAds(ctx context.Context, limit int) ([]models.Ad, error)
}

// CacheObserver receives cache outcomes (hit, miss, stale, error). Used for metrics.
type CacheObserver interface {
	ObserveCache(outcome string)
}

// Cache outcomes reported to the observer.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeStale = "stale"
	OutcomeError = "error"
)

// cacheEntry is never mutated after it is stored; refreshes swap in a new one.
type cacheEntry struct {
	ads       []models.Ad
	fetchedAt time.Time
}

// Cache is a single-slot read-through cache of the latest paid ads. When the store fails it keeps
// serving the last list it fetched, however old.
type Cache struct {
	store    Lister
	ttl      time.Duration
	limit    int
	now      func() time.Time
	observer CacheObserver
	logger   *zap.Logger

	mu    sync.RWMutex
	entry *cacheEntry
	// gen is bumped by Invalidate; a refill started under an older gen must not be stored.
	gen uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) CacheOption { return func(c *Cache) { c.now = now } }

// WithObserver reports every lookup outcome to o.
func WithObserver(o CacheObserver) CacheOption { return func(c *Cache) { c.observer = o } }

// WithLogger sets the logger used for degraded reads.
func WithLogger(l *zap.Logger) CacheOption { return func(c *Cache) { c.logger = l } }

// NewCache creates an empty cache over store.
func NewCache(store Lister, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		store:  store,
		ttl:    ttl,
		limit:  ListLimit,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// GetAds returns the cached list while it is fresh, otherwise refills it from the store.
// On a store failure it falls back to the previous list; ErrServiceUnavailable is returned
// only when there is nothing to fall back to.
func (c *Cache) GetAds(ctx context.Context) ([]models.Ad, error) {
	now := c.now()

	c.mu.RLock()
	entry, gen := c.entry, c.gen
	c.mu.RUnlock()

	if entry != nil && now.Sub(entry.fetchedAt) < c.ttl {
		c.observe(OutcomeHit)
		return entry.ads, nil
	}

	list, err := c.store.ListPaidAds(ctx, c.limit)
	if err != nil {
		// re-read: another request may have refilled the slot meanwhile
		c.mu.RLock()
		fallback := c.entry
		c.mu.RUnlock()
		if fallback != nil {
			c.observe(OutcomeStale)
			c.logger.Warn("serving stale ads after store failure",
				zap.Error(err),
				zap.Duration("age", now.Sub(fallback.fetchedAt)),
			)
			return fallback.ads, nil
		}
		c.observe(OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	if list == nil {
		list = []models.Ad{}
	}
	c.mu.Lock()
	if c.gen == gen {
		c.entry = &cacheEntry{ads: list, fetchedAt: now}
	}
	c.mu.Unlock()

	c.observe(OutcomeMiss)
	return list, nil
}

// Invalidate empties the cache so the next GetAds goes to the store. Refills already in flight
// still answer their callers but are not stored. Safe to call repeatedly.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.gen++
	c.mu.Unlock()
}

// FetchedAt returns when the cached list was fetched, and false if the cache is empty.
func (c *Cache) FetchedAt() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return time.Time{}, false
	}
	return c.entry.fetchedAt, true
}

func (c *Cache) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveCache(outcome)
	}
}
