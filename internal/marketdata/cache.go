package marketdata

import (
	"sync"
	"time"

	"github.com/agbru/ddmcalc/internal/dividends"
)

// DefaultTTL is how long a fetched history stays fresh.
const DefaultTTL = time.Hour

type cacheEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Cache is a TTL cache of dividend histories and company names keyed by
// normalized ticker. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	history map[string]cacheEntry[dividends.Series]
	names   map[string]cacheEntry[string]
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache returns an empty cache. A non-positive ttl selects DefaultTTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		history: make(map[string]cacheEntry[dividends.Series]),
		names:   make(map[string]cacheEntry[string]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration { return c.ttl }

func (c *Cache) fresh(fetchedAt time.Time) bool {
	return c.now().Sub(fetchedAt) <= c.ttl
}

// Get returns the cached history of ticker if it is still fresh. Stale
// entries are evicted.
func (c *Cache) Get(ticker string) (dividends.Series, bool) {
	key := NormalizeTicker(ticker)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.history[key]
	if !ok {
		return dividends.Series{}, false
	}
	if !c.fresh(e.fetchedAt) {
		delete(c.history, key)
		return dividends.Series{}, false
	}
	return e.value, true
}

// Put stores the history of ticker, stamped with the current time.
func (c *Cache) Put(ticker string, s dividends.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history[NormalizeTicker(ticker)] = cacheEntry[dividends.Series]{value: s, fetchedAt: c.now()}
}

// GetName returns the cached company name of ticker if it is still fresh.
func (c *Cache) GetName(ticker string) (string, bool) {
	key := NormalizeTicker(ticker)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.names[key]
	if !ok {
		return "", false
	}
	if !c.fresh(e.fetchedAt) {
		delete(c.names, key)
		return "", false
	}
	return e.value, true
}

// PutName stores the company name of ticker.
func (c *Cache) PutName(ticker, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[NormalizeTicker(ticker)] = cacheEntry[string]{value: name, fetchedAt: c.now()}
}

// Purge drops every expired entry and returns how many histories were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.history {
		if !c.fresh(e.fetchedAt) {
			delete(c.history, k)
			removed++
		}
	}
	for k, e := range c.names {
		if !c.fresh(e.fetchedAt) {
			delete(c.names, k)
		}
	}
	return removed
}

// Len returns the number of cached histories, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}
