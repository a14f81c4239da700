package marketdata

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/agbru/ddmcalc/internal/dividends"
	"github.com/agbru/ddmcalc/internal/metrics"
)

// CachedProvider serves histories from a Cache and falls through to the
// wrapped Provider on a miss. Concurrent misses for one ticker share a
// single upstream request, bounded by the upstream client timeout rather
// than by any one caller. Every successful fetch purges expired entries.
// Failures are neither cached nor retried.
type CachedProvider struct {
	next    Provider
	cache   *Cache
	metrics *metrics.Metrics
	group   singleflight.Group
}

// NewCachedProvider wraps next. A nil cache gets a DefaultTTL cache; m may
// be nil.
func NewCachedProvider(next Provider, cache *Cache, m *metrics.Metrics) *CachedProvider {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	return &CachedProvider{next: next, cache: cache, metrics: m}
}

// Cache returns the underlying cache.
func (p *CachedProvider) Cache() *Cache { return p.cache }

// FetchDividendHistory implements Provider.
func (p *CachedProvider) FetchDividendHistory(ctx context.Context, ticker string) (dividends.Series, error) {
	key := NormalizeTicker(ticker)
	if s, ok := p.cache.Get(key); ok {
		p.metrics.ObserveCache(true)
		return s, nil
	}
	p.metrics.ObserveCache(false)

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		s, err := p.next.FetchDividendHistory(shared, key)
		if err != nil {
			return dividends.Series{}, err
		}
		p.cache.Put(key, s)
		p.cache.Purge()
		return s, nil
	})
	select {
	case <-ctx.Done():
		return dividends.Series{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return dividends.Series{}, res.Err
		}
		return res.Val.(dividends.Series), nil
	}
}

// FetchCompanyName implements Provider. Only real names are cached; a
// fallback to the ticker is retried on the next call.
func (p *CachedProvider) FetchCompanyName(ctx context.Context, ticker string) string {
	key := NormalizeTicker(ticker)
	if name, ok := p.cache.GetName(key); ok {
		return name
	}
	name := p.next.FetchCompanyName(ctx, key)
	if name != "" && name != key {
		p.cache.PutName(key, name)
	}
	return name
}
