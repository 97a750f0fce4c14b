package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/mjtech-br/catalog-proxy/internal/cache"
	"github.com/mjtech-br/catalog-proxy/internal/metrics"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// feedKey is the single cache slot the whole feed lives under.
const feedKey = "catalog:feed:v2"

// Served is a feed payload plus where it came from.
type Served struct {
	Products  []types.Product
	Source    string // cache, api or fallback
	Reason    string
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Service serves the product feed through the TTL cache.
type Service struct {
	store   cache.Store
	fetcher *Fetcher
	ttl     time.Duration
	log     *slog.Logger
	nowFunc func() time.Time
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithServiceNowFunc overrides the time function for testing.
func WithServiceNowFunc(f func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = f
	}
}

// NewService creates a feed Service caching fetch results for ttl.
func NewService(
	store cache.Store,
	fetcher *Fetcher,
	ttl time.Duration,
	log *slog.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		store:   store,
		fetcher: fetcher,
		ttl:     ttl,
		log:     log,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns the cached feed when fresh, fetching and caching
// otherwise. Degraded payloads are cached too: the fallback catalog is
// still the feed for the next TTL window rather than hammering a failing
// upstream. Two concurrent misses may both fetch; last write wins.
func (s *Service) GetOrFetch(ctx context.Context) Served {
	if e, ok := s.store.Get(ctx, feedKey); ok {
		metrics.CacheHitsTotal.Inc()
		return Served{
			Products:  e.Products,
			Source:    SourceCache,
			FetchedAt: e.FetchedAt,
			ExpiresAt: e.ExpiresAt,
		}
	}

	metrics.CacheMissesTotal.Inc()
	s.log.Debug("feed cache miss, fetching")

	res := s.fetcher.Fetch(ctx)
	e := s.storeResult(ctx, res)

	return Served{
		Products:  res.Products,
		Source:    res.Source,
		Reason:    res.Reason,
		FetchedAt: e.FetchedAt,
		ExpiresAt: e.ExpiresAt,
	}
}

// Refresh drops the cached entry and fetches a fresh feed unconditionally.
// The Result is returned as-is so callers can surface degradation.
func (s *Service) Refresh(ctx context.Context) Result {
	s.Invalidate(ctx)
	res := s.fetcher.Fetch(ctx)
	s.storeResult(ctx, res)
	return res
}

// Invalidate removes the cached feed, forcing the next read to miss.
func (s *Service) Invalidate(ctx context.Context) {
	s.store.Delete(ctx, feedKey)
}

// CacheStats exposes the underlying store counters for diagnostics.
func (s *Service) CacheStats() cache.Stats {
	return s.store.Stats()
}

func (s *Service) storeResult(ctx context.Context, res Result) *cache.Entry {
	e := &cache.Entry{
		Products:  res.Products,
		Source:    res.Source,
		FetchedAt: s.nowFunc(),
	}
	s.store.Set(ctx, feedKey, e, s.ttl)
	return e
}
