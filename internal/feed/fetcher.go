// Package feed builds the normalized product feed and serves it through a
// TTL cache.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mjtech-br/catalog-proxy/internal/catalog"
	"github.com/mjtech-br/catalog-proxy/internal/meli"
	"github.com/mjtech-br/catalog-proxy/internal/metrics"
	"github.com/mjtech-br/catalog-proxy/internal/session"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// Source values for feed payloads.
const (
	SourceAPI      = "api"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// maxAttempts bounds the live fetch: one initial attempt plus one retry
// after an authentication-class failure.
const maxAttempts = 2

// Result is the outcome of one fetch: live products, or the fallback
// catalog plus the reason the live path was unusable. Callers distinguish
// the two through Degraded instead of inspecting strings.
type Result struct {
	Products []types.Product
	Source   string
	Reason   string
}

// Degraded reports whether the result carries fallback data.
func (r Result) Degraded() bool {
	return r.Source == SourceFallback
}

// Options are the search parameters applied to every fetch.
type Options struct {
	Category string
	Limit    int
	Sort     string
}

// Fetcher orchestrates token acquisition, seller resolution and the
// seller-scoped search, converting every failure into fallback data.
type Fetcher struct {
	tokens   meli.TokenProvider
	resolver *session.Resolver
	session  *session.Session
	search   meli.SearchAPI
	opts     Options
	log      *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(
	tokens meli.TokenProvider,
	resolver *session.Resolver,
	sess *session.Session,
	search meli.SearchAPI,
	opts Options,
	log *slog.Logger,
) *Fetcher {
	return &Fetcher{
		tokens:   tokens,
		resolver: resolver,
		session:  sess,
		search:   search,
		opts:     opts,
		log:      log,
	}
}

// Fetch builds the feed. It never fails: every error path resolves to the
// fallback catalog. On an authentication rejection the cached token is
// dropped and the whole live path retried exactly once.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := time.Now()
	defer func() {
		metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		products, err := f.fetchLive(ctx)
		if err == nil {
			if len(products) == 0 {
				f.log.Warn("search returned no listings, serving fallback catalog")
				return f.fallback("no active listings found")
			}
			return Result{Products: products, Source: SourceAPI}
		}

		lastErr = err
		if meli.IsAuthError(err) && attempt < maxAttempts {
			f.log.Warn("authentication rejected, refreshing token and retrying",
				"attempt", attempt,
				"error", err,
			)
			f.tokens.Invalidate()
			continue
		}
		break
	}

	f.log.Error("live fetch failed, serving fallback catalog", "error", lastErr)
	return f.fallback(lastErr.Error())
}

func (f *Fetcher) fetchLive(ctx context.Context) ([]types.Product, error) {
	sellerID := f.session.SellerID()
	if sellerID == "" {
		id, err := f.resolver.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving seller: %w", err)
		}
		sellerID = id.SellerID
	}

	resp, err := f.search.Search(ctx, meli.SearchRequest{
		SellerID: sellerID,
		Category: f.opts.Category,
		Limit:    f.opts.Limit,
		Sort:     f.opts.Sort,
	})
	if err != nil {
		return nil, fmt.Errorf("searching listings: %w", err)
	}

	return catalog.ToProducts(resp.Results), nil
}

func (f *Fetcher) fallback(reason string) Result {
	metrics.FallbackServedTotal.Inc()
	return Result{
		Products: catalog.FallbackProducts(),
		Source:   SourceFallback,
		Reason:   reason,
	}
}
