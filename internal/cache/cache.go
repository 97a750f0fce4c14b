// Package cache provides the TTL store behind the product feed, with
// in-memory and Redis backends.
package cache

import (
	"context"
	"time"

	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// Entry is one cached feed payload. ExpiresAt is stamped by the store on
// Set.
type Entry struct {
	Products  []types.Product `json:"products"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Stats is a point-in-time snapshot of store activity since startup.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	Keys   int   `json:"keys"`
}

// Store is a TTL key-value store for feed entries. Implementations favor
// availability: storage failures are logged, never propagated.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, e *Entry, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Stats() Stats
}
