// Package meli provides a Mercado Livre REST API client abstracted behind
// interfaces for testability.
package meli

import (
	"context"
)

// SearchRequest defines the parameters for a seller-scoped listing search.
type SearchRequest struct {
	SellerID string
	Category string
	Limit    int
	Sort     string // "recent"
}

// SearchResponse holds the results of a listing search.
type SearchResponse struct {
	Results []Item
	Total   int
}

// SearchAPI defines the interface for querying active listings.
type SearchAPI interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// UserAPI defines the interface for marketplace account lookups.
type UserAPI interface {
	Me(ctx context.Context) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
// Invalidate drops any cached token so the next call fetches a fresh one.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}
