// Package handlers implements HTTP handlers for the catalog-proxy API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjtech-br/catalog-proxy/internal/feed"
	"github.com/mjtech-br/catalog-proxy/internal/session"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// FeedSource serves the cached product feed.
type FeedSource interface {
	GetOrFetch(ctx context.Context) feed.Served
}

// ProductsHandler serves the normalized product feed.
type ProductsHandler struct {
	feed    FeedSource
	session *session.Session
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(f FeedSource, sess *session.Session) *ProductsHandler {
	return &ProductsHandler{feed: f, session: sess}
}

// CacheInfo describes how the served payload relates to the cache.
type CacheInfo struct {
	Cached bool       `json:"cached" doc:"Whether the payload came from the cache"`
	TTL    *time.Time `json:"ttl"    doc:"When the current cache entry expires"`
}

// ProductsOutput is the response body for the products endpoint.
type ProductsOutput struct {
	Body struct {
		Success   bool            `json:"success"`
		Count     int             `json:"count"               doc:"Number of products in the feed"`
		Products  []types.Product `json:"products"`
		Timestamp time.Time       `json:"timestamp"`
		Source    string          `json:"source"              doc:"cache, api or fallback" enum:"cache,api,fallback"`
		SellerID  string          `json:"seller_id,omitempty" doc:"Resolved seller id"`
		CacheInfo CacheInfo       `json:"cache_info"`
		Message   string          `json:"message,omitempty"   doc:"Set when serving degraded data"`
		Error     string          `json:"error,omitempty"     doc:"Upstream failure reason, when degraded"`
	}
}

// GetProducts returns the product feed. It always succeeds: upstream
// failures degrade to the fallback catalog with diagnostic fields set.
func (h *ProductsHandler) GetProducts(
	ctx context.Context,
	_ *struct{},
) (*ProductsOutput, error) {
	served := h.feed.GetOrFetch(ctx)

	out := &ProductsOutput{}
	out.Body.Success = true
	out.Body.Count = len(served.Products)
	out.Body.Products = served.Products
	out.Body.Timestamp = time.Now().UTC()
	out.Body.Source = served.Source
	out.Body.SellerID = h.session.SellerID()
	out.Body.CacheInfo = CacheInfo{
		Cached: served.Source == feed.SourceCache,
	}
	if !served.ExpiresAt.IsZero() {
		expires := served.ExpiresAt
		out.Body.CacheInfo.TTL = &expires
	}

	if served.Source == feed.SourceFallback {
		out.Body.Message = "serving fallback catalog due to upstream failure"
		out.Body.Error = served.Reason
	}

	return out, nil
}

// RegisterProductsRoutes registers the products endpoint with the Huma API.
func RegisterProductsRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-products",
		Method:      http.MethodGet,
		Path:        "/api/products",
		Summary:     "Get the product feed",
		Description: "Returns the seller's normalized product feed, cached for the configured TTL. Upstream failures degrade to a static fallback catalog, never an error.",
		Tags:        []string{"products"},
	}, h.GetProducts)
}
