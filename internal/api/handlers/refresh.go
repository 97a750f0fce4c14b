package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjtech-br/catalog-proxy/internal/feed"
)

// FeedRefresher invalidates and rebuilds the cached product feed.
type FeedRefresher interface {
	Refresh(ctx context.Context) feed.Result
}

// RefreshHandler forces a cache refresh.
type RefreshHandler struct {
	feed FeedRefresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(f FeedRefresher) *RefreshHandler {
	return &RefreshHandler{feed: f}
}

// RefreshOutput is the response body for the refresh endpoint.
type RefreshOutput struct {
	Body struct {
		Success   bool      `json:"success"`
		Message   string    `json:"message"`
		Count     int       `json:"count"     doc:"Number of products fetched"`
		Timestamp time.Time `json:"timestamp"`
	}
}

// Refresh invalidates the cache and fetches a fresh feed. Unlike the
// products endpoint this is an explicit operator action, so a degraded
// fetch surfaces as HTTP 500 with the upstream reason.
func (h *RefreshHandler) Refresh(
	ctx context.Context,
	_ *struct{},
) (*RefreshOutput, error) {
	res := h.feed.Refresh(ctx)
	if res.Degraded() {
		return nil, huma.Error500InternalServerError(
			"refreshing product feed: " + res.Reason,
		)
	}

	out := &RefreshOutput{}
	out.Body.Success = true
	out.Body.Message = "product feed refreshed"
	out.Body.Count = len(res.Products)
	out.Body.Timestamp = time.Now().UTC()
	return out, nil
}

// RegisterRefreshRoutes registers the refresh endpoint with the Huma API.
func RegisterRefreshRoutes(api huma.API, h *RefreshHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-products",
		Method:      http.MethodGet,
		Path:        "/api/refresh",
		Summary:     "Force a product feed refresh",
		Description: "Invalidates the feed cache and fetches fresh data immediately.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Refresh)
}
