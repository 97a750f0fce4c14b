package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjtech-br/catalog-proxy/internal/api/handlers"
	"github.com/mjtech-br/catalog-proxy/internal/feed"
	"github.com/mjtech-br/catalog-proxy/internal/session"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// fakeFeed serves a fixed payload.
type fakeFeed struct {
	served feed.Served
	calls  int
}

func (f *fakeFeed) GetOrFetch(_ context.Context) feed.Served {
	f.calls++
	return f.served
}

func liveProducts() []types.Product {
	return []types.Product{
		{
			ID:        "MLB1",
			Title:     "Fone Bluetooth",
			Price:     "R$ 149,90",
			Condition: "Novo",
			Position:  1,
		},
		{
			ID:        "MLB2",
			Title:     "Smartwatch",
			Price:     "R$ 299,00",
			Condition: "Novo",
			Position:  2,
		},
	}
}

func TestGetProducts_LiveFeed(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(30 * time.Minute).UTC()
	f := &fakeFeed{served: feed.Served{
		Products:  liveProducts(),
		Source:    feed.SourceAPI,
		FetchedAt: time.Now().UTC(),
		ExpiresAt: expires,
	}}
	h := handlers.NewProductsHandler(f, session.NewWithSeller("12345"))

	_, api := humatest.New(t)
	handlers.RegisterProductsRoutes(api, h)

	resp := api.Get("/api/products")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success   bool            `json:"success"`
		Count     int             `json:"count"`
		Products  []types.Product `json:"products"`
		Source    string          `json:"source"`
		SellerID  string          `json:"seller_id"`
		CacheInfo struct {
			Cached bool       `json:"cached"`
			TTL    *time.Time `json:"ttl"`
		} `json:"cache_info"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Products, 2)
	assert.Equal(t, "MLB1", body.Products[0].ID)
	assert.Equal(t, "api", body.Source)
	assert.Equal(t, "12345", body.SellerID)
	assert.False(t, body.CacheInfo.Cached)
	require.NotNil(t, body.CacheInfo.TTL)
	assert.Equal(t, expires.Unix(), body.CacheInfo.TTL.Unix())
	assert.Empty(t, body.Message)
	assert.Empty(t, body.Error)
}

func TestGetProducts_CachedFeed(t *testing.T) {
	t.Parallel()

	f := &fakeFeed{served: feed.Served{
		Products:  liveProducts(),
		Source:    feed.SourceCache,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}}
	h := handlers.NewProductsHandler(f, session.NewWithSeller("12345"))

	_, api := humatest.New(t)
	handlers.RegisterProductsRoutes(api, h)

	resp := api.Get("/api/products")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"source":"cache"`)
	assert.Contains(t, body, `"cached":true`)
}

func TestGetProducts_DegradedStillOK(t *testing.T) {
	t.Parallel()

	f := &fakeFeed{served: feed.Served{
		Products: []types.Product{
			{ID: "fallback-1", Position: 1},
			{ID: "fallback-2", Position: 2},
			{ID: "fallback-3", Position: 3},
			{ID: "fallback-4", Position: 4},
		},
		Source: feed.SourceFallback,
		Reason: "mercado livre API error (status 500): boom",
	}}
	h := handlers.NewProductsHandler(f, session.New())

	_, api := humatest.New(t)
	handlers.RegisterProductsRoutes(api, h)

	resp := api.Get("/api/products")

	// Degradation is invisible at the HTTP level; the grid must render.
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success  bool            `json:"success"`
		Count    int             `json:"count"`
		Products []types.Product `json:"products"`
		Source   string          `json:"source"`
		Message  string          `json:"message"`
		Error    string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, "fallback", body.Source)
	assert.Equal(t, "serving fallback catalog due to upstream failure", body.Message)
	assert.Contains(t, body.Error, "status 500")
}
