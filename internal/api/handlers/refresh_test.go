package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjtech-br/catalog-proxy/internal/api/handlers"
	"github.com/mjtech-br/catalog-proxy/internal/feed"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// fakeRefresher returns a fixed refresh result.
type fakeRefresher struct {
	result feed.Result
	calls  int
}

func (f *fakeRefresher) Refresh(_ context.Context) feed.Result {
	f.calls++
	return f.result
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()

	f := &fakeRefresher{result: feed.Result{
		Products: liveProducts(),
		Source:   feed.SourceAPI,
	}}
	h := handlers.NewRefreshHandler(f)

	_, api := humatest.New(t)
	handlers.RegisterRefreshRoutes(api, h)

	resp := api.Get("/api/refresh")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, f.calls)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, "product feed refreshed", body.Message)
	assert.Equal(t, 2, body.Count)
}

func TestRefresh_DegradedSurfacesError(t *testing.T) {
	t.Parallel()

	f := &fakeRefresher{result: feed.Result{
		Products: []types.Product{{ID: "fallback-1"}},
		Source:   feed.SourceFallback,
		Reason:   "mercado livre API error (status 503): unavailable",
	}}
	h := handlers.NewRefreshHandler(f)

	_, api := humatest.New(t)
	handlers.RegisterRefreshRoutes(api, h)

	resp := api.Get("/api/refresh")

	// An explicit operator refresh must not hide the failure.
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "status 503")
}
