package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjtech-br/catalog-proxy/internal/api/handlers"
	"github.com/mjtech-br/catalog-proxy/internal/cache"
	"github.com/mjtech-br/catalog-proxy/internal/config"
	"github.com/mjtech-br/catalog-proxy/internal/session"
)

// fakeTokenStatus reports scripted token state.
type fakeTokenStatus struct {
	active bool
	expiry time.Time
}

func (f *fakeTokenStatus) Status() (bool, time.Time) {
	return f.active, f.expiry
}

// fakeStats serves fixed cache counters.
type fakeStats struct {
	stats cache.Stats
}

func (f *fakeStats) CacheStats() cache.Stats {
	return f.stats
}

func testConfig() *config.Config {
	return &config.Config{
		Meli: config.MeliConfig{
			ClientID:     "app-id",
			ClientSecret: "s3cret-value",
			Site:         "MLB",
		},
		Cache: config.CacheConfig{
			Backend: "memory",
			TTL:     30 * time.Minute,
		},
	}
}

func TestGetHealth(t *testing.T) {
	t.Parallel()

	sess := session.New()
	sess.SetIdentity("123456789", "123456789", true)

	expiry := time.Now().Add(6 * time.Hour).UTC()
	h := handlers.NewHealthHandler(
		testConfig(),
		sess,
		&fakeTokenStatus{active: true, expiry: expiry},
		&fakeStats{stats: cache.Stats{Hits: 7, Misses: 2, Sets: 2, Keys: 1}},
		"1.2.3",
	)

	_, api := humatest.New(t)
	handlers.RegisterHealthRoutes(api, h)

	resp := api.Get("/api/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success     bool   `json:"success"`
		Service     string `json:"service"`
		Status      string `json:"status"`
		Version     string `json:"version"`
		Diagnostics struct {
			Marketplace struct {
				ClientIDConfigured     bool   `json:"client_id_configured"`
				ClientSecretConfigured bool   `json:"client_secret_configured"`
				UserID                 string `json:"user_id"`
				SellerID               string `json:"seller_id"`
				SellerConfirmed        bool   `json:"seller_confirmed"`
				HasToken               bool   `json:"has_token"`
			} `json:"marketplace"`
			Cache struct {
				Backend string      `json:"backend"`
				TTL     string      `json:"ttl"`
				Stats   cache.Stats `json:"stats"`
			} `json:"cache"`
			System struct {
				GoVersion  string `json:"go_version"`
				Goroutines int    `json:"goroutines"`
			} `json:"system"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, "catalog-proxy", body.Service)
	assert.Equal(t, "online", body.Status)
	assert.Equal(t, "1.2.3", body.Version)

	ml := body.Diagnostics.Marketplace
	assert.True(t, ml.ClientIDConfigured)
	assert.True(t, ml.ClientSecretConfigured)
	assert.Equal(t, "123456789", ml.SellerID)
	assert.True(t, ml.SellerConfirmed)
	assert.True(t, ml.HasToken)

	assert.Equal(t, "memory", body.Diagnostics.Cache.Backend)
	assert.Equal(t, "30m0s", body.Diagnostics.Cache.TTL)
	assert.Equal(t, int64(7), body.Diagnostics.Cache.Stats.Hits)

	assert.NotEmpty(t, body.Diagnostics.System.GoVersion)
	assert.Positive(t, body.Diagnostics.System.Goroutines)
}

func TestGetHealth_NeverLeaksSecrets(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(
		testConfig(),
		session.New(),
		&fakeTokenStatus{},
		&fakeStats{},
		"dev",
	)

	_, api := humatest.New(t)
	handlers.RegisterHealthRoutes(api, h)

	resp := api.Get("/api/health")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.NotContains(t, body, "s3cret-value")
	assert.NotContains(t, body, "app-id")
}

func TestGetHealth_UnresolvedSession(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(
		testConfig(),
		session.New(),
		&fakeTokenStatus{},
		&fakeStats{},
		"dev",
	)

	_, api := humatest.New(t)
	handlers.RegisterHealthRoutes(api, h)

	resp := api.Get("/api/health")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"seller_confirmed":false`)
	assert.Contains(t, body, `"has_token":false`)
	assert.NotContains(t, body, `"token_expires"`)
}
