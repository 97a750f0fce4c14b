package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjtech-br/catalog-proxy/internal/cache"
	"github.com/mjtech-br/catalog-proxy/internal/config"
	"github.com/mjtech-br/catalog-proxy/internal/session"
)

// TokenStatus reports whether an access token is held and when it expires.
// Implemented by the OAuth token provider.
type TokenStatus interface {
	Status() (bool, time.Time)
}

// CacheStatser exposes cache activity counters.
type CacheStatser interface {
	CacheStats() cache.Stats
}

// HealthHandler provides the diagnostic health endpoint.
type HealthHandler struct {
	cfg     *config.Config
	session *session.Session
	tokens  TokenStatus
	stats   CacheStatser
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(
	cfg *config.Config,
	sess *session.Session,
	tokens TokenStatus,
	stats CacheStatser,
	version string,
) *HealthHandler {
	return &HealthHandler{
		cfg:     cfg,
		session: sess,
		tokens:  tokens,
		stats:   stats,
		version: version,
	}
}

// HealthOutput is the response body for the health endpoint. Credentials
// appear only as presence booleans, never as values.
type HealthOutput struct {
	Body struct {
		Success     bool      `json:"success"`
		Service     string    `json:"service"`
		Status      string    `json:"status"`
		Version     string    `json:"version"`
		Timestamp   time.Time `json:"timestamp"`
		Diagnostics struct {
			Marketplace struct {
				ClientIDConfigured     bool       `json:"client_id_configured"`
				ClientSecretConfigured bool       `json:"client_secret_configured"`
				UserID                 string     `json:"user_id,omitempty"`
				SellerID               string     `json:"seller_id,omitempty"`
				SellerConfirmed        bool       `json:"seller_confirmed"`
				HasToken               bool       `json:"has_token"`
				TokenExpires           *time.Time `json:"token_expires,omitempty"`
			} `json:"marketplace"`
			Cache struct {
				Backend string      `json:"backend"`
				TTL     string      `json:"ttl"`
				Stats   cache.Stats `json:"stats"`
			} `json:"cache"`
			System struct {
				GoVersion  string `json:"go_version"`
				Platform   string `json:"platform"`
				Goroutines int    `json:"goroutines"`
				HeapBytes  uint64 `json:"heap_bytes"`
			} `json:"system"`
		} `json:"diagnostics"`
	}
}

// GetHealth returns a diagnostic snapshot of the service.
func (h *HealthHandler) GetHealth(
	_ context.Context,
	_ *struct{},
) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Success = true
	out.Body.Service = "catalog-proxy"
	out.Body.Status = "online"
	out.Body.Version = h.version
	out.Body.Timestamp = time.Now().UTC()

	id := h.session.Snapshot()
	ml := &out.Body.Diagnostics.Marketplace
	ml.ClientIDConfigured = h.cfg.Meli.ClientID != ""
	ml.ClientSecretConfigured = h.cfg.Meli.ClientSecret != ""
	ml.UserID = id.UserID
	ml.SellerID = id.SellerID
	ml.SellerConfirmed = id.Confirmed

	if active, expiry := h.tokens.Status(); active {
		ml.HasToken = true
		ml.TokenExpires = &expiry
	}

	ca := &out.Body.Diagnostics.Cache
	ca.Backend = h.cfg.Cache.Backend
	ca.TTL = h.cfg.Cache.TTL.String()
	ca.Stats = h.stats.CacheStats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	sys := &out.Body.Diagnostics.System
	sys.GoVersion = runtime.Version()
	sys.Platform = runtime.GOOS + "/" + runtime.GOARCH
	sys.Goroutines = runtime.NumGoroutine()
	sys.HeapBytes = mem.HeapInuse

	return out, nil
}

// RegisterHealthRoutes registers the health endpoint with the Huma API.
func RegisterHealthRoutes(api huma.API, h *HealthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Service health and diagnostics",
		Description: "Returns credential/session presence, cache statistics and process info. Secret values are never included.",
		Tags:        []string{"ops"},
	}, h.GetHealth)
}
