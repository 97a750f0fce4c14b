package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mjtech-br/catalog-proxy/internal/config"
)

// ConfigHandler exposes a masked configuration summary.
type ConfigHandler struct {
	cfg    *config.Config
	tokens TokenStatus
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config, tokens TokenStatus) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, tokens: tokens}
}

// ConfigOutput is the response body for the config endpoint. Only presence
// markers and non-sensitive settings; the client secret value never leaves
// the process.
type ConfigOutput struct {
	Body struct {
		Success bool `json:"success"`
		Config  struct {
			ClientID     string `json:"client_id"     doc:"configured or missing"`
			ClientSecret string `json:"client_secret" doc:"configured or missing"`
			SellerID     string `json:"seller_id"`
			Site         string `json:"site"`
			Category     string `json:"category,omitempty"`
			TokenStatus  string `json:"token_status"  doc:"active or inactive"`
			CacheBackend string `json:"cache_backend"`
			CacheTTL     string `json:"cache_ttl"`
		} `json:"config"`
	}
}

func presence(set bool) string {
	if set {
		return "configured"
	}
	return "missing"
}

// GetConfig returns the masked configuration summary.
func (h *ConfigHandler) GetConfig(
	_ context.Context,
	_ *struct{},
) (*ConfigOutput, error) {
	out := &ConfigOutput{}
	out.Body.Success = true

	c := &out.Body.Config
	c.ClientID = presence(h.cfg.Meli.ClientID != "")
	c.ClientSecret = presence(h.cfg.Meli.ClientSecret != "")
	c.SellerID = h.cfg.Meli.SellerID
	if c.SellerID == "" {
		c.SellerID = "auto-discovered"
	}
	c.Site = h.cfg.Meli.Site
	c.Category = h.cfg.Meli.Category

	c.TokenStatus = "inactive"
	if active, _ := h.tokens.Status(); active {
		c.TokenStatus = "active"
	}

	c.CacheBackend = h.cfg.Cache.Backend
	c.CacheTTL = h.cfg.Cache.TTL.String()

	return out, nil
}

// RegisterConfigRoutes registers the config endpoint with the Huma API.
func RegisterConfigRoutes(api huma.API, h *ConfigHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        "/api/config",
		Summary:     "Masked configuration summary",
		Description: "Shows which settings are configured without exposing secret values.",
		Tags:        []string{"ops"},
	}, h.GetConfig)
}
