package meli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mjtech-br/catalog-proxy/internal/metrics"
)

const defaultSite = "MLB"

// SearchClient implements SearchAPI using the site-scoped search endpoint.
type SearchClient struct {
	tokens      TokenProvider
	apiURL      string
	site        string
	client      *http.Client
	rateLimiter *RateLimiter
}

// SearchOption configures the SearchClient.
type SearchOption func(*SearchClient)

// WithSearchAPIURL overrides the default API base URL.
func WithSearchAPIURL(u string) SearchOption {
	return func(c *SearchClient) {
		c.apiURL = u
	}
}

// WithSite overrides the default marketplace site.
func WithSite(s string) SearchOption {
	return func(c *SearchClient) {
		c.site = s
	}
}

// WithSearchHTTPClient overrides the default HTTP client.
func WithSearchHTTPClient(hc *http.Client) SearchOption {
	return func(c *SearchClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every Search() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) SearchOption {
	return func(c *SearchClient) {
		c.rateLimiter = r
	}
}

// NewSearchClient creates a new site search client.
func NewSearchClient(tokens TokenProvider, opts ...SearchOption) *SearchClient {
	c := &SearchClient{
		tokens: tokens,
		apiURL: defaultAPIURL,
		site:   defaultSite,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchAPIResponse struct {
	Results []Item `json:"results"`
	Paging  struct {
		Total int `json:"total"`
	} `json:"paging"`
}

// Search queries the seller's active listings.
func (c *SearchClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.MeliDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.MeliDailyUsage.Set(float64(c.rateLimiter.Used()))
	}
	metrics.MeliAPICallsTotal.Inc()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u := c.buildSearchURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var apiResp searchAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Results: apiResp.Results,
		Total:   apiResp.Paging.Total,
	}, nil
}

func (c *SearchClient) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("seller_id", req.SellerID)
	params.Set("status", "active")

	limit := req.Limit
	if limit <= 0 {
		limit = 12
	}
	params.Set("limit", strconv.Itoa(limit))

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	if req.Category != "" {
		params.Set("category", req.Category)
	}

	return c.apiURL + "/sites/" + c.site + "/search?" + params.Encode()
}
