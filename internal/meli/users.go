package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.mercadolibre.com"

// UserClient implements UserAPI against the Mercado Livre users endpoints.
type UserClient struct {
	tokens TokenProvider
	apiURL string
	client *http.Client
}

// UserOption configures the UserClient.
type UserOption func(*UserClient)

// WithUsersAPIURL overrides the default API base URL.
func WithUsersAPIURL(u string) UserOption {
	return func(c *UserClient) {
		c.apiURL = u
	}
}

// WithUsersHTTPClient overrides the default HTTP client.
func WithUsersHTTPClient(hc *http.Client) UserOption {
	return func(c *UserClient) {
		c.client = hc
	}
}

// NewUserClient creates a new users endpoint client.
func NewUserClient(tokens TokenProvider, opts ...UserOption) *UserClient {
	c := &UserClient{
		tokens: tokens,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Me returns the account the current token is authenticated as.
func (c *UserClient) Me(ctx context.Context) (*User, error) {
	return c.getUser(ctx, c.apiURL+"/users/me")
}

// Get returns the public profile of the user with the given id.
func (c *UserClient) Get(ctx context.Context, id string) (*User, error) {
	return c.getUser(ctx, c.apiURL+"/users/"+id)
}

func (c *UserClient) getUser(ctx context.Context, u string) (*User, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating user request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing user request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading user response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
