package meli

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Mercado Livre API. The upstream
// status and body are kept for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercado livre API error (status %d): %s", e.Status, e.Body)
}

// IsAuthError reports whether err carries an authentication-class rejection
// (HTTP 401 or 403) anywhere in its chain.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized ||
		apiErr.Status == http.StatusForbidden
}
