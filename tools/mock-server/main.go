// Package main implements a mock Mercado Livre API server for local
// development. It serves canned responses from a JSON fixture to simulate
// the OAuth token, users and site search endpoints without real
// credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

const mockUserID = 123456789

type searchResponse struct {
	Results []json.RawMessage `json:"results"`
	Paging  paging            `json:"paging"`
}

type paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/search_response.json", "path to search response fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fixture.Results))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", tokenHandler(logger))
	mux.HandleFunc("GET /users/me", meHandler(logger))
	mux.HandleFunc("GET /users/{id}", userHandler(logger))
	mux.HandleFunc("GET /sites/{site}/search", searchHandler(logger, fixture))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Mercado Livre server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*searchResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate the client credentials form fields are present (don't
		// verify values).
		if err := r.ParseForm(); err != nil ||
			r.PostForm.Get("client_id") == "" ||
			r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing client credentials")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "invalid_client",
				"message": "client authentication failed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "APP_USR-mock-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   21600,
			"token_type":   "Bearer",
		})
		logger.Info("issued mock token")
	}
}

func meHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bearerPresent(r) {
			writeUnauthorized(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"id":       mockUserID,
			"nickname": "MJTECHSTORE",
			"email":    "dev@example.com",
		})
		logger.Info("served /users/me")
	}
}

func userHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bearerPresent(r) {
			writeUnauthorized(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"id":       mockUserID,
			"nickname": "MJTECHSTORE",
			"seller_reputation": map[string]any{
				"power_seller_status": "gold",
				"level_id":            "5_green",
			},
		})
		logger.Info("served user profile", "id", r.PathValue("id"))
	}
}

func searchHandler(logger *slog.Logger, fixture *searchResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bearerPresent(r) {
			writeUnauthorized(w)
			return
		}

		sellerID := r.URL.Query().Get("seller_id")
		limit := len(fixture.Results)
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		results := fixture.Results
		// An unknown seller has no listings; the real API behaves the same.
		if sellerID != "" && sellerID != strconv.Itoa(mockUserID) {
			results = nil
		}
		total := len(results)
		if limit < len(results) {
			results = results[:limit]
		}
		if results == nil {
			results = []json.RawMessage{}
		}

		resp := searchResponse{
			Results: results,
			Paging:  paging{Total: total, Limit: limit},
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("search",
			"site", r.PathValue("site"),
			"seller_id", sellerID,
			"returned", len(results),
			"total", total,
		)
	}
}

func bearerPresent(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return len(auth) > len("Bearer ") && auth[:7] == "Bearer "
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{
		"message": "invalid access token",
		"error":   "not_found",
	})
}
