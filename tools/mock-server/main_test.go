package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestFixture(t *testing.T) *searchResponse {
	t.Helper()
	path := filepath.Join("testdata", "search_response.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &resp
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Results) == 0 {
		t.Fatal("expected results in fixture")
	}
	if fixture.Paging.Total != len(fixture.Results) {
		t.Errorf("total=%d, want %d", fixture.Paging.Total, len(fixture.Results))
	}
}

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {"app-id"},
		"client_secret": {"app-secret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["token_type"] != "Bearer" {
		t.Errorf("token_type=%v, want Bearer", resp["token_type"])
	}
	if resp["expires_in"] != float64(21600) {
		t.Errorf("expires_in=%v, want 21600", resp["expires_in"])
	}
}

func TestTokenHandler_MissingCredentials(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_client" {
		t.Errorf("error=%s, want invalid_client", resp["error"])
	}
}

func TestMeHandler(t *testing.T) {
	handler := meHandler(testLogger())
	req := httptest.NewRequest(http.MethodGet, "/users/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["id"] != float64(mockUserID) {
		t.Errorf("id=%v, want %d", resp["id"], mockUserID)
	}
}

func TestMeHandler_MissingToken(t *testing.T) {
	handler := meHandler(testLogger())
	req := httptest.NewRequest(http.MethodGet, "/users/me", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSearchHandler_SellerListings(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/sites/MLB/search?seller_id=123456789", http.NoBody)
	req.Header.Set("Authorization", "Bearer mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Paging.Total != len(fixture.Results) {
		t.Errorf("total=%d, want %d", resp.Paging.Total, len(fixture.Results))
	}
	if len(resp.Results) != len(fixture.Results) {
		t.Errorf("results=%d, want %d", len(resp.Results), len(fixture.Results))
	}
}

func TestSearchHandler_Limit(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/sites/MLB/search?seller_id=123456789&limit=3", http.NoBody)
	req.Header.Set("Authorization", "Bearer mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("results=%d, want 3", len(resp.Results))
	}
	if resp.Paging.Total != len(fixture.Results) {
		t.Errorf("total=%d, want %d", resp.Paging.Total, len(fixture.Results))
	}
}

func TestSearchHandler_UnknownSeller(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/sites/MLB/search?seller_id=999", http.NoBody)
	req.Header.Set("Authorization", "Bearer mock-token")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Paging.Total != 0 {
		t.Errorf("total=%d, want 0", resp.Paging.Total)
	}
	if resp.Results == nil {
		t.Error("expected empty array, got nil")
	}
	if len(resp.Results) != 0 {
		t.Errorf("results=%d, want 0", len(resp.Results))
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
