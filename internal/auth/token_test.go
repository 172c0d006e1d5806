package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"firefly/internal/config"
)

func testCreds() config.Credentials {
	return config.Credentials{ClientID: "client-1", ClientSecret: "secret-1"}
}

// TestTokenExchangesCredentials posts the client-credentials form and
// returns the access token.
func TestTokenExchangesCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Fatalf("unexpected grant type %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("client_id") != "client-1" || r.PostForm.Get("client_secret") != "secret-1" {
			t.Fatalf("credentials not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
	}))
	defer server.Close()

	source, err := NewTokenSource(testCreds(), server.URL, server.Client())
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}
	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("got token %q", token)
	}
}

// TestTokenCachesUntilNearExpiry reuses the cached token and refreshes
// once the expiry slack is reached.
func TestTokenCachesUntilNearExpiry(t *testing.T) {
	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte(`{"access_token":"tok-abc","expires_in":3600}`))
	}))
	defer server.Close()

	source, err := NewTokenSource(testCreds(), server.URL, server.Client())
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if _, err := source.Token(context.Background()); err != nil {
			t.Fatalf("token: %v", err)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}

	current = current.Add(time.Hour)
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("token after expiry: %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Fatalf("expected refresh after expiry, got %d fetches", got)
	}
}

// TestTokenSurfacesEndpointErrors reports non-2xx responses with the
// status code.
func TestTokenSurfacesEndpointErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	source, err := NewTokenSource(testCreds(), server.URL, server.Client())
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}
	if _, err := source.Token(context.Background()); err == nil {
		t.Fatalf("expected error for unauthorized response")
	}
}

// TestNewTokenSourceRequiresCredentials rejects empty credentials.
func TestNewTokenSourceRequiresCredentials(t *testing.T) {
	if _, err := NewTokenSource(config.Credentials{}, "", nil); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}
