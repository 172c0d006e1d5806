// Package auth exchanges client credentials for an access token against
// the Adobe IMS token endpoint.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"firefly/internal/config"
)

// defaultTokenURL is the IMS client-credentials token endpoint.
const defaultTokenURL = "https://ims-na1.adobelogin.com/ims/token/v3"

// tokenScope lists the API scopes requested with every token.
const tokenScope = "openid,AdobeID,session,additional_info,read_organizations,firefly_api,ff_apis"

// expirySlack refreshes tokens slightly before they expire.
const expirySlack = 60 * time.Second

// HTTPDoer abstracts HTTP clients used by API callers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource exchanges client credentials for bearer tokens and caches
// them until shortly before expiry. It is safe for concurrent use.
type TokenSource struct {
	creds    config.Credentials
	tokenURL string
	client   HTTPDoer
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewTokenSource constructs a token source with explicit settings. An
// empty tokenURL selects the production endpoint.
func NewTokenSource(creds config.Credentials, tokenURL string, client HTTPDoer) (*TokenSource, error) {
	if strings.TrimSpace(creds.ClientID) == "" || strings.TrimSpace(creds.ClientSecret) == "" {
		return nil, fmt.Errorf("client credentials are required")
	}
	if strings.TrimSpace(tokenURL) == "" {
		tokenURL = defaultTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenSource{
		creds:    creds,
		tokenURL: tokenURL,
		client:   client,
		now:      time.Now,
	}, nil
}

// ClientID returns the credential's client id, sent as the x-api-key
// header on API requests.
func (s *TokenSource) ClientID() string {
	return s.creds.ClientID
}

// Token returns a valid access token, fetching a fresh one when the
// cached token is missing or near expiry.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && s.now().Add(expirySlack).Before(s.expires) {
		return s.token, nil
	}
	token, expiresIn, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expires = s.now().Add(expiresIn)
	return token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// fetch performs the client-credentials exchange.
func (s *TokenSource) fetch(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.creds.ClientID},
		"client_secret": {s.creds.ClientSecret},
		"scope":         {tokenScope},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned no access token")
	}
	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}
	return parsed.AccessToken, expiresIn, nil
}
