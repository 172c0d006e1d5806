// Package firefly is the HTTP client for the Firefly Services generation
// APIs: image and video synthesis, speech generation, dubbing, and
// transcription. All endpoints are asynchronous job APIs that return a
// job id and a status URL to poll.
package firefly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"firefly/internal/auth"
)

// Default API base URLs.
const (
	defaultImageBaseURL = "https://firefly-api.adobe.io"
	defaultVideoBaseURL = "https://firefly-beta.adobe.io"
	defaultAVBaseURL    = "https://audio-video-api.adobe.io"
)

// Client calls the generation APIs with bearer tokens from a shared
// token source.
type Client struct {
	tokens *auth.TokenSource
	client auth.HTTPDoer
	debug  io.Writer

	imageBaseURL string
	videoBaseURL string
	avBaseURL    string
}

// ClientOptions overrides the API base URLs, mainly for tests. A non-nil
// Debug writer receives request and response traces; auth headers are
// never written to it.
type ClientOptions struct {
	HTTPClient   auth.HTTPDoer
	Debug        io.Writer
	ImageBaseURL string
	VideoBaseURL string
	AVBaseURL    string
}

// NewClient constructs a client over a token source.
func NewClient(tokens *auth.TokenSource, opts ClientOptions) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	c := &Client{
		tokens:       tokens,
		client:       client,
		debug:        opts.Debug,
		imageBaseURL: strings.TrimRight(opts.ImageBaseURL, "/"),
		videoBaseURL: strings.TrimRight(opts.VideoBaseURL, "/"),
		avBaseURL:    strings.TrimRight(opts.AVBaseURL, "/"),
	}
	if c.imageBaseURL == "" {
		c.imageBaseURL = defaultImageBaseURL
	}
	if c.videoBaseURL == "" {
		c.videoBaseURL = defaultVideoBaseURL
	}
	if c.avBaseURL == "" {
		c.avBaseURL = defaultAVBaseURL
	}
	return c
}

// postJSON sends an authenticated POST and decodes the JSON response
// into out.
func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.debugf("> POST %s\n%s", url, payload)
	return c.send(req, out)
}

// getJSON sends an authenticated GET and decodes the JSON response into
// out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.debugf("> GET %s", url)
	return c.send(req, out)
}

// debugf writes a trace line when a debug writer is configured.
func (c *Client) debugf(format string, args ...any) {
	if c.debug == nil {
		return
	}
	fmt.Fprintf(c.debug, format+"\n", args...)
}

// send attaches auth headers, performs the request, and decodes the
// response. Non-2xx statuses become *APIError.
func (c *Client) send(req *http.Request, out any) error {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.tokens.ClientID())

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.debugf("< %d %s\n%s", resp.StatusCode, req.URL, body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
