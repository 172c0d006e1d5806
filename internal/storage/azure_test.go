package storage

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"firefly/internal/config"
	"firefly/pkg/pipeline"
)

func testUploader(t *testing.T) *Uploader {
	t.Helper()
	creds := config.StorageCredentials{
		Account:   "testaccount",
		Key:       base64.StdEncoding.EncodeToString([]byte("storage-key")),
		Container: "staging",
	}
	uploader, err := NewUploader(creds, time.Hour)
	if err != nil {
		t.Fatalf("new uploader: %v", err)
	}
	uploader.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return uploader
}

// TestSignedURLShape produces a read-only HTTPS URL scoped to the blob
// with the configured expiry.
func TestSignedURLShape(t *testing.T) {
	uploader := testUploader(t)
	signed, err := uploader.signedURL("style.png")
	if err != nil {
		t.Fatalf("signed url: %v", err)
	}
	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	if parsed.Scheme != "https" || parsed.Host != "testaccount.blob.core.windows.net" {
		t.Fatalf("unexpected host %q", signed)
	}
	if parsed.Path != "/staging/style.png" {
		t.Fatalf("unexpected path %q", parsed.Path)
	}
	query := parsed.Query()
	if query.Get("sig") == "" {
		t.Fatalf("expected signature parameter in %q", signed)
	}
	if query.Get("sp") != "r" {
		t.Fatalf("expected read-only permissions, got %q", query.Get("sp"))
	}
	if !strings.HasPrefix(query.Get("se"), "2025-06-15T11:00") {
		t.Fatalf("expected one hour expiry, got %q", query.Get("se"))
	}
}

// TestNewUploaderRejectsBadKey surfaces invalid shared keys.
func TestNewUploaderRejectsBadKey(t *testing.T) {
	creds := config.StorageCredentials{Account: "a", Key: "not-base64!!", Container: "c"}
	if _, err := NewUploader(creds, 0); err == nil {
		t.Fatalf("expected error for invalid key")
	}
}

// TestClassifyUploadErrorRetryClass maps service status codes onto the
// retry classification used by the batch pipeline.
func TestClassifyUploadErrorRetryClass(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		transient bool
	}{
		{"throttled", 429, true},
		{"request timeout", 408, true},
		{"server fault", 503, true},
		{"forbidden", 403, false},
		{"not found", 404, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := classifyUploadError("input.mp4", &azcore.ResponseError{StatusCode: tc.status})
			if got := pipeline.Transient(classified); got != tc.transient {
				t.Fatalf("status %d: transient = %v, want %v", tc.status, got, tc.transient)
			}
		})
	}
}

// TestClassifyUploadErrorPassesThroughLocalErrors leaves non-service
// failures unclassified so they are not retried.
func TestClassifyUploadErrorPassesThroughLocalErrors(t *testing.T) {
	cause := errors.New("disk full")
	classified := classifyUploadError("input.mp4", cause)
	if !errors.Is(classified, cause) {
		t.Fatalf("expected wrapped cause, got %v", classified)
	}
	if pipeline.Transient(classified) {
		t.Fatalf("local errors must not be transient")
	}
}
