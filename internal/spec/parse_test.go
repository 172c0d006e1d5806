package spec

import "testing"

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
output:
  dir: "./firefly-output"
throttle:
  limit: 5
  window_seconds: 60
retry:
  max_retries: 3
  base_delay_seconds: 2
poll:
  interval_seconds: 2
  timeout_seconds: 300
storage:
  provider: azure
  sas_expiry_minutes: 60
defaults:
  image_model: image4
  image_size: square
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Throttle.Limit != 5 || cfg.Throttle.WindowSeconds != 60 {
		t.Fatalf("throttle not parsed: %+v", cfg.Throttle)
	}
	if cfg.Defaults.ImageModel != "image4" {
		t.Fatalf("defaults not parsed: %+v", cfg.Defaults)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
output:
  dir: "./out"
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}
