package spec

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseConfig decodes a single-document YAML config. Unknown fields are
// rejected so typos surface instead of silently defaulting, and a second
// YAML document is an error.
func ParseConfig(data []byte) (Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	// A second decode must hit EOF; anything else means extra documents.
	switch err := decoder.Decode(&struct{}{}); err {
	case io.EOF:
		return cfg, nil
	case nil:
		return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
	default:
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
}
