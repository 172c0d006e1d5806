package config

import (
	"fmt"
	"os"
)

const defaultConfig = `version: 1

output:
  dir: "./firefly-output"

# Requests per rolling window against the generation API.
throttle:
  limit: 5
  window_seconds: 60

retry:
  max_retries: 3
  base_delay_seconds: 2

poll:
  interval_seconds: 2
  timeout_seconds: 300

# Credentials are read from the environment, never from this file:
#   FIREFLY_SERVICES_CLIENT_ID / FIREFLY_SERVICES_CLIENT_SECRET
#   AZURE_STORAGE_ACCOUNT / AZURE_STORAGE_KEY / AZURE_STORAGE_CONTAINER
storage:
  provider: azure
  sas_expiry_minutes: 60

defaults:
  image_model: image4
  image_size: square
  video_size: "1080p"
  locale: en-US
  filename_template: "{prompt}_{dimensions}_{seed}_{n}"
`

// Scaffold writes a starter config file. It refuses to overwrite an
// existing file.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
