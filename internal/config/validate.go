package config

import (
	"fmt"
	"strings"

	"firefly/internal/plan"
	"firefly/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}
	validateCore(cfg, collector.add)
	validateThrottle(cfg, collector.add)
	validateRetry(cfg, collector.add)
	validatePoll(cfg, collector.add)
	validateStorage(cfg, collector.add)
	validateDefaults(cfg, collector.add)
	return collector.result()
}

// validateCore checks the version and output section.
func validateCore(cfg *spec.Config, add issueAdder) {
	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		add("output.dir", "is required")
	}
}

// validateThrottle checks the rate limiter window.
func validateThrottle(cfg *spec.Config, add issueAdder) {
	if cfg.Throttle.Limit < 1 {
		add("throttle.limit", "must be >= 1")
	}
	if cfg.Throttle.WindowSeconds < 1 {
		add("throttle.window_seconds", "must be >= 1")
	}
}

// validateRetry checks the retry budget.
func validateRetry(cfg *spec.Config, add issueAdder) {
	if cfg.Retry.MaxRetries < 0 {
		add("retry.max_retries", "must be >= 0")
	}
	if cfg.Retry.BaseDelaySeconds < 1 {
		add("retry.base_delay_seconds", "must be >= 1")
	}
}

// validatePoll checks the polling bounds.
func validatePoll(cfg *spec.Config, add issueAdder) {
	if cfg.Poll.IntervalSeconds < 1 {
		add("poll.interval_seconds", "must be >= 1")
	}
	if cfg.Poll.TimeoutSeconds < cfg.Poll.IntervalSeconds {
		add("poll.timeout_seconds", "must be >= poll.interval_seconds")
	}
}

// validateStorage checks the blob storage section.
func validateStorage(cfg *spec.Config, add issueAdder) {
	if cfg.Storage.Provider != "azure" {
		add("storage.provider", fmt.Sprintf("unsupported provider %q", cfg.Storage.Provider))
	}
	if cfg.Storage.SASExpiryMinutes < 1 {
		add("storage.sas_expiry_minutes", "must be >= 1")
	}
}

// validateDefaults checks the generation defaults against known aliases.
func validateDefaults(cfg *spec.Config, add issueAdder) {
	if !plan.KnownImageModel(cfg.Defaults.ImageModel) {
		add("defaults.image_model", fmt.Sprintf("unknown model %q, expected one of %s", cfg.Defaults.ImageModel, strings.Join(plan.ImageModels(), ", ")))
	} else if !plan.KnownImageSize(cfg.Defaults.ImageModel, cfg.Defaults.ImageSize) {
		add("defaults.image_size", fmt.Sprintf("unknown size %q for model %q", cfg.Defaults.ImageSize, cfg.Defaults.ImageModel))
	}
	if !plan.KnownVideoSize(cfg.Defaults.VideoSize) {
		add("defaults.video_size", fmt.Sprintf("unknown size %q", cfg.Defaults.VideoSize))
	}
	if err := plan.CheckFilenameTemplate(cfg.Defaults.FilenameTemplate); err != nil {
		add("defaults.filename_template", err.Error())
	}
}
