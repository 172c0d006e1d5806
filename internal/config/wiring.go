package config

import (
	"time"

	"firefly/internal/spec"
	"firefly/pkg/pipeline"
)

// RetryPolicy builds the pipeline retry policy from a normalized config.
func RetryPolicy(cfg spec.Config) pipeline.Policy {
	return pipeline.Policy{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  time.Duration(cfg.Retry.BaseDelaySeconds) * time.Second,
	}
}

// PollConfig builds the pipeline poll bounds from a normalized config.
func PollConfig(cfg spec.Config) pipeline.PollConfig {
	return pipeline.PollConfig{
		Interval: time.Duration(cfg.Poll.IntervalSeconds) * time.Second,
		Timeout:  time.Duration(cfg.Poll.TimeoutSeconds) * time.Second,
	}
}

// ThrottleWindow returns the rate limiter window as a duration.
func ThrottleWindow(cfg spec.Config) time.Duration {
	return time.Duration(cfg.Throttle.WindowSeconds) * time.Second
}

// SASExpiry returns the staging blob read-access lifetime.
func SASExpiry(cfg spec.Config) time.Duration {
	return time.Duration(cfg.Storage.SASExpiryMinutes) * time.Minute
}
