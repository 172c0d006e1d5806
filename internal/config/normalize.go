package config

import "firefly/internal/spec"

// Defaults applied by Normalize when the config leaves a field unset.
const (
	DefaultThrottleLimit         = 5
	DefaultThrottleWindowSeconds = 60
	DefaultMaxRetries            = 3
	DefaultBaseDelaySeconds      = 2
	DefaultPollIntervalSeconds   = 2
	DefaultPollTimeoutSeconds    = 300
	DefaultSASExpiryMinutes      = 60
	DefaultImageModel            = "image4"
	DefaultImageSize             = "square"
	DefaultVideoSize             = "1080p"
	DefaultLocale                = "en-US"
	DefaultFilenameTemplate      = "{prompt}_{dimensions}_{seed}_{n}"
)

// Normalize fills unset fields with their defaults. Zero values mean
// "unset"; explicit negatives are left for Validate to reject.
func Normalize(cfg *spec.Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Throttle.Limit == 0 {
		cfg.Throttle.Limit = DefaultThrottleLimit
	}
	if cfg.Throttle.WindowSeconds == 0 {
		cfg.Throttle.WindowSeconds = DefaultThrottleWindowSeconds
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = DefaultMaxRetries
	}
	if cfg.Retry.BaseDelaySeconds == 0 {
		cfg.Retry.BaseDelaySeconds = DefaultBaseDelaySeconds
	}
	if cfg.Poll.IntervalSeconds == 0 {
		cfg.Poll.IntervalSeconds = DefaultPollIntervalSeconds
	}
	if cfg.Poll.TimeoutSeconds == 0 {
		cfg.Poll.TimeoutSeconds = DefaultPollTimeoutSeconds
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "azure"
	}
	if cfg.Storage.SASExpiryMinutes == 0 {
		cfg.Storage.SASExpiryMinutes = DefaultSASExpiryMinutes
	}
	if cfg.Defaults.ImageModel == "" {
		cfg.Defaults.ImageModel = DefaultImageModel
	}
	if cfg.Defaults.ImageSize == "" {
		cfg.Defaults.ImageSize = DefaultImageSize
	}
	if cfg.Defaults.VideoSize == "" {
		cfg.Defaults.VideoSize = DefaultVideoSize
	}
	if cfg.Defaults.Locale == "" {
		cfg.Defaults.Locale = DefaultLocale
	}
	if cfg.Defaults.FilenameTemplate == "" {
		cfg.Defaults.FilenameTemplate = DefaultFilenameTemplate
	}
}
