package spec

type Config struct {
	Version  int            `yaml:"version"`
	Output   OutputConfig   `yaml:"output"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Retry    RetryConfig    `yaml:"retry"`
	Poll     PollConfig     `yaml:"poll"`
	Storage  StorageConfig  `yaml:"storage"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ThrottleConfig struct {
	Limit         int `yaml:"limit"`
	WindowSeconds int `yaml:"window_seconds"`
}

type RetryConfig struct {
	MaxRetries       int `yaml:"max_retries"`
	BaseDelaySeconds int `yaml:"base_delay_seconds"`
}

type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	TimeoutSeconds  int `yaml:"timeout_seconds"`
}

type StorageConfig struct {
	Provider         string `yaml:"provider"`
	Container        string `yaml:"container"`
	SASExpiryMinutes int    `yaml:"sas_expiry_minutes"`
}

type DefaultsConfig struct {
	ImageModel       string `yaml:"image_model"`
	ImageSize        string `yaml:"image_size"`
	VideoSize        string `yaml:"video_size"`
	Locale           string `yaml:"locale"`
	VoiceID          string `yaml:"voice_id"`
	FilenameTemplate string `yaml:"filename_template"`
}
