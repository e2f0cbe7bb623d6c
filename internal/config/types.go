package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .pterodash.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Panel   PanelConfig   `yaml:"panel" mapstructure:"panel"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
}

// PanelConfig holds the connection settings for the Pterodactyl panel.
type PanelConfig struct {
	// URL is the panel base URL (e.g. https://panel.example.com).
	// A trailing slash is tolerated and stripped where it matters.
	URL string `yaml:"url" mapstructure:"url"`

	// APIKey is the client API key (ptlc_...). Overridable via the
	// PTERODASH_API_KEY environment variable so keys can stay out of
	// config files checked into dotfile repos.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Timeout applies to individual REST requests.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MonitorConfig controls the live resource dashboard.
type MonitorConfig struct {
	// History is the number of samples kept per metric channel.
	History int `yaml:"history" mapstructure:"history"`

	// Interval is the cadence at which the daemon pushes stats frames.
	// Network deltas are divided by it to produce per-second rate
	// readouts, so it must match the daemon (wings pushes about once a
	// second).
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// UploadConfig controls the one-shot console log upload service.
type UploadConfig struct {
	// URL is the log paste service endpoint.
	URL string `yaml:"url" mapstructure:"url"`
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Panel: PanelConfig{
			Timeout: 10 * time.Second,
		},
		Monitor: MonitorConfig{
			History:  40,
			Interval: time.Second,
		},
		Upload: UploadConfig{
			URL: "https://api.mclo.gs/1/log",
		},
	}
}
