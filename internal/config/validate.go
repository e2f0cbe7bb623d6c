package config

import (
	"net/url"
	"strings"

	"github.com/pterodash/pterodash/internal/errors"
)

// Validate checks that the config has everything needed to talk to a panel.
func (c *Config) Validate() error {
	if c.Panel.URL == "" {
		return errors.New(errors.ErrConfig,
			"No panel URL configured",
			"Set panel.url in "+ConfigFileName+" or run 'pterodash init'")
	}

	u, err := url.Parse(c.Panel.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrConfig,
			"Invalid panel URL: "+c.Panel.URL,
			"Use a full URL like https://panel.example.com")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			"Unsupported panel URL scheme: "+u.Scheme,
			"Use http:// or https://")
	}

	if c.Panel.APIKey == "" {
		return errors.New(errors.ErrConfig,
			"No API key configured",
			"Set panel.api_key in "+ConfigFileName+" or export "+APIKeyEnvVar)
	}

	if c.Monitor.History < 1 {
		return errors.New(errors.ErrConfig,
			"monitor.history must be at least 1",
			"Remove the setting to use the default of 40 samples")
	}

	return nil
}

// Origin returns the panel URL with any trailing slash stripped. The socket
// gateway rejects upgrades whose Origin header does not match exactly.
func (c *Config) Origin() string {
	return strings.TrimRight(c.Panel.URL, "/")
}
