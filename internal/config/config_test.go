package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterodash/pterodash/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: 1
panel:
  url: https://panel.example.com
  api_key: ptlc_testkey
monitor:
  history: 60
  interval: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://panel.example.com", cfg.Panel.URL)
	assert.Equal(t, "ptlc_testkey", cfg.Panel.APIKey)
	assert.Equal(t, 60, cfg.Monitor.History)
	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
}

func TestLoadMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
panel:
  url: https://panel.example.com
  api_key: ptlc_testkey
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Monitor.History)
	assert.Equal(t, time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 10*time.Second, cfg.Panel.Timeout)
	assert.Equal(t, "https://api.mclo.gs/1/log", cfg.Upload.URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "panel: [not: valid")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestAPIKeyEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
panel:
  url: https://panel.example.com
  api_key: from-file
`)

	t.Setenv(APIKeyEnvVar, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Panel.APIKey)
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Panel.URL = "https://panel.example.com"
		cfg.Panel.APIKey = "ptlc_key"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"trailing slash ok", func(c *Config) { c.Panel.URL = "https://panel.example.com/" }, false},
		{"missing url", func(c *Config) { c.Panel.URL = "" }, true},
		{"bare host", func(c *Config) { c.Panel.URL = "panel.example.com" }, true},
		{"bad scheme", func(c *Config) { c.Panel.URL = "ftp://panel.example.com" }, true},
		{"missing key", func(c *Config) { c.Panel.APIKey = "" }, true},
		{"zero history", func(c *Config) { c.Monitor.History = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://panel.example.com", "https://panel.example.com"},
		{"https://panel.example.com/", "https://panel.example.com"},
		{"https://panel.example.com//", "https://panel.example.com"},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Panel.URL = tt.url
		assert.Equal(t, tt.expected, cfg.Origin())
	}
}
