// Package config loads the process configuration for the Surfboard
// adapter: remote service credentials, project identity, and endpoint
// location. Values come from an optional YAML file layered under
// environment variables; the environment always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the task service endpoint used when neither
	// the file nor the environment overrides it.
	DefaultBaseURL = "https://api.surfboard.dev"

	// configFileName is looked up under ~/.surfboard/
	configFileName = "config.yaml"
)

// Config holds everything the adapter needs to start.
type Config struct {
	// APIKey authenticates every outbound call. Required.
	APIKey string `yaml:"api_key"`

	// Project is the remote project name stamped on every submission.
	// Required.
	Project string `yaml:"project"`

	// BaseURL locates the task service.
	BaseURL string `yaml:"base_url"`
}

// ConfigurationError indicates a required setting is missing at
// startup. It is fatal: the process refuses to serve without it.
type ConfigurationError struct {
	Setting string
	EnvVar  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration %s (set %s or add it to the config file)", e.Setting, e.EnvVar)
}

// Load reads ~/.surfboard/config.yaml when present, applies environment
// overrides (SURFBOARD_API_KEY, SURFBOARD_PROJECT, SURFBOARD_BASE_URL),
// and validates the result.
func Load() (*Config, error) {
	path, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an
// error; the environment alone may carry the full configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fine, env-only configuration
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SURFBOARD_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SURFBOARD_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("SURFBOARD_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return &ConfigurationError{Setting: "api key", EnvVar: "SURFBOARD_API_KEY"}
	}
	if c.Project == "" {
		return &ConfigurationError{Setting: "project name", EnvVar: "SURFBOARD_PROJECT"}
	}
	return nil
}

func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".surfboard", configFileName), nil
}
