package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SURFBOARD_API_KEY", "")
	t.Setenv("SURFBOARD_PROJECT", "")
	t.Setenv("SURFBOARD_BASE_URL", "")
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "api_key: file-key\nproject: file-project\nbase_url: https://staging.example.com\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "file-project", cfg.Project)
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "api_key: file-key\nproject: file-project\n")

	t.Setenv("SURFBOARD_API_KEY", "env-key")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "file-project", cfg.Project)
}

func TestEnvOnlyConfiguration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SURFBOARD_API_KEY", "env-key")
	t.Setenv("SURFBOARD_PROJECT", "env-project")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "env-project", cfg.Project)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestMissingAPIKeyIsFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("SURFBOARD_PROJECT", "env-project")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "SURFBOARD_API_KEY")
}

func TestMissingProjectIsFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("SURFBOARD_API_KEY", "env-key")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "SURFBOARD_PROJECT")
}

func TestMalformedFileIsAnError(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "api_key: [unclosed\n")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
