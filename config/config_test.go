package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspdfkit/nudocs"
	"github.com/pspdfkit/nudocs/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://nudocs.ai", cfg.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingConfigFileIgnored(t *testing.T) {
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "config.yaml")}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultURL, cfg.URL)
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
url: https://staging.nudocs.ai/
log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.nudocs.ai/", cfg.URL)
	assert.Equal(t, "https://staging.nudocs.ai", cfg.BaseURL())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("url: https://from-file.example\n"), 0o644)
	require.NoError(t, err)

	t.Setenv("NUDOCS_URL", "http://localhost:3000")
	t.Setenv("NUDOCS_LOG_LEVEL", "INFO")

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("NUDOCS_URL", "http://localhost:3000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--url", "http://127.0.0.1:9999"}))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.URL)
	assert.Equal(t, "warn", cfg.Log.Level, "unset flag must not override the default")
}

func TestLoad_ValidationError_InvalidURL(t *testing.T) {
	t.Setenv("NUDOCS_URL", "not a url")

	_, err := config.Load(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_ValidationError_InvalidLogLevel(t *testing.T) {
	t.Setenv("NUDOCS_LOG_LEVEL", "verbose")

	_, err := config.Load(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestPaths(t *testing.T) {
	t.Run("home directory", func(t *testing.T) {
		t.Setenv("HOME", "/home/alice")

		p := config.DefaultPaths()
		assert.Equal(t, filepath.Join("/home/alice", ".config", "nudocs"), p.Dir)
		assert.Equal(t, filepath.Join(p.Dir, "api_key"), p.APIKeyFile)
		assert.Equal(t, filepath.Join(p.Dir, "state.json"), p.StateFile)
		assert.Equal(t, filepath.Join(p.Dir, "config.yaml"), p.ConfigFile)
	})

	t.Run("user profile when HOME is unset", func(t *testing.T) {
		t.Setenv("HOME", "")
		t.Setenv("USERPROFILE", "/users/bob")

		p := config.DefaultPaths()
		assert.Equal(t, filepath.Join("/users/bob", ".config", "nudocs"), p.Dir)
	})
}

func TestResolver_APIKey(t *testing.T) {
	t.Run("environment takes precedence", func(t *testing.T) {
		paths := config.PathsIn(t.TempDir())
		require.NoError(t, os.WriteFile(paths.APIKeyFile, []byte("from-file"), 0o600))
		t.Setenv(config.EnvAPIKey, "from-env")

		key, err := config.NewResolver(paths, nil).APIKey()
		require.NoError(t, err)
		assert.Equal(t, "from-env", key)
	})

	t.Run("file contents are trimmed", func(t *testing.T) {
		paths := config.PathsIn(t.TempDir())
		require.NoError(t, os.WriteFile(paths.APIKeyFile, []byte("  nudocs_abc\n"), 0o600))
		t.Setenv(config.EnvAPIKey, "")

		key, err := config.NewResolver(paths, nil).APIKey()
		require.NoError(t, err)
		assert.Equal(t, "nudocs_abc", key)
	})

	t.Run("missing credential", func(t *testing.T) {
		paths := config.PathsIn(t.TempDir())
		t.Setenv(config.EnvAPIKey, "")

		r := config.NewResolver(paths, nil)
		_, err := r.APIKey()
		assert.ErrorIs(t, err, nudocs.ErrMissingCredential)
		assert.False(t, r.HasAPIKey())
	})

	t.Run("blank file is missing", func(t *testing.T) {
		paths := config.PathsIn(t.TempDir())
		require.NoError(t, os.WriteFile(paths.APIKeyFile, []byte("\n"), 0o600))
		t.Setenv(config.EnvAPIKey, "")

		_, err := config.NewResolver(paths, nil).APIKey()
		assert.ErrorIs(t, err, nudocs.ErrMissingCredential)
	})
}

func TestResolver_HasAPIKey(t *testing.T) {
	paths := config.PathsIn(t.TempDir())
	t.Setenv(config.EnvAPIKey, "")
	r := config.NewResolver(paths, nil)
	assert.False(t, r.HasAPIKey())

	require.NoError(t, os.WriteFile(paths.APIKeyFile, []byte(" \n\t\n"), 0o600))
	assert.False(t, r.HasAPIKey(), "blank key file")

	require.NoError(t, os.WriteFile(paths.APIKeyFile, []byte("k"), 0o600))
	assert.True(t, r.HasAPIKey())

	require.NoError(t, os.Remove(paths.APIKeyFile))
	t.Setenv(config.EnvAPIKey, "from-env")
	assert.True(t, r.HasAPIKey())
}

func TestResolver_BaseURL(t *testing.T) {
	paths := config.PathsIn(t.TempDir())

	assert.Equal(t, config.DefaultURL, config.NewResolver(paths, nil).BaseURL())
	assert.Equal(t, "http://localhost:3000", config.NewResolver(paths, &config.Settings{URL: "http://localhost:3000/"}).BaseURL())
}

func TestSetupInstructions(t *testing.T) {
	assert.Contains(t, config.SetupInstructions, `export NUDOCS_API_KEY="nudocs_your_key_here"`)
	assert.Contains(t, config.SetupInstructions, `~/.config/nudocs/api_key`)
}
