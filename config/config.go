package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pspdfkit/nudocs"
)

const (
	// DefaultURL is the Nudocs service used when no override is configured.
	DefaultURL = "https://nudocs.ai"

	// EnvAPIKey names the environment variable that overrides the API key file.
	EnvAPIKey = "NUDOCS_API_KEY"

	envPrefix = "NUDOCS"
)

// configKey is the context key for storing the loaded settings.
type configKey struct{}

// WithContext returns a new context with the settings stored.
func WithContext(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, configKey{}, s)
}

// FromContext retrieves the settings from context.
// Returns an error if settings are not found.
func FromContext(ctx context.Context) (*Settings, error) {
	s, ok := ctx.Value(configKey{}).(*Settings)
	if !ok || s == nil {
		return nil, errors.New("settings not found in context")
	}
	return s, nil
}

// Paths locates the files nudocs keeps in its config directory.
type Paths struct {
	Dir        string
	APIKeyFile string
	StateFile  string
	ConfigFile string
}

// PathsIn returns the Paths rooted at dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:        dir,
		APIKeyFile: filepath.Join(dir, "api_key"),
		StateFile:  filepath.Join(dir, "state.json"),
		ConfigFile: filepath.Join(dir, "config.yaml"),
	}
}

// DefaultPaths returns the Paths under ~/.config/nudocs.
// HOME is consulted first, then USERPROFILE.
func DefaultPaths() Paths {
	return PathsIn(filepath.Join(homeDir(), ".config", "nudocs"))
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}

// Settings is the resolved, validated configuration.
type Settings struct {
	URL string    `mapstructure:"url" validate:"required,http_url"`
	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// BaseURL returns the service URL without a trailing slash.
func (s *Settings) BaseURL() string {
	return strings.TrimSuffix(s.URL, "/")
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"url":       "url",
	"log-level": "log.level",
}

// bindFlags binds explicitly set CLI flags to viper keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok || !f.Changed {
			return
		}
		_ = v.BindPFlag(viperKey, f)
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("url", DefaultURL)
	v.SetDefault("log.level", "warn")
}

// Load reads configuration and returns validated Settings.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Missing config files are skipped silently; unreadable ones are logged and skipped.
func Load(configFiles []string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files, later files override earlier ones
	for _, cf := range configFiles {
		v.SetConfigFile(cf)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			slog.Warn("error reading config file", "file", cf, "err", err)
		}
	}

	// 3. Bind environment variables (NUDOCS_URL, NUDOCS_LOG_LEVEL)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Settings
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &s, nil
}

// Resolver resolves the API key and service URL for a single invocation.
// The API key is read on every call and never cached.
type Resolver struct {
	paths   Paths
	baseURL string
	getenv  func(string) string
}

// NewResolver returns a Resolver reading the key file from paths and
// reporting the URL from settings.
func NewResolver(paths Paths, settings *Settings) *Resolver {
	baseURL := DefaultURL
	if settings != nil && settings.URL != "" {
		baseURL = settings.BaseURL()
	}
	return &Resolver{
		paths:   paths,
		baseURL: baseURL,
		getenv:  os.Getenv,
	}
}

// APIKey returns the API key from NUDOCS_API_KEY, else the trimmed contents
// of the api_key file. Returns nudocs.ErrMissingCredential if neither is set.
func (r *Resolver) APIKey() (string, error) {
	if key := r.getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	data, err := os.ReadFile(r.paths.APIKeyFile) //#nosec G304 -- path is the fixed key file location
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nudocs.ErrMissingCredential
		}
		return "", fmt.Errorf("read API key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", nudocs.ErrMissingCredential
	}
	return key, nil
}

// HasAPIKey reports whether APIKey would succeed. A blank key file counts
// as not configured.
func (r *Resolver) HasAPIKey() bool {
	_, err := r.APIKey()
	return err == nil
}

// BaseURL returns the service base URL.
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// Paths returns the file locations the resolver reads from.
func (r *Resolver) Paths() Paths {
	return r.paths
}

// SetupInstructions explains the two ways to provide an API key.
const SetupInstructions = `Set your API key using one of these methods:

  1. Environment variable:
     export NUDOCS_API_KEY="nudocs_your_key_here"

  2. Config file:
     mkdir -p ~/.config/nudocs
     echo "nudocs_your_key_here" > ~/.config/nudocs/api_key

Get your API key at: https://nudocs.ai (click "Integration")`
