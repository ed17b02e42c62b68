package clientcli

import (
	"strings"

	"github.com/pspdfkit/nudocs/config"
)

// Credentials supplies the bearer token for each request.
// APIKey is called once per request; implementations must not cache.
type Credentials interface {
	APIKey() (string, error)
}

// StaticKey is a fixed API key, mostly useful in tests.
type StaticKey string

// APIKey returns the key itself.
func (k StaticKey) APIKey() (string, error) {
	return string(k), nil
}

// Config holds resolved client configuration.
type Config struct {
	BaseURL     string
	Credentials Credentials
}

// Validate checks if required fields are set.
func (c *Config) Validate() error {
	if c.Credentials == nil {
		return ErrCredentialsRequired
	}
	return nil
}

// WithDefaults returns a copy of the config with default values applied.
// If BaseURL is empty, it defaults to config.DefaultURL.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &cfg
}
