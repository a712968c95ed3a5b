package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the movieapi CLI.
//
// Fields:
//   - ServerURL: base URL of the movieapi HTTP server.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file at path (if not empty) and from the environment. Later sources
// take precedence over earlier ones; command-line flags are applied by the
// caller.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(cfg *Config) error {
	if v := os.Getenv("MOVIEAPI_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("MOVIEAPI_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MOVIEAPI_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
