// Package config holds the process configuration, loaded once at startup
// from the environment and passed by reference to the components that need
// it. Nothing else in the codebase reads environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full process configuration.
type Config struct {
	Host         string `envconfig:"BALLOTBOX_HOST"     default:"0.0.0.0"`
	Port         int    `envconfig:"BALLOTBOX_PORT"     default:"8080"`
	DatabasePath string `envconfig:"BALLOTBOX_DB_PATH"  default:"ballotbox.db"`
	JWTSecret    string `envconfig:"BALLOTBOX_JWT_SECRET"`
	LogLevel     string `envconfig:"BALLOTBOX_LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("BALLOTBOX_JWT_SECRET must be set")
	}
	return cfg, nil
}
