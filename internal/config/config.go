// Package config loads the action server settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// ACTION_SERVER_* environment variables. Command line flags are applied last
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/pkg/catalog"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ACTION_SERVER_"

const (
	DefaultPort            = 5055
	DefaultActions         = "demo"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the server settings.
type Config struct {
	Port            int           `yaml:"port" env:"PORT"`
	Actions         string        `yaml:"actions" env:"ACTIONS"`
	CORS            []string      `yaml:"cors" env:"CORS" envSeparator:","`
	LogLevel        string        `yaml:"logging_level" env:"LOGGING_LEVEL"`
	SSLCertificate  string        `yaml:"ssl_certificate" env:"SSL_CERTIFICATE"`
	SSLKeyfile      string        `yaml:"ssl_keyfile" env:"SSL_KEYFILE"`
	SSLPassword     string        `yaml:"ssl_password" env:"SSL_PASSWORD"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	ActionTimeout   time.Duration `yaml:"action_timeout" env:"ACTION_TIMEOUT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		Actions:         DefaultActions,
		CORS:            []string{"*"},
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TLSEnabled reports whether a certificate was configured.
func (c Config) TLSEnabled() bool {
	return c.SSLCertificate != ""
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Actions != "" {
		if err := catalog.Validate(c.Actions); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.SSLKeyfile != "" && c.SSLCertificate == "" {
		errs = append(errs, errors.New("ssl keyfile given without a certificate"))
	}
	if c.SSLPassword != "" && c.SSLKeyfile == "" {
		errs = append(errs, errors.New("ssl password given without a keyfile"))
	}
	if c.ShutdownTimeout < 0 || c.ActionTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
