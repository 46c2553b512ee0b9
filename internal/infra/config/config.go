// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. It is built once in
// main and passed down explicitly; nothing reads flags or globals.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Audio   AudioConfig   `yaml:"audio"`
}

// LibraryConfig locates the on-disk media library.
type LibraryConfig struct {
	Path string `yaml:"path"`
}

// AudioConfig selects the playback backend. Settings are decoded by the
// backend itself.
type AudioConfig struct {
	Backend  string         `yaml:"backend" default:"speaker" validate:"required,oneof=speaker"`
	Settings map[string]any `yaml:"settings"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "noisebox", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults so first runs need no setup. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if cfg.Library.Path == "" {
		cfg.Library.Path = filepath.Join(xdg.DataHome, "noisebox", "library.json")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("NOISEBOX_LIBRARY"); v != "" {
		c.Library.Path = v
	}
	if v := os.Getenv("NOISEBOX_BACKEND"); v != "" {
		c.Audio.Backend = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
