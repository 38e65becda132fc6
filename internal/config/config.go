package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/cnamepublish/internal/foundation/errors"
)

// CurrentVersion is the only configuration format version accepted by Load.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "cnamepublish.yaml"

// Config represents the application configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Site       SiteConfig       `yaml:"site"`
	Plugins    []PluginConfig   `yaml:"plugins"`
	Monitoring MonitoringConfig `yaml:"monitoring,omitempty"`

	// baseDir is the directory of the loaded file; relative site paths resolve against it.
	baseDir string
}

// SiteConfig locates the site root and its output directory.
type SiteConfig struct {
	Dir    string `yaml:"dir"`    // Site root containing Resources/
	Output string `yaml:"output"` // Output directory, relative to Dir unless absolute
}

// PluginConfig selects a registered plugin by name and passes it options.
// Plugins run in the order they are listed.
type PluginConfig struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options,omitempty"`
}

// MonitoringConfig represents logging and metrics configuration.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig represents metrics export configuration.
type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text exposition after each build.
	Textfile string `yaml:"textfile,omitempty"`
}

// Load loads, expands, normalizes and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
				WithContext("path", configPath).UserAction().Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
			WithContext("path", configPath).Fatal().UserAction().Build()
	}

	abs, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	cfg.baseDir = abs
	return cfg, nil
}

// Parse decodes a configuration document without environment expansion.
// Unknown fields are rejected so typos surface instead of being ignored.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SiteDir returns the absolute-or-relative site root as resolved against the config file.
func (c *Config) SiteDir() string {
	if filepath.IsAbs(c.Site.Dir) || c.baseDir == "" {
		return filepath.Clean(c.Site.Dir)
	}
	return filepath.Join(c.baseDir, c.Site.Dir)
}

// OutputDir returns the output directory; relative values resolve against SiteDir.
func (c *Config) OutputDir() string {
	if filepath.IsAbs(c.Site.Output) {
		return filepath.Clean(c.Site.Output)
	}
	return filepath.Join(c.SiteDir(), c.Site.Output)
}

// MetricsTextfile returns the metrics textfile path resolved against the config file, or "".
func (c *Config) MetricsTextfile() string {
	p := c.Monitoring.Metrics.Textfile
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
