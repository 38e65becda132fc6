package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// normalize case-folds enumerations and trims plugin names before validation.
func (c *Config) normalize() error {
	level, err := ParseLogLevel(string(c.Monitoring.Logging.Level))
	if err != nil {
		return err
	}
	c.Monitoring.Logging.Level = level

	format, err := ParseLogFormat(string(c.Monitoring.Logging.Format))
	if err != nil {
		return err
	}
	c.Monitoring.Logging.Format = format

	for i := range c.Plugins {
		c.Plugins[i].Name = strings.TrimSpace(c.Plugins[i].Name)
	}
	return nil
}

// Validate checks structural constraints. Whether plugin names exist and their
// options are acceptable is decided by the plugin registry at build time.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Plugins) == 0 {
		errs = append(errs, errors.New("at least one plugin must be configured"))
	}
	for i, p := range c.Plugins {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("plugins[%d]: name is required", i))
		}
	}
	if c.Site.Output != "" && filepath.Clean(c.Site.Output) == "." {
		errs = append(errs, errors.New("site.output must not be the site root itself"))
	}
	return errors.Join(errs...)
}
