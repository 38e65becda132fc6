package config

const (
	defaultSiteDir   = "."
	defaultOutputDir = "Output"
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Dir == "" {
		cfg.Site.Dir = defaultSiteDir
	}
	if cfg.Site.Output == "" {
		cfg.Site.Output = defaultOutputDir
	}
	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
}

// Default returns a configuration for ad-hoc runs without a config file.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	applyDefaults(cfg)
	return cfg
}
