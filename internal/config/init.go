package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const initHeader = `# cnamepublish configuration.
# Plugins run top to bottom; a later plugin overwrites output written by an earlier one.
# Use either generate-cname (explicit domains) or add-cname (copies Resources/CNAME).
`

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Dir:    defaultSiteDir,
			Output: defaultOutputDir,
		},
		Plugins: []PluginConfig{
			{
				Name: "generate-cname",
				Options: map[string]any{
					"domains": []string{"example.com", "www.example.com"},
				},
			},
		},
		Monitoring: MonitoringConfig{
			Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(example); err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
