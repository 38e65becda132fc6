// Package plugin provides the plugin system that site builds are composed of.
// A plugin is constructed eagerly from configuration and executed later by the
// pipeline runner with a PluginContext that scopes its file access to the
// build's site and output directories.
package plugin

import (
	"context"
	"fmt"
)

// Plugin represents a build plugin with metadata and an execution hook.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type, capabilities).
	Metadata() PluginMetadata

	// Validate checks if the plugin can run with the given options.
	Validate(options map[string]any) error

	// Execute runs the plugin with the given context.
	Execute(ctx context.Context, pluginCtx *PluginContext) error
}

// PluginLifecycle extends Plugin with optional lifecycle hooks.
// The runner calls Init before the first plugin executes and Cleanup after the
// build finishes, whatever its outcome.
type PluginLifecycle interface {
	Plugin

	Init() error
	Cleanup() error
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "generate-cname").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Author is the plugin creator or maintainer.
	Author string

	// Capabilities lists optional features this plugin provides.
	Capabilities []string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides default implementations for optional plugin methods.
type BasePlugin struct{}

// Init is a no-op default implementation.
func (b *BasePlugin) Init() error {
	return nil
}

// Cleanup is a no-op default implementation.
func (b *BasePlugin) Cleanup() error {
	return nil
}

// Validate is a no-op default implementation that accepts any options.
func (b *BasePlugin) Validate(map[string]any) error {
	return nil
}
