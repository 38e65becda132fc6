package plugin

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Factory builds a plugin instance from its configuration options.
// Factories must not perform I/O; the returned plugin does its work in Execute.
type Factory func(options map[string]any) (Plugin, error)

// ErrPluginNotFound is returned when no factory is registered under a name.
var ErrPluginNotFound = errors.New("plugin not registered")

// Registration pairs a plugin's metadata with the factory that builds it.
type Registration struct {
	Metadata PluginMetadata
	Factory  Factory
}

// Registry manages plugin factories by name so builds can be assembled from configuration.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Registration
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Registration),
	}
}

// Register adds a factory under metadata.Name.
// Returns an error if the metadata is invalid or the name is already taken.
func (r *Registry) Register(metadata PluginMetadata, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for %q", metadata.Name)
	}
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.entries[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered as %s", metadata.Name, existing.Metadata)
	}
	r.entries[metadata.Name] = Registration{Metadata: metadata, Factory: factory}
	return nil
}

// Get retrieves a registration by name.
func (r *Registry) Get(name string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	if !ok {
		return Registration{}, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	return reg, nil
}

// New builds the named plugin and validates it against options.
func (r *Registry) New(name string, options map[string]any) (Plugin, error) {
	reg, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	p, err := reg.Factory(options)
	if err != nil {
		return nil, NewPluginError(name, "configure", err)
	}
	if err := p.Validate(options); err != nil {
		return nil, NewPluginError(name, "validate", err)
	}
	return p, nil
}

// List returns the metadata of all registrations sorted by name.
func (r *Registry) List() []PluginMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]PluginMetadata, 0, len(r.entries))
	for _, reg := range r.entries {
		result = append(result, reg.Metadata)
	}
	slices.SortFunc(result, func(a, b PluginMetadata) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// ListByType returns the metadata of registrations of a specific type, sorted by name.
func (r *Registry) ListByType(pluginType PluginType) []PluginMetadata {
	var result []PluginMetadata
	for _, m := range r.List() {
		if m.Type == pluginType {
			result = append(result, m)
		}
	}
	return result
}

// Has checks if a plugin with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("plugin %s not found", name)
	}
	delete(r.entries, name)
	return nil
}

// Clear removes all plugins from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Registration)
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a factory to the global registry.
func Register(metadata PluginMetadata, factory Factory) error {
	return globalRegistry.Register(metadata, factory)
}

// New builds a plugin from the global registry.
func New(name string, options map[string]any) (Plugin, error) {
	return globalRegistry.New(name, options)
}

// List returns all plugin metadata from the global registry.
func List() []PluginMetadata {
	return globalRegistry.List()
}
