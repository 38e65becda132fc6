package cname

import "git.home.luguber.info/inful/cnamepublish/internal/plugin"

// Register adds the CNAME plugins to r.
func Register(r *plugin.Registry) error {
	if err := r.Register(generateMetadata, func(options map[string]any) (plugin.Plugin, error) {
		return NewGenerateFromOptions(options)
	}); err != nil {
		return err
	}
	return r.Register(addMetadata, func(options map[string]any) (plugin.Plugin, error) {
		return NewAddFromOptions(options)
	})
}

func init() {
	// Registration only fails on duplicate names, which cannot happen for the global registry here.
	_ = Register(plugin.DefaultRegistry())
}
