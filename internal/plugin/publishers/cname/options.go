package cname

import (
	"fmt"
	"slices"
	"sort"
)

const optDomains = "domains"

// NewGenerateFromOptions builds a GeneratePlugin from configuration options.
// "domains" may be a list of strings or a single string; a missing key yields an
// empty list, which fails with ErrListEmpty when the build runs.
func NewGenerateFromOptions(options map[string]any) (*GeneratePlugin, error) {
	if err := checkOptionKeys(options, optDomains); err != nil {
		return nil, err
	}
	domains, err := stringList(options[optDomains])
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", optDomains, err)
	}
	return GenerateFromList(domains), nil
}

// NewAddFromOptions builds an AddPlugin; it accepts no options.
func NewAddFromOptions(options map[string]any) (*AddPlugin, error) {
	if err := checkOptionKeys(options); err != nil {
		return nil, err
	}
	return Add(), nil
}

func checkOptionKeys(options map[string]any, allowed ...string) error {
	var unknown []string
	for key := range options {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown options %v (allowed: %v)", unknown, allowed)
	}
	return nil
}

// stringList accepts the shapes yaml.v3 produces for a scalar or a sequence of scalars.
func stringList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []string:
		return slices.Clone(val), nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d is %T, expected string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list of strings, got %T", v)
	}
}
