package cname

// Kind enumerates the ways a domain name source can be rejected.
type Kind int

const (
	// KindListEmpty means the source held no domain names at all.
	KindListEmpty Kind = iota + 1
	// KindContainsEmptyString means at least one supplied domain name is "".
	KindContainsEmptyString
)

// String returns the short identifier used in logs.
func (k Kind) String() string {
	switch k {
	case KindListEmpty:
		return "list_empty"
	case KindContainsEmptyString:
		return "contains_empty_string"
	default:
		return "unknown"
	}
}

// Description is the fixed, user-facing text for the kind.
func (k Kind) Description() string {
	switch k {
	case KindListEmpty:
		return "The provided list of domain names are empty. At least one domain name is required for file generation."
	case KindContainsEmptyString:
		return "One of the provided domain names is an empty string."
	default:
		return "Unknown CNAME generation error."
	}
}

// GenerationError is returned when a CNAME file cannot be produced from its source.
type GenerationError struct {
	Kind Kind
}

// Error returns the kind's description verbatim.
func (e *GenerationError) Error() string {
	return e.Kind.Description()
}

// Is matches any GenerationError of the same kind, so errors.Is works against the sentinels.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Kind == e.Kind
}

var (
	// ErrListEmpty is returned for an empty domain list or an empty Resources/CNAME file.
	ErrListEmpty = &GenerationError{Kind: KindListEmpty}
	// ErrContainsEmptyString is returned when a domain list contains "".
	ErrContainsEmptyString = &GenerationError{Kind: KindContainsEmptyString}
)
