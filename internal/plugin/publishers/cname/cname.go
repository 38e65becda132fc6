// Package cname publishes the CNAME file that binds a custom domain to a site
// hosted on GitHub Pages style hosting.
//
// Two plugins are provided. GenerateFromList writes domain names given in
// configuration, one per line with the first being the primary domain. Add
// copies an existing Resources/CNAME file from the site unchanged.
//
// Both are deferred: constructing them does no I/O and no validation. Input is
// checked only when the build executes the plugin, and a rejected input leaves
// the output directory untouched.
package cname

import "strings"

const (
	// OutputPath is the output-relative path of the published file.
	OutputPath = "CNAME"
	// ResourcePath is the site-relative path Add copies from.
	ResourcePath = "Resources/CNAME"
	// DataKeyDomains is the PluginContext data key holding the published domain
	// names ([]string) after a successful Execute.
	DataKeyDomains = "cname.domains"

	separator = "\n"
	version   = "v1.0.0"
	author    = "cnamepublish"
)

// Validate checks a domain name list the way GenerateFromList does at execution time.
// Domain syntax is deliberately not checked; any non-empty string is accepted.
func Validate(domainNames []string) error {
	if len(domainNames) == 0 {
		return ErrListEmpty
	}
	for _, name := range domainNames {
		if name == "" {
			return ErrContainsEmptyString
		}
	}
	return nil
}

// Content renders the CNAME file body for domainNames: one name per line, no trailing newline.
func Content(domainNames []string) string {
	return strings.Join(domainNames, separator)
}

// ParseContent splits a CNAME file body into domain names, one per line.
// CRLF line endings are accepted and a single trailing newline does not add an entry.
func ParseContent(content string) []string {
	content = strings.TrimSuffix(strings.ReplaceAll(content, "\r\n", separator), separator)
	if content == "" {
		return nil
	}
	return strings.Split(content, separator)
}
