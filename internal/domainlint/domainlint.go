// Package domainlint reports advisory findings about CNAME domain names.
//
// Findings never fail a build: the publisher accepts any non-empty string, and
// hosting providers are the final judge of what they will serve. The checks
// exist to catch the usual copy/paste mistakes before a deploy.
package domainlint

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code identifies a rule.
type Code string

const (
	CodeInvalidHostname Code = "invalid-hostname"
	CodeWhitespace      Code = "whitespace"
	CodeDuplicate       Code = "duplicate"
	CodeScheme          Code = "has-scheme"
	CodeUnicode         Code = "unicode"
	CodeTrailingDot     Code = "trailing-dot"
	CodeMultipleApex    Code = "multiple-entries"
)

// Finding is one lint result for the domain at Index.
type Finding struct {
	Index    int
	Domain   string
	Code     Code
	Severity Severity
	Message  string
}

// String renders the finding for terminal output.
func (f Finding) String() string {
	return fmt.Sprintf("%s: line %d %q: %s", f.Severity, f.Index+1, f.Domain, f.Message)
}

var profile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.ValidateLabels(true),
	idna.StrictDomainName(true),
	idna.VerifyDNSLength(true),
)

// Check lints domainNames. Empty entries are skipped; they are a hard error
// reported by the publisher itself.
func Check(domainNames []string) []Finding {
	var findings []Finding
	seen := make(map[string]int, len(domainNames))

	for i, raw := range domainNames {
		if raw == "" {
			continue
		}
		add := func(code Code, sev Severity, format string, args ...any) {
			findings = append(findings, Finding{Index: i, Domain: raw, Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)})
		}

		name := raw
		if trimmed := strings.TrimSpace(raw); trimmed != raw {
			add(CodeWhitespace, SeverityWarning, "leading or trailing whitespace is written to the file as-is")
			name = trimmed
		}
		if strings.Contains(name, "://") {
			add(CodeScheme, SeverityWarning, "CNAME entries are host names, not URLs")
			if _, host, ok := strings.Cut(name, "://"); ok {
				name, _, _ = strings.Cut(host, "/")
			}
		}
		if strings.HasSuffix(name, ".") {
			add(CodeTrailingDot, SeverityInfo, "trailing dot is usually not expected by hosting providers")
			name = strings.TrimSuffix(name, ".")
		}

		ascii, err := profile.ToASCII(name)
		if err != nil {
			add(CodeInvalidHostname, SeverityWarning, "not a valid host name: %v", err)
		} else if ascii != strings.ToLower(name) {
			add(CodeUnicode, SeverityInfo, "resolves as %s", ascii)
		}

		key := strings.ToLower(name)
		if err == nil {
			key = ascii
		}
		if first, dup := seen[key]; dup {
			add(CodeDuplicate, SeverityWarning, "duplicate of line %d", first+1)
		} else {
			seen[key] = i
		}
	}

	if len(domainNames) > 1 {
		findings = append(findings, Finding{
			Index:    1,
			Domain:   domainNames[1],
			Code:     CodeMultipleApex,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("only the first entry (%q) is used as the custom domain by GitHub Pages", domainNames[0]),
		})
	}
	return findings
}

// CheckContent lints a CNAME file body, one domain per line.
// A trailing newline does not produce an extra entry.
func CheckContent(content string) []Finding {
	content = strings.TrimSuffix(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if content == "" {
		return nil
	}
	return Check(strings.Split(content, "\n"))
}

// HasWarnings reports whether any finding is a warning.
func HasWarnings(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			return true
		}
	}
	return false
}
