package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Plugin", KeyPlugin, "generate-cname", Plugin("generate-cname")},
		{"PluginType", KeyPluginType, "publisher", PluginType("publisher")},
		{"Path", KeyPath, "Resources/CNAME", Path("Resources/CNAME")},
		{"Output", KeyOutput, "Output", Output("Output")},
		{"Domain", KeyDomain, "example.com", Domain("example.com")},
		{"Event", KeyEvent, "WRITE", Event("WRITE")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Step(2); v.Key != KeyStep || v.Value.Int64() != 2 {
		t.Fatalf("Step mismatch: %v", v)
	}
	if v := DomainCount(3); v.Key != KeyDomainCount {
		t.Fatalf("DomainCount key mismatch: %s", v.Key)
	}
	if v := Bytes(42); v.Key != KeyBytes {
		t.Fatalf("Bytes key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
