package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("invalid input").Build(), 2},
		{"not found", NotFoundError("missing").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"plugin", PluginError("unknown plugin").Build(), 9},
		{"build", BuildError("build failed").Build(), 11},
		{"canceled", CanceledError("interrupted").Build(), 130},
		{"wrapped classified", fmt.Errorf("ctx: %w", ConfigError("x").Build()), 7},
		{"unclassified error", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("One of the provided domain names is an empty string.")
	err := WrapError(cause, CategoryValidation, "build failed").Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	if got := quiet.FormatError(err); got != "Error: build failed: One of the provided domain names is an empty string." {
		t.Errorf("unexpected non-verbose format: %q", got)
	}

	verbose := NewCLIErrorAdapter(true, slog.Default())
	if got := verbose.FormatError(err); !strings.HasPrefix(got, "[validation:error]") {
		t.Errorf("expected verbose format to include classification, got %q", got)
	}

	if got := quiet.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("unexpected unclassified format: %q", got)
	}
	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("expected empty format for nil, got %q", got)
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger).WithOutput(&out)

	code := adapter.Report(NotFoundError("resource missing").Build())
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if !strings.Contains(out.String(), "resource missing") {
		t.Errorf("expected message on output, got %q", out.String())
	}
	if logs.Len() != 0 {
		t.Errorf("expected classified error not to be logged in quiet mode, got %q", logs.String())
	}

	adapter.Report(errors.New("surprise"))
	if !strings.Contains(logs.String(), "Unclassified error") {
		t.Errorf("expected unclassified error to be logged, got %q", logs.String())
	}
}
