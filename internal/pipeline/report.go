package pipeline

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/cnamepublish/internal/metrics"
)

// StepResult records the outcome of one plugin execution.
type StepResult struct {
	Plugin   string
	Result   metrics.ResultLabel
	Duration time.Duration
	Err      error
}

// Report summarizes a build.
type Report struct {
	BuildID  string
	Outcome  metrics.BuildOutcomeLabel
	Steps    []StepResult
	Skipped  []string // plugins not executed after a failure
	Duration time.Duration
}

// Succeeded reports whether every plugin ran without error.
func (r *Report) Succeeded() bool {
	return r.Outcome == metrics.BuildOutcomeSuccess
}

// Summary renders a one-line human readable description of the build.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build %s %s in %s", r.BuildID, r.Outcome, r.Duration.Round(time.Millisecond))
	parts := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		parts = append(parts, fmt.Sprintf("%s=%s", s.Plugin, s.Result))
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, " skipped=%s", strings.Join(r.Skipped, ","))
	}
	return b.String()
}
