package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cnamepublish/internal/metrics"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
)

type stubPlugin struct {
	plugin.BasePlugin
	name     string
	err      error
	calls    *[]string
	initErr  error
	cleanups *[]string
}

func (s *stubPlugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{Name: s.name, Version: "v0.0.1", Type: plugin.PluginTypePublisher}
}

func (s *stubPlugin) Execute(context.Context, *plugin.PluginContext) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func (s *stubPlugin) Init() error { return s.initErr }

func (s *stubPlugin) Cleanup() error {
	if s.cleanups != nil {
		*s.cleanups = append(*s.cleanups, s.name)
	}
	return nil
}

type countingRecorder struct {
	metrics.NoopRecorder
	results  map[string]metrics.ResultLabel
	outcomes []metrics.BuildOutcomeLabel
}

func (c *countingRecorder) IncPluginResult(p string, r metrics.ResultLabel) { c.results[p] = r }
func (c *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel)     { c.outcomes = append(c.outcomes, o) }

func newContext(t *testing.T) *plugin.PluginContext {
	t.Helper()
	root := t.TempDir()
	return plugin.NewPluginContext(nil, root, filepath.Join(root, "Output"), "build-1")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunExecutesInOrder(t *testing.T) {
	var calls []string
	plugins := []plugin.Plugin{
		&stubPlugin{name: "first", calls: &calls},
		&stubPlugin{name: "second", calls: &calls},
		&stubPlugin{name: "third", calls: &calls},
	}

	report, err := NewRunner(WithLogger(quietLogger())).Run(context.Background(), newContext(t), plugins)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.True(t, report.Succeeded())
	assert.Len(t, report.Steps, 3)
	assert.Equal(t, "build-1", report.BuildID)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	rec := &countingRecorder{results: map[string]metrics.ResultLabel{}}
	plugins := []plugin.Plugin{
		&stubPlugin{name: "ok", calls: &calls},
		&stubPlugin{name: "bad", calls: &calls, err: boom},
		&stubPlugin{name: "never", calls: &calls},
	}

	report, err := NewRunner(WithLogger(quietLogger()), WithRecorder(rec)).Run(context.Background(), newContext(t), plugins)
	require.ErrorIs(t, err, boom)

	var pe *plugin.PluginError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad", pe.PluginName)
	assert.Same(t, boom, pe.Unwrap())

	assert.Equal(t, []string{"ok", "bad"}, calls)
	assert.Equal(t, []string{"never"}, report.Skipped)
	assert.Equal(t, metrics.BuildOutcomeFailed, report.Outcome)
	assert.Equal(t, metrics.ResultFailed, rec.results["bad"])
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeFailed}, rec.outcomes)
}

func TestRunCanceledBeforeStart(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(WithLogger(quietLogger())).Run(ctx, newContext(t), []plugin.Plugin{
		&stubPlugin{name: "a", calls: &calls},
		&stubPlugin{name: "b", calls: &calls},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
	assert.Equal(t, metrics.BuildOutcomeCanceled, report.Outcome)
	assert.Equal(t, []string{"b"}, report.Skipped)
}

func TestRunLifecycle(t *testing.T) {
	var calls, cleanups []string
	plugins := []plugin.Plugin{
		&stubPlugin{name: "a", calls: &calls, cleanups: &cleanups},
		&stubPlugin{name: "b", calls: &calls, cleanups: &cleanups, initErr: errors.New("no init")},
	}

	_, err := NewRunner(WithLogger(quietLogger())).Run(context.Background(), newContext(t), plugins)
	var pe *plugin.PluginError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "init", pe.Operation)
	assert.Empty(t, calls, "no plugin executes when init fails")
	assert.Equal(t, []string{"a"}, cleanups, "only initialized plugins are cleaned up")
}

func TestRunCNAMEPlugins(t *testing.T) {
	pc := newContext(t)
	require.NoError(t, os.MkdirAll(filepath.Join(pc.SiteDir, "Resources"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pc.SiteDir, "Resources", "CNAME"), []byte("copied.io\n"), 0o644))

	// Later plugins overwrite earlier output; registration order decides.
	_, err := NewRunner(WithLogger(quietLogger())).Run(context.Background(), pc, []plugin.Plugin{
		cname.Generate("test.io", "www.test.io"),
		cname.Add(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(pc.OutputDir, "CNAME"))
	require.NoError(t, err)
	assert.Equal(t, "copied.io\n", string(data))
}

func TestRunCNAMEFailureSurfacesDescription(t *testing.T) {
	pc := newContext(t)

	_, err := NewRunner(WithLogger(quietLogger())).Run(context.Background(), pc, []plugin.Plugin{
		cname.GenerateFromList(nil),
	})
	require.ErrorIs(t, err, cname.ErrListEmpty)
	assert.Contains(t, err.Error(), cname.ErrListEmpty.Error())

	_, statErr := os.Stat(filepath.Join(pc.OutputDir, "CNAME"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportSummary(t *testing.T) {
	r := &Report{
		BuildID:  "b",
		Outcome:  metrics.BuildOutcomeFailed,
		Steps:    []StepResult{{Plugin: "generate-cname", Result: metrics.ResultFailed}},
		Skipped:  []string{"add-cname"},
		Duration: 1500 * time.Microsecond,
	}
	assert.Equal(t, "build b failed in 2ms [generate-cname=failed] skipped=add-cname", r.Summary())
}

func TestDescribe(t *testing.T) {
	got := Describe([]plugin.Plugin{cname.Generate("a.io"), cname.Add()})
	assert.Equal(t, []string{
		"1. generate-cname@v1.0.0 (publisher)",
		"2. add-cname@v1.0.0 (publisher)",
	}, got)
}
