package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
	"git.home.luguber.info/inful/cnamepublish/internal/metrics"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
)

// Runner executes plugins sequentially against a shared PluginContext.
type Runner struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for build and plugin lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewRunner creates a runner with slog.Default and a NoopRecorder unless overridden.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes plugins in order. It returns the report together with the first
// error, which is a *plugin.PluginError wrapping the plugin's own error.
func (r *Runner) Run(ctx context.Context, pc *plugin.PluginContext, plugins []plugin.Plugin) (*Report, error) {
	start := r.now()
	report := &Report{BuildID: pc.BuildID}
	log := r.logger.With(logfields.BuildID(pc.BuildID))
	pc.WithRecorder(r.recorder)

	log.Info("Starting build", slog.Int("plugins", len(plugins)), logfields.Output(pc.OutputDir))

	initialized, err := r.initAll(plugins)
	defer r.cleanupAll(log, initialized)

	if err == nil {
		err = r.execute(ctx, pc, plugins, report, log)
	}

	report.Duration = r.now().Sub(start)
	report.Outcome = outcomeFor(err)
	r.recorder.ObserveBuildDuration(report.Duration)
	r.recorder.IncBuildOutcome(report.Outcome)

	if err != nil {
		log.Error("Build failed", logfields.Error(err), logfields.DurationMS(msec(report.Duration)))
		return report, err
	}
	log.Info("Build completed", logfields.DurationMS(msec(report.Duration)))
	return report, nil
}

func (r *Runner) execute(ctx context.Context, pc *plugin.PluginContext, plugins []plugin.Plugin, report *Report, log *slog.Logger) error {
	for i, p := range plugins {
		name := p.Metadata().Name

		if err := ctx.Err(); err != nil {
			report.Steps = append(report.Steps, StepResult{Plugin: name, Result: metrics.ResultCanceled, Err: err})
			r.recorder.IncPluginResult(name, metrics.ResultCanceled)
			report.Skipped = skippedNames(plugins[i+1:])
			return plugin.NewPluginError(name, "execute", err)
		}

		stepLog := log.With(logfields.Plugin(name), logfields.Step(i))
		stepLog.Debug("Executing plugin", logfields.PluginType(p.Metadata().Type.String()))

		t0 := r.now()
		err := p.Execute(ctx, pc)
		dur := r.now().Sub(t0)

		result := resultFor(err)
		report.Steps = append(report.Steps, StepResult{Plugin: name, Result: result, Duration: dur, Err: err})
		r.recorder.ObservePluginDuration(name, dur)
		r.recorder.IncPluginResult(name, result)

		if err != nil {
			report.Skipped = skippedNames(plugins[i+1:])
			return plugin.NewPluginError(name, "execute", err)
		}
		stepLog.Debug("Plugin completed", logfields.DurationMS(msec(dur)))
	}
	return nil
}

// initAll runs Init on lifecycle plugins and returns those that must be cleaned up.
func (r *Runner) initAll(plugins []plugin.Plugin) ([]plugin.PluginLifecycle, error) {
	var initialized []plugin.PluginLifecycle
	for _, p := range plugins {
		lc, ok := p.(plugin.PluginLifecycle)
		if !ok {
			continue
		}
		if err := lc.Init(); err != nil {
			return initialized, plugin.NewPluginError(p.Metadata().Name, "init", err)
		}
		initialized = append(initialized, lc)
	}
	return initialized, nil
}

func (r *Runner) cleanupAll(log *slog.Logger, initialized []plugin.PluginLifecycle) {
	for i := len(initialized) - 1; i >= 0; i-- {
		if err := initialized[i].Cleanup(); err != nil {
			log.Warn("Plugin cleanup failed", logfields.Plugin(initialized[i].Metadata().Name), logfields.Error(err))
		}
	}
}

func resultFor(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailed
	}
}

func outcomeFor(err error) metrics.BuildOutcomeLabel {
	switch resultFor(err) {
	case metrics.ResultSuccess:
		return metrics.BuildOutcomeSuccess
	case metrics.ResultCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}

func skippedNames(rest []plugin.Plugin) []string {
	names := make([]string, 0, len(rest))
	for _, p := range rest {
		names = append(names, p.Metadata().Name)
	}
	return names
}

func msec(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Describe lists plugins in execution order, e.g. for dry runs.
func Describe(plugins []plugin.Plugin) []string {
	out := make([]string, 0, len(plugins))
	for i, p := range plugins {
		out = append(out, fmt.Sprintf("%d. %s", i+1, p.Metadata()))
	}
	return out
}
