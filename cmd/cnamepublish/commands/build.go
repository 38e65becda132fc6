package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/cnamepublish/internal/config"
	"git.home.luguber.info/inful/cnamepublish/internal/domainlint"
	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
	"git.home.luguber.info/inful/cnamepublish/internal/metrics"
	"git.home.luguber.info/inful/cnamepublish/internal/pipeline"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory; overrides site.output from the configuration"`
	DryRun bool   `name:"dry-run" help:"Print the resolved plugin pipeline without running it"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.configureLogging(g, cfg)

	outputDir := cfg.OutputDir()
	if b.Output != "" {
		outputDir = b.Output
	}

	if b.DryRun {
		plugins, err := resolvePlugins(plugin.DefaultRegistry(), cfg.Plugins)
		if err != nil {
			return err
		}
		for _, line := range pipeline.Describe(plugins) {
			fmt.Fprintln(g.stdout(), line)
		}
		return nil
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := RunBuild(ctx, logger, cfg, outputDir)
	if report != nil {
		fmt.Fprintln(g.stdout(), report.Summary())
	}
	return err
}

// RunBuild resolves the configured plugins and runs them once against cfg's site.
// The report is returned whenever the pipeline ran, including on failure.
func RunBuild(ctx context.Context, logger *slog.Logger, cfg *config.Config, outputDir string) (*pipeline.Report, error) {
	plugins, err := resolvePlugins(plugin.DefaultRegistry(), cfg.Plugins)
	if err != nil {
		return nil, err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsTextfile() != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	pc := plugin.NewPluginContext(logger, cfg.SiteDir(), outputDir, uuid.NewString())
	runner := pipeline.NewRunner(pipeline.WithLogger(logger), pipeline.WithRecorder(recorder))
	report, runErr := runner.Run(ctx, pc, plugins)
	logFindings(logger, domainlint.Check(pc.GetStrings(cname.DataKeyDomains)))

	if prom != nil {
		if err := prom.WriteTextfile(cfg.MetricsTextfile()); err != nil {
			logger.Warn("Failed to export metrics", logfields.Path(cfg.MetricsTextfile()), logfields.Error(err))
		}
	}
	return report, runErr
}

func resolvePlugins(registry *plugin.Registry, configured []config.PluginConfig) ([]plugin.Plugin, error) {
	plugins := make([]plugin.Plugin, 0, len(configured))
	for _, pc := range configured {
		p, err := registry.New(pc.Name, pc.Options)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// logFindings reports advisory lint results for the published domains.
func logFindings(logger *slog.Logger, findings []domainlint.Finding) {
	for _, f := range findings {
		attrs := []any{logfields.Domain(f.Domain), slog.String("rule", string(f.Code))}
		if f.Severity == domainlint.SeverityWarning {
			logger.Warn(f.Message, attrs...)
		} else {
			logger.Debug(f.Message, attrs...)
		}
	}
}

func printFindings(w io.Writer, findings []domainlint.Finding) {
	for _, f := range findings {
		fmt.Fprintln(w, f.String())
	}
}
