package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/cnamepublish/internal/config"
	ferrors "git.home.luguber.info/inful/cnamepublish/internal/foundation/errors"
	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
	"git.home.luguber.info/inful/cnamepublish/internal/pipeline"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
	"git.home.luguber.info/inful/cnamepublish/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before rebuilding after a change" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signalContext()
	defer stop()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.configureLogging(g, cfg)

	// The configuration is reloaded on every rebuild so plugin edits apply
	// without a restart. Site and output directories are fixed at startup.
	rebuild := func(ctx context.Context) error {
		current, err := reloadConfig(root.Config, cfg)
		if err == nil {
			var report *pipeline.Report
			report, err = RunBuild(ctx, logger, current, current.OutputDir())
			if report != nil {
				fmt.Fprintln(g.stdout(), report.Summary())
			}
		}
		if needsInputChange(err) {
			logger.Info("Waiting for the inputs to change before rebuilding")
		}
		return err
	}

	watcher, err := watch.New(rebuild,
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(logger),
		watch.WithFilter(inputFilter(root.Config, cfg)),
	)
	if err != nil {
		return err
	}
	for _, dir := range watchDirs(root.Config, cfg) {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if err := rebuild(ctx); err != nil {
		logger.Error("Initial build failed; waiting for changes", logfields.Error(err))
	}
	logger.Info("Watching for changes", logfields.Path(cfg.SiteDir()))
	return watcher.Run(ctx)
}

// reloadConfig loads configPath again but keeps the site section of startup,
// since the watched directories were derived from it.
func reloadConfig(configPath string, startup *config.Config) (*config.Config, error) {
	current, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	current.Site = startup.Site
	return current, nil
}

// needsInputChange reports whether err cannot clear without the user editing inputs.
func needsInputChange(err error) bool {
	classified, ok := ferrors.AsClassified(classify(err))
	return ok && classified.NeedsUserAction()
}

// inputFilter accepts the configuration file and anything in the resources directory.
// Output and metrics files written by the build itself never match.
func inputFilter(configPath string, cfg *config.Config) func(string) bool {
	configAbs, _ := filepath.Abs(configPath)
	resources, _ := filepath.Abs(filepath.Join(cfg.SiteDir(), filepath.Dir(cname.ResourcePath)))
	return func(path string) bool {
		return path == configAbs || path == resources || filepath.Dir(path) == resources
	}
}

// watchDirs returns the config directory plus the resources directory, or the
// site root when Resources does not exist yet.
func watchDirs(configPath string, cfg *config.Config) []string {
	dirs := []string{filepath.Dir(configPath)}
	resources := filepath.Join(cfg.SiteDir(), filepath.Dir(cname.ResourcePath))
	if info, err := os.Stat(resources); err == nil && info.IsDir() {
		dirs = append(dirs, resources)
	} else {
		dirs = append(dirs, cfg.SiteDir())
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			abs = d
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}
	return out
}
