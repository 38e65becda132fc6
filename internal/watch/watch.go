// Package watch re-runs a build when site inputs change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into a single rebuild.
const DefaultDebounce = 500 * time.Millisecond

// BuildFunc is invoked after a debounced change. Errors are logged and the
// watcher keeps running.
type BuildFunc func(ctx context.Context) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for change and rebuild events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFilter restricts rebuilds to events whose absolute path satisfies match.
func WithFilter(match func(path string) bool) Option {
	return func(w *Watcher) {
		w.match = match
	}
}

// Watcher monitors directories (non-recursively) and calls a BuildFunc.
type Watcher struct {
	build    BuildFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	match    func(path string) bool
}

// New creates a watcher; call Add for each directory before Run.
func New(build BuildFunc, opts ...Option) (*Watcher, error) {
	if build == nil {
		return nil, fmt.Errorf("build function is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		build:    build,
		watcher:  fw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching dir.
func (w *Watcher) Add(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path: %w", err)
	}
	if err := w.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", abs, err)
	}
	w.logger.Debug("Watching directory", logfields.Path(abs))
	return nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			if event.Has(fsnotify.Create) {
				w.watchNewDir(event.Name)
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logfields.Error(err))
		case <-timer.C:
			w.rebuild(ctx)
		}
	}
}

// watchNewDir adds path when it is a directory, so files created in it later
// (Resources/CNAME after Resources/) are seen.
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory", logfields.Path(path), logfields.Error(err))
		return
	}
	w.logger.Debug("Watching directory", logfields.Path(path))
}

func (w *Watcher) rebuild(ctx context.Context) {
	start := time.Now()
	if err := w.build(ctx); err != nil {
		w.logger.Error("Rebuild failed", logfields.Error(err))
		return
	}
	w.logger.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	// Hidden files cover editor swap files and our own atomic-write temp files.
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return w.match == nil || w.match(event.Name)
}
