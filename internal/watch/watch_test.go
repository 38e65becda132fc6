package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, builds *atomic.Int32, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{
		WithDebounce(20 * time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	w, err := New(func(context.Context) error {
		builds.Add(1)
		return nil
	}, opts...)
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return w
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	startWatcher(t, dir, &builds)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CNAME"), []byte("example.com"), 0o644))

	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	startWatcher(t, dir, &builds, WithDebounce(200*time.Millisecond))

	path := filepath.Join(dir, "CNAME")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("example.com"), 0o644))
	}

	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())
}

func TestWatcherFollowsNewDirectory(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	startWatcher(t, dir, &builds)

	resources := filepath.Join(dir, "Resources")
	require.NoError(t, os.Mkdir(resources, 0o755))
	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(resources, "CNAME"), []byte("example.com"), 0o644))
	assert.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewRequiresBuildFunc(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := New(func(context.Context) error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	require.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "Output")
	w := &Watcher{match: func(path string) bool { return filepath.Dir(path) != output }}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: filepath.Join(dir, "CNAME"), Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: filepath.Join(dir, "cnamepublish.yaml"), Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: filepath.Join(dir, "CNAME"), Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(dir, "CNAME"), Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join(dir, ".CNAME.123.tmp"), Op: fsnotify.Create}, false},
		{"filtered", fsnotify.Event{Name: filepath.Join(output, "CNAME"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestFilterSuppressesRebuild(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	startWatcher(t, dir, &builds, WithFilter(func(path string) bool {
		return filepath.Base(path) == "CNAME"
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.prom"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), builds.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CNAME"), []byte("example.com"), 0o644))
	assert.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}
