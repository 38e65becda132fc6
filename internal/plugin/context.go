package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/cnamepublish/internal/metrics"
)

// PluginContext is the build context handed to every plugin of a build.
// File capabilities (File, CreateOutputFile, CopyFileToOutput) are scoped to
// SiteDir for reads and OutputDir for writes.
type PluginContext struct {
	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// Recorder receives output metrics; never nil after NewPluginContext.
	Recorder metrics.Recorder

	// SiteDir is the site root that holds Resources/ and other inputs.
	SiteDir string

	// OutputDir is where the built site is written.
	OutputDir string

	// BuildID uniquely identifies this build.
	BuildID string

	// Data is a map for plugins to share data during execution.
	// Publishers record what they wrote so later steps and the caller can inspect it.
	Data map[string]any
}

// NewPluginContext creates a new plugin context with the given services.
func NewPluginContext(
	logger *slog.Logger,
	siteDir, outputDir, buildID string,
) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Logger:    logger,
		Recorder:  metrics.NoopRecorder{},
		SiteDir:   siteDir,
		OutputDir: outputDir,
		BuildID:   buildID,
		Data:      make(map[string]any),
	}
}

// WithRecorder returns the context with r as its metrics recorder.
func (pc *PluginContext) WithRecorder(r metrics.Recorder) *PluginContext {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	pc.Recorder = r
	return pc
}

// SetValue stores value under key in Data.
func (pc *PluginContext) SetValue(key string, value any) {
	if pc.Data == nil {
		pc.Data = make(map[string]any)
	}
	pc.Data[key] = value
}

// GetStrings retrieves a string slice from the plugin data map.
// Returns nil if the key doesn't exist or is not a string slice.
func (pc *PluginContext) GetStrings(key string) []string {
	if v, ok := pc.Data[key].([]string); ok {
		return v
	}
	return nil
}

// LogInfo logs an informational message with plugin context.
func (pc *PluginContext) LogInfo(msg string, args ...any) {
	pc.Logger.Info(msg, args...)
}

// LogDebug logs a debug message with plugin context.
func (pc *PluginContext) LogDebug(msg string, args ...any) {
	pc.Logger.Debug(msg, args...)
}
