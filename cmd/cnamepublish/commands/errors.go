package commands

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/cnamepublish/internal/foundation/errors"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
)

// ExitCode reports err on stderr and returns the process exit code; nil yields 0.
func ExitCode(err error, verbose bool, logger *slog.Logger) int {
	if err == nil {
		return 0
	}
	return ferrors.NewCLIErrorAdapter(verbose, logger).WithOutput(os.Stderr).Report(classify(err))
}

// classify maps plugin and I/O failures onto error categories. Errors that
// already carry a classification pass through unchanged.
func classify(err error) error {
	if err == nil || ferrors.IsClassified(err) {
		return err
	}

	var genErr *cname.GenerationError
	var pluginErr *plugin.PluginError
	switch {
	case errors.As(err, &genErr):
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid domain names").
			WithContext("kind", genErr.Kind.String()).UserAction().Build()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ferrors.CanceledError("build canceled").WithCause(err).Build()
	case errors.Is(err, fs.ErrNotExist):
		return ferrors.NotFoundError("required file not found").WithCause(err).Build()
	case errors.Is(err, plugin.ErrNotText), errors.Is(err, plugin.ErrInvalidPath):
		return ferrors.ValidationError("unusable input file").WithCause(err).Build()
	case errors.Is(err, plugin.ErrPluginNotFound):
		return ferrors.PluginError("unknown plugin").WithCause(err).UserAction().Build()
	case errors.As(err, &pluginErr) && pluginErr.Operation != "execute":
		return ferrors.PluginError("plugin setup failed").WithCause(err).
			WithContext("plugin", pluginErr.PluginName).Build()
	case errors.As(err, &pluginErr):
		return ferrors.FileSystemError("build step failed").WithCause(err).
			WithContext("plugin", pluginErr.PluginName).Build()
	default:
		return ferrors.BuildError("build failed").WithCause(err).Build()
	}
}
