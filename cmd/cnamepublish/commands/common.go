package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cnamepublish/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// NewGlobal returns the process-wide command context.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout}
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"cnamepublish.yaml" env:"CNAMEPUBLISH_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json); defaults to the configured format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Run the plugins listed in the configuration file"`
	Generate GenerateCmd `cmd:"" help:"Write a CNAME file from the given domain names"`
	Add      AddCmd      `cmd:"" help:"Copy Resources/CNAME from the site into the output directory"`
	Check    CheckCmd    `cmd:"" help:"Validate and lint domain names without writing output"`
	Watch    WatchCmd    `cmd:"" help:"Build, then rebuild whenever the configuration or resources change"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Plugins  PluginsCmd  `cmd:"" help:"List registered plugins"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	if c.LogFormat != "" {
		format, err := config.ParseLogFormat(c.LogFormat)
		if err != nil {
			return err
		}
		c.LogFormat = string(format)
	}
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, config.LogFormat(c.LogFormat)))
	return nil
}

// configureLogging applies the configuration's logging section. Flags win:
// --verbose pins the level to debug and --log-format pins the format.
func (c *CLI) configureLogging(g *Global, cfg *config.Config) *slog.Logger {
	level := cfg.Monitoring.Logging.Level
	if c.Verbose {
		level = config.LogLevelDebug
	}
	format := cfg.Monitoring.Logging.Format
	if c.LogFormat != "" {
		format = config.LogFormat(c.LogFormat)
	}
	logger := newLogger(os.Stderr, level, format)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return logger
}

func newLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// signalContext is canceled on SIGINT or SIGTERM so an interrupted build
// reports the canceled exit code.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
