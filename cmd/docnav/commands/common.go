package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagenav"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Write an example configuration and starter content"`
	Resolve ResolveCmd `cmd:"" help:"Print the resolved navigation of one page"`
	Routes  RoutesCmd  `cmd:"" help:"List the pages of the content directory"`
	Serve   ServeCmd   `cmd:"" help:"Serve the navigation API with optional live reload"`
}

// AfterApply runs after flag parsing; setup logging once. Commands that load
// a config refine it with configureLogging.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// configureLogging applies the logging section of cfg. -v always wins.
func (c *CLI) configureLogging(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// buildFromConfig scans the content directory of cfg and returns a ready
// navigation builder.
func buildFromConfig(cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) (*pagenav.Builder, error) {
	s, err := site.Scan(cfg.Site.ContentDir, site.ScanOptions{
		Page:   docmodel.Options{Outline: cfg.Markdown.OutlineOptions()},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return pagenav.NewBuilder(cfg, s,
		pagenav.WithLogger(logger),
		pagenav.WithRecorder(rec),
	), nil
}
