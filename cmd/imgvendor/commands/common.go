package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/imgvendor/internal/config"
)

// Global is shared state bound into every command's Run.
type Global struct {
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:".imgvendor.yaml" env:"IMGVENDOR_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json)" env:"IMGVENDOR_LOG_FORMAT" placeholder:"text|json"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run  RunCmd  `cmd:"" default:"withargs" help:"Download remote images referenced by Markdown documents and rewrite the links"`
	Scan ScanCmd `cmd:"" help:"List remote image references without downloading anything"`
	Init InitCmd `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once on the bound
// Global's stderr.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(NewLogger(g.stderr(), level, config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

// LoadConfig reads the configuration file, applies flag overrides and
// reconfigures logging from the result. The default path may be absent;
// an explicitly named file must exist.
func (c *CLI) LoadConfig(g *Global, o config.Overrides) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == config.DefaultPath {
		cfg, err = config.LoadOrDefault(c.Config)
	} else {
		cfg, err = config.Load(c.Config)
	}
	if err != nil {
		return nil, err
	}

	if c.Verbose {
		o.LogLevel = string(config.LogLevelDebug)
	}
	if c.LogFormat != "" {
		o.LogFormat = c.LogFormat
	}
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.SetDefault(NewLogger(g.stderr(), cfg.Logging.Level, cfg.Logging.Format))
	return cfg, nil
}

// NewLogger builds a slog logger for the given level and format.
func NewLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
