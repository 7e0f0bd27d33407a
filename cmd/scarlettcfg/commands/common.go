package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/scarlettcfg/internal/cli"
	"git.home.luguber.info/inful/scarlettcfg/internal/config"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/metrics"
)

// Global carries state shared by all subcommands. It is filled in by AfterApply.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer

	// Surface replaces the amixer client when set (tests).
	Surface cli.SurfaceFactory

	Config   *config.Config
	RunID    string
	Logger   *slog.Logger
	Executor cli.CommandExecutor

	registry *prom.Registry
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"scarlettcfg.yaml"`
	Card        string           `help:"Sound card passed to amixer -c (overrides device.card)"`
	Amixer      string           `help:"amixer executable (overrides device.amixer)"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Dump DumpCmd `cmd:"" default:"1" help:"Print the current mixer state as YAML (default)"`
	Load LoadCmd `cmd:"" help:"Apply a YAML document to the mixer"`
	Plan PlanCmd `cmd:"" help:"Show the control writes load would perform without writing"`
}

// AfterApply runs after flag parsing: it loads the configuration and sets up
// logging, metrics and the executor once for whichever command runs.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config, c.Config != config.DefaultPath)
	if err != nil {
		return err
	}
	if c.Card != "" {
		cfg.Device.Card = c.Card
	}
	if c.Amixer != "" {
		cfg.Device.Amixer = c.Amixer
	}
	if c.MetricsFile != "" {
		cfg.Metrics.Textfile = c.MetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	stderr := g.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(stderr, opts)
	}

	g.RunID = uuid.NewString()
	g.Logger = slog.New(handler).With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	g.Config = cfg

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Textfile != "" {
		g.registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(g.registry)
	}

	executor := cli.NewCommandExecutor(cfg).WithRecorder(recorder)
	if g.Surface != nil {
		executor = executor.WithSurfaceFactory(g.Surface)
	}
	g.Executor = executor
	return nil
}

// Flush writes the metrics textfile when one is configured.
func (g *Global) Flush() error {
	if g.registry == nil || g.Config == nil {
		return nil
	}
	if err := metrics.WriteTextfile(g.Config.Metrics.Textfile, g.registry); err != nil {
		return err
	}
	slog.Debug("Metrics written", logfields.Path(g.Config.Metrics.Textfile))
	return nil
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}
