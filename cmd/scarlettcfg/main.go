package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/scarlettcfg/cmd/scarlettcfg/commands"
	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], &commands.Global{Stdout: os.Stdout, Stderr: os.Stderr}))
}

// run parses args, executes the selected command and returns the exit status.
func run(args []string, g *commands.Global) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := 0
	exited := false
	var root commands.CLI
	adapter := errors.NewCLIErrorAdapter(false, nil).
		WithOutput(stderrOf(g)).
		WithExit(func(c int) { code = c })

	parser, err := kong.New(&root,
		kong.Name("scarlettcfg"),
		kong.Description("Capture and restore Focusrite Scarlett mixer settings as YAML."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdoutOf(g), stderrOf(g)),
		kong.Exit(func(c int) { code, exited = c, true }),
		kong.Bind(g),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	)
	if err != nil {
		adapter.HandleError(errors.InternalError("invalid command line definition").WithCause(err).Build())
		return code
	}

	kctx, err := parser.Parse(args)
	// --help and --version print and request an exit during parsing.
	if exited {
		return code
	}
	if err != nil {
		adapter.HandleError(err)
		return code
	}

	adapter = errors.NewCLIErrorAdapter(root.Verbose, g.Logger).
		WithOutput(stderrOf(g)).
		WithExit(func(c int) { code = c })

	err = kctx.Run()
	if ferr := g.Flush(); ferr != nil {
		slog.Warn("Failed to write metrics", logfields.Error(ferr))
	}
	adapter.HandleError(err)
	return code
}

func stdoutOf(g *commands.Global) io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func stderrOf(g *commands.Global) io.Writer {
	if g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}
