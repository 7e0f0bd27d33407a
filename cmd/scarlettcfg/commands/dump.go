package commands

import (
	"context"

	"git.home.luguber.info/inful/scarlettcfg/internal/cli"
)

// DumpCmd implements the 'dump' command.
type DumpCmd struct {
	Output string `short:"o" help:"Write the document to this file instead of stdout"`
}

func (d *DumpCmd) Run(ctx context.Context, g *Global) error {
	_, err := g.Executor.ExecuteDump(ctx, cli.DumpRequest{
		RunID:      g.RunID,
		OutputPath: d.Output,
		Stdout:     g.stdout(),
	}).ToTuple()
	return err
}
