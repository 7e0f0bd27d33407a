package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/scarlettcfg/internal/cli"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Path string `arg:"" help:"YAML document to apply"`
}

func (p *PlanCmd) Run(ctx context.Context, g *Global) error {
	resp, err := g.Executor.ExecutePlan(ctx, cli.PlanRequest{RunID: g.RunID, Path: p.Path}).ToTuple()
	if err != nil {
		return err
	}
	out := g.stdout()
	for _, in := range resp.Instructions {
		if _, err := fmt.Fprintf(out, "numid=%-4d %-40s %s\n", in.Handle, in.Slot, in.Value); err != nil {
			return err
		}
	}
	return nil
}
