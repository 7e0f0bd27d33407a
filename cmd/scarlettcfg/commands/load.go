package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/scarlettcfg/internal/cli"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
)

// LoadCmd implements the 'load' command.
type LoadCmd struct {
	Path string `arg:"" help:"YAML document to apply"`
}

func (l *LoadCmd) Run(ctx context.Context, g *Global) error {
	resp, err := g.Executor.ExecuteLoad(ctx, cli.LoadRequest{RunID: g.RunID, Path: l.Path}).ToTuple()
	if err != nil {
		return err
	}
	slog.Info("Mixer configured",
		logfields.Path(l.Path),
		logfields.Count(resp.Writes),
		logfields.DurationMS(float64(resp.Duration.Milliseconds())))
	return nil
}
