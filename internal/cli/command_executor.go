// Package cli runs the scarlettcfg commands against a control surface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/scarlettcfg/internal/amixer"
	"git.home.luguber.info/inful/scarlettcfg/internal/config"
	"git.home.luguber.info/inful/scarlettcfg/internal/document"
	"git.home.luguber.info/inful/scarlettcfg/internal/foundation"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/metrics"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
	"git.home.luguber.info/inful/scarlettcfg/internal/writer"
)

// Stage names used for logging and metrics.
const (
	StageDiscover = "discover"
	StageApply    = "apply"
	StageSave     = "save"
)

// Surface is the hardware side of a run: something controls can be read from
// and written to.
type Surface interface {
	mixer.ControlReader
	writer.ControlWriter
}

// SurfaceFactory builds the surface for a run.
type SurfaceFactory func(cfg *config.Config, rec metrics.Recorder) Surface

// AmixerSurface is the production SurfaceFactory.
func AmixerSurface(cfg *config.Config, rec metrics.Recorder) Surface {
	return amixer.NewClient(cfg.Device.Card,
		amixer.WithBinary(cfg.Device.Amixer),
		amixer.WithRecorder(rec))
}

// CommandExecutor executes the CLI commands.
type CommandExecutor interface {
	ExecuteDump(ctx context.Context, req DumpRequest) foundation.Result[DumpResponse, error]
	ExecuteLoad(ctx context.Context, req LoadRequest) foundation.Result[LoadResponse, error]
	ExecutePlan(ctx context.Context, req PlanRequest) foundation.Result[PlanResponse, error]
}

// Request/Response types for each command

type DumpRequest struct {
	RunID string
	// OutputPath receives the document; when empty it is written to Stdout.
	OutputPath string
	Stdout     io.Writer
}

type DumpResponse struct {
	RunID    string
	Document *document.Document
	Path     string
	Duration time.Duration
}

type LoadRequest struct {
	RunID string
	Path  string
}

type LoadResponse struct {
	RunID    string
	Writes   int
	Duration time.Duration
}

type PlanRequest struct {
	RunID string
	Path  string
}

type PlanResponse struct {
	RunID        string
	Instructions []writer.Instruction
	Duration     time.Duration
}

// DefaultCommandExecutor implements CommandExecutor.
type DefaultCommandExecutor struct {
	cfg        *config.Config
	newSurface SurfaceFactory
	recorder   metrics.Recorder
}

// NewCommandExecutor creates an executor that talks to the card described by cfg.
func NewCommandExecutor(cfg *config.Config) *DefaultCommandExecutor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &DefaultCommandExecutor{
		cfg:        cfg,
		newSurface: AmixerSurface,
		recorder:   metrics.NoopRecorder{},
	}
}

// WithSurfaceFactory allows injecting a fake control surface (for testing).
func (e *DefaultCommandExecutor) WithSurfaceFactory(f SurfaceFactory) *DefaultCommandExecutor {
	e.newSurface = f
	return e
}

// WithRecorder sets the metrics recorder.
func (e *DefaultCommandExecutor) WithRecorder(r metrics.Recorder) *DefaultCommandExecutor {
	if r != nil {
		e.recorder = r
	}
	return e
}

func (e *DefaultCommandExecutor) ExecuteDump(ctx context.Context, req DumpRequest) foundation.Result[DumpResponse, error] {
	run := e.begin("dump", req.RunID)

	m, _, err := e.discover(ctx)
	if err != nil {
		return foundation.Err[DumpResponse](run.finish(ctx, e.recorder, err))
	}

	doc := document.FromMixer(m)
	if req.OutputPath != "" {
		err = document.WriteFile(req.OutputPath, doc)
	} else {
		out := req.Stdout
		if out == nil {
			out = os.Stdout
		}
		err = document.Encode(out, doc)
	}
	if err != nil {
		return foundation.Err[DumpResponse](run.finish(ctx, e.recorder, err))
	}
	if req.OutputPath != "" {
		slog.Info("Document written", logfields.Path(req.OutputPath))
	}

	run.finish(ctx, e.recorder, nil)
	return foundation.Ok[DumpResponse, error](DumpResponse{
		RunID:    run.id,
		Document: doc,
		Path:     req.OutputPath,
		Duration: run.elapsed(),
	})
}

func (e *DefaultCommandExecutor) ExecuteLoad(ctx context.Context, req LoadRequest) foundation.Result[LoadResponse, error] {
	run := e.begin("load", req.RunID)

	m, surface, err := e.prepare(ctx, req.Path)
	if err != nil {
		return foundation.Err[LoadResponse](run.finish(ctx, e.recorder, err))
	}

	writes := len(writer.Plan(m))
	if err := e.stage(ctx, StageSave, func() error { return writer.Save(ctx, m, surface) }); err != nil {
		return foundation.Err[LoadResponse](run.finish(ctx, e.recorder, err))
	}

	run.finish(ctx, e.recorder, nil)
	return foundation.Ok[LoadResponse, error](LoadResponse{
		RunID:    run.id,
		Writes:   writes,
		Duration: run.elapsed(),
	})
}

func (e *DefaultCommandExecutor) ExecutePlan(ctx context.Context, req PlanRequest) foundation.Result[PlanResponse, error] {
	run := e.begin("plan", req.RunID)

	m, _, err := e.prepare(ctx, req.Path)
	if err != nil {
		return foundation.Err[PlanResponse](run.finish(ctx, e.recorder, err))
	}

	plan := writer.Plan(m)
	run.finish(ctx, e.recorder, nil)
	return foundation.Ok[PlanResponse, error](PlanResponse{
		RunID:        run.id,
		Instructions: plan,
		Duration:     run.elapsed(),
	})
}

// prepare reads the document at path, discovers the hardware and applies the
// document to it.
func (e *DefaultCommandExecutor) prepare(ctx context.Context, path string) (*mixer.Mixer, Surface, error) {
	doc, err := document.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Document loaded", logfields.Path(path))

	m, surface, err := e.discover(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := e.stage(ctx, StageApply, func() error { return document.Apply(m, doc) }); err != nil {
		return nil, nil, err
	}
	return m, surface, nil
}

func (e *DefaultCommandExecutor) discover(ctx context.Context) (*mixer.Mixer, Surface, error) {
	surface := e.newSurface(e.cfg, e.recorder)
	m := mixer.New(mixer.WithUSBSyncControl(e.cfg.Device.USBSyncControl))
	if err := e.stage(ctx, StageDiscover, func() error { return mixer.Discover(ctx, m, surface) }); err != nil {
		return nil, nil, err
	}
	return m, surface, nil
}

func (e *DefaultCommandExecutor) stage(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)

	e.recorder.ObserveStageDuration(name, d)
	e.recorder.IncStageResult(name, metrics.ResultFor(err, ctx.Err() != nil))
	slog.Debug("Stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000), slog.Bool("ok", err == nil))
	return err
}

type runState struct {
	id      string
	command string
	start   time.Time
}

func (e *DefaultCommandExecutor) begin(command, id string) *runState {
	if id == "" {
		id = uuid.NewString()
	}
	slog.Debug("Command started", logfields.Command(command), logfields.RunID(id), logfields.Card(e.cfg.Device.Card))
	return &runState{id: id, command: command, start: time.Now()}
}

func (r *runState) elapsed() time.Duration { return time.Since(r.start) }

// finish records the outcome of the run and returns err unchanged.
func (r *runState) finish(ctx context.Context, rec metrics.Recorder, err error) error {
	d := r.elapsed()
	rec.ObserveRunDuration(r.command, d)
	rec.IncRunOutcome(r.command, metrics.ResultFor(err, ctx.Err() != nil))
	if err == nil {
		slog.Debug("Command completed", logfields.Command(r.command), logfields.RunID(r.id),
			logfields.DurationMS(float64(d.Microseconds())/1000))
	}
	return err
}
