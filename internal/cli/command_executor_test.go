package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scarlettcfg/internal/config"
	"git.home.luguber.info/inful/scarlettcfg/internal/document"
	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/metrics"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer/mixertest"
)

type stageRecorder struct {
	metrics.NoopRecorder
	stages   []string
	results  map[string]metrics.ResultLabel
	outcomes map[string]metrics.ResultLabel
}

func newStageRecorder() *stageRecorder {
	return &stageRecorder{results: map[string]metrics.ResultLabel{}, outcomes: map[string]metrics.ResultLabel{}}
}

func (r *stageRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	r.stages = append(r.stages, stage)
}

func (r *stageRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.results[stage] = result
}

func (r *stageRecorder) IncRunOutcome(command string, result metrics.ResultLabel) {
	r.outcomes[command] = result
}

func newTestExecutor(s *mixertest.Surface, rec metrics.Recorder) *DefaultCommandExecutor {
	return NewCommandExecutor(config.Default()).
		WithSurfaceFactory(func(*config.Config, metrics.Recorder) Surface { return s }).
		WithRecorder(rec)
}

func dumpTo(t *testing.T, s *mixertest.Surface, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "state.yaml")
	res := newTestExecutor(s, nil).ExecuteDump(context.Background(), DumpRequest{OutputPath: path})
	require.True(t, res.IsOk(), "%v", res.UnwrapErr())
	return path
}

func TestExecuteDumpToStdout(t *testing.T) {
	rec := newStageRecorder()
	var out bytes.Buffer

	res := newTestExecutor(mixertest.Scarlett(), rec).
		ExecuteDump(context.Background(), DumpRequest{RunID: "run-1", Stdout: &out})
	require.True(t, res.IsOk())

	resp := res.Unwrap()
	assert.Equal(t, "run-1", resp.RunID)
	assert.Empty(t, resp.Path)
	require.NotNil(t, resp.Document.MasterGain)
	assert.Equal(t, 100, *resp.Document.MasterGain.Volume)
	assert.Contains(t, out.String(), "sample-clock-source: Internal")

	assert.Equal(t, []string{StageDiscover}, rec.stages)
	assert.Equal(t, metrics.ResultSuccess, rec.outcomes["dump"])
}

func TestExecuteDumpGeneratesRunID(t *testing.T) {
	res := newTestExecutor(mixertest.Scarlett(), nil).
		ExecuteDump(context.Background(), DumpRequest{Stdout: &bytes.Buffer{}})
	require.True(t, res.IsOk())
	assert.Len(t, res.Unwrap().RunID, 36)
}

func TestExecuteDumpToFile(t *testing.T) {
	path := dumpTo(t, mixertest.Scarlett(), t.TempDir())

	doc, err := document.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Matrix, 2)
}

func TestExecuteLoad(t *testing.T) {
	dir := t.TempDir()
	path := dumpTo(t, mixertest.Scarlett(), dir)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(data), "volume: 100", "volume: 64", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o600))

	s := mixertest.Scarlett()
	rec := newStageRecorder()
	res := newTestExecutor(s, rec).ExecuteLoad(context.Background(), LoadRequest{Path: path})
	require.True(t, res.IsOk(), "%v", res.UnwrapErr())
	assert.Equal(t, 20, res.Unwrap().Writes)

	writes := s.Writes()
	require.Len(t, writes, 20)
	h, _ := s.Handle("Master Playback Volume")
	assert.Equal(t, mixertest.Write{Handle: h, Value: "64"}, writes[2])

	assert.Equal(t, []string{StageDiscover, StageApply, StageSave}, rec.stages)
	assert.Equal(t, metrics.ResultSuccess, rec.outcomes["load"])
}

func TestExecutePlanDoesNotWrite(t *testing.T) {
	path := dumpTo(t, mixertest.Scarlett(), t.TempDir())

	s := mixertest.Scarlett()
	res := newTestExecutor(s, nil).ExecutePlan(context.Background(), PlanRequest{Path: path})
	require.True(t, res.IsOk())
	assert.Len(t, res.Unwrap().Instructions, 20)
	assert.Empty(t, s.Writes())
}

func TestExecuteLoadFailures(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		s := mixertest.Scarlett()
		res := newTestExecutor(s, nil).ExecuteLoad(context.Background(), LoadRequest{Path: filepath.Join(t.TempDir(), "nope.yaml")})
		require.True(t, res.IsErr())
		assert.Zero(t, s.Reads(), "hardware is not touched when the document cannot be read")
	})

	t.Run("unknown row", func(t *testing.T) {
		dir := t.TempDir()
		path := dumpTo(t, mixertest.Scarlett(), dir)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), `number: "02"`, `number: "99"`, 1)), 0o600))

		rec := newStageRecorder()
		s := mixertest.Scarlett()
		res := newTestExecutor(s, rec).ExecuteLoad(context.Background(), LoadRequest{Path: path})
		require.True(t, res.IsErr())
		assert.True(t, errors.HasCategory(res.UnwrapErr(), errors.CategoryUnknownKey))
		assert.Empty(t, s.Writes())
		assert.Equal(t, metrics.ResultFailed, rec.results[StageApply])
		assert.Equal(t, metrics.ResultFailed, rec.outcomes["load"])
	})

	t.Run("write failure", func(t *testing.T) {
		path := dumpTo(t, mixertest.Scarlett(), t.TempDir())
		s := mixertest.Scarlett()
		h, _ := s.Handle("Sample Clock Source")
		boom := stderrors.New("device busy")
		s.WriteErr[h] = boom

		res := newTestExecutor(s, nil).ExecuteLoad(context.Background(), LoadRequest{Path: path})
		require.True(t, res.IsErr())
		assert.ErrorIs(t, res.UnwrapErr(), boom)
		assert.Len(t, s.Writes(), 1)
	})
}

func TestExecuteDumpUnknownControl(t *testing.T) {
	s := mixertest.Scarlett()
	s.AddBoolean("Phantom Power Switch", true)

	rec := newStageRecorder()
	res := newTestExecutor(s, rec).ExecuteDump(context.Background(), DumpRequest{Stdout: &bytes.Buffer{}})
	require.True(t, res.IsErr())
	assert.True(t, errors.HasCategory(res.UnwrapErr(), errors.CategoryUnknownControl))
	assert.Equal(t, metrics.ResultFailed, rec.results[StageDiscover])
}

func TestAmixerSurface(t *testing.T) {
	cfg := config.Default()
	cfg.Device.Card = "3"
	s := AmixerSurface(cfg, metrics.NoopRecorder{})
	require.NotNil(t, s)
}
