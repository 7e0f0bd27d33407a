package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// ResultFor maps an error to its result label.
func ResultFor(err error, canceled bool) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case canceled:
		return ResultCanceled
	default:
		return ResultFailed
	}
}

// Recorder defines observability hooks for a run. Implementations may forward to
// Prometheus or anything else; NoopRecorder discards everything.
type Recorder interface {
	// ObserveStageDuration records the duration of discover, apply or save.
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	// ObserveRunDuration records the total duration of one CLI command.
	ObserveRunDuration(command string, d time.Duration)
	IncRunOutcome(command string, result ResultLabel)
	// ObserveInvocation records one external amixer invocation by verb.
	ObserveInvocation(verb string, d time.Duration, success bool)
	IncControlRead(kind string)
	IncControlWrite(success bool)
	SetDiscoveredControls(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)    {}
func (NoopRecorder) IncStageResult(string, ResultLabel)            {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)      {}
func (NoopRecorder) IncRunOutcome(string, ResultLabel)             {}
func (NoopRecorder) ObserveInvocation(string, time.Duration, bool) {}
func (NoopRecorder) IncControlRead(string)                         {}
func (NoopRecorder) IncControlWrite(bool)                          {}
func (NoopRecorder) SetDiscoveredControls(int)                     {}
