package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

const namespace = "scarlettcfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   *prom.HistogramVec
	runOutcomes   *prom.CounterVec
	invocations   *prom.HistogramVec
	reads         *prom.CounterVec
	writes        *prom.CounterVec
	controls      prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg. A nil
// registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of discover, apply and save stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total duration of a CLI command",
			Buckets:   prom.DefBuckets,
		}, []string{"command"}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "CLI command outcomes by final status",
		}, []string{"command", "result"}),
		invocations: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "amixer_invocation_duration_seconds",
			Help:      "Duration of amixer invocations by verb",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"verb", "result"}),
		reads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "control_reads_total",
			Help:      "Control value reads by control type",
		}, []string{"kind"}),
		writes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "control_writes_total",
			Help:      "Control value writes by result",
		}, []string{"result"}),
		controls: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "discovered_controls",
			Help:      "Number of controls classified by the last discovery",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcomes,
		pr.invocations, pr.reads, pr.writes, pr.controls)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(command string, result ResultLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(command, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveInvocation(verb string, d time.Duration, success bool) {
	if p == nil || p.invocations == nil {
		return
	}
	p.invocations.WithLabelValues(verb, successLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncControlRead(kind string) {
	if p == nil || p.reads == nil {
		return
	}
	p.reads.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncControlWrite(success bool) {
	if p == nil || p.writes == nil {
		return
	}
	p.writes.WithLabelValues(successLabel(success)).Inc()
}

func (p *PrometheusRecorder) SetDiscoveredControls(n int) {
	if p == nil || p.controls == nil {
		return
	}
	p.controls.Set(float64(n))
}

func successLabel(success bool) string {
	if success {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
