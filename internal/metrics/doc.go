// Package metrics provides observability hooks for scarlettcfg runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	client := amixer.NewClient(card, amixer.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics textfile is configured, the CLI swaps in a PrometheusRecorder
// backed by its own registry and writes that registry with WriteTextfile after
// the run, for pickup by the node_exporter textfile collector. A one-shot CLI
// has no scrape endpoint of its own.
package metrics
