// Package metrics records build and plugin metrics for cnamepublish.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	runner := pipeline.NewRunner(pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// A one-shot CLI process has nothing to scrape, so the Prometheus registry is
// exported after the build with WriteTextfile for the node_exporter textfile
// collector.
package metrics
