package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	pluginDuration *prom.HistogramVec
	pluginResults  *prom.CounterVec
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	outputBytes    *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the cnamepublish metrics on reg.
// A fresh registry is created when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		pluginDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "cnamepublish",
			Name:      "plugin_duration_seconds",
			Help:      "Duration of individual plugin executions",
			Buckets:   prom.DefBuckets,
		}, []string{"plugin"}),
		pluginResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cnamepublish",
			Name:      "plugin_results_total",
			Help:      "Plugin result counts by outcome",
		}, []string{"plugin", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "cnamepublish",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cnamepublish",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		outputBytes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "cnamepublish",
			Name:      "output_file_bytes",
			Help:      "Size of the last written output file",
		}, []string{"path"}),
	}
	reg.MustRegister(pr.pluginDuration, pr.pluginResults, pr.buildDuration, pr.buildOutcome, pr.outputBytes)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObservePluginDuration(plugin string, d time.Duration) {
	if p == nil {
		return
	}
	p.pluginDuration.WithLabelValues(plugin).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPluginResult(plugin string, result ResultLabel) {
	if p == nil {
		return
	}
	p.pluginResults.WithLabelValues(plugin, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveOutputBytes(path string, n int) {
	if p == nil {
		return
	}
	p.outputBytes.WithLabelValues(path).Set(float64(n))
}

// WriteTextfile exports the current registry in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
