package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePluginDuration("generate-cname", 2*time.Millisecond)
	pr.IncPluginResult("generate-cname", ResultSuccess)
	pr.IncPluginResult("add-cname", ResultFailed)
	pr.ObserveBuildDuration(5 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeFailed)
	pr.ObserveOutputBytes("CNAME", 19)

	require.InDelta(t, 1, testutil.ToFloat64(pr.pluginResults.WithLabelValues("generate-cname", "success")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.pluginResults.WithLabelValues("add-cname", "failed")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("failed")), 0)
	require.InDelta(t, 19, testutil.ToFloat64(pr.outputBytes.WithLabelValues("CNAME")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObservePluginDuration("x", time.Second)
		pr.IncPluginResult("x", ResultSuccess)
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(BuildOutcomeSuccess)
		pr.ObserveOutputBytes("CNAME", 1)
	})
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "cnamepublish.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `cnamepublish_build_outcomes_total{outcome="success"} 1`), string(data))
}
