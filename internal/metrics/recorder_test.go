package metrics

import "time"

// testRecorder counts calls; pipeline tests use their own copy of this shape.
type testRecorder struct {
	pluginDurations map[string]int
	pluginResults   map[string]map[ResultLabel]int
	buildDurations  int
	buildOutcomes   map[BuildOutcomeLabel]int
	outputBytes     map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		pluginDurations: map[string]int{},
		pluginResults:   map[string]map[ResultLabel]int{},
		buildOutcomes:   map[BuildOutcomeLabel]int{},
		outputBytes:     map[string]int{},
	}
}

func (t *testRecorder) ObservePluginDuration(plugin string, _ time.Duration) {
	t.pluginDurations[plugin]++
}
func (t *testRecorder) IncPluginResult(plugin string, result ResultLabel) {
	m, ok := t.pluginResults[plugin]
	if !ok {
		m = map[ResultLabel]int{}
		t.pluginResults[plugin] = m
	}
	m[result]++
}
func (t *testRecorder) ObserveBuildDuration(_ time.Duration)        { t.buildDurations++ }
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel)   { t.buildOutcomes[outcome]++ }
func (t *testRecorder) ObserveOutputBytes(path string, n int)       { t.outputBytes[path] = n }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
