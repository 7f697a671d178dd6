package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOptimizerRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOptimizerRun("min-improvement", 12, 0.02)
	m.ObserveOptimizerRun("min-improvement", 8, 0.01)
	m.ObserveOptimizerRun("max-iterations", 100, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.optimizerRuns.WithLabelValues("min-improvement")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.optimizerRuns.WithLabelValues("max-iterations")))
}

func TestObserveDataQualityClamp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDataQualityClamp()
	m.ObserveDataQualityClamp()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dataQualityClamps))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOptimizerRun("no-gradient", 1, 0)
		m.ObserveDataQualityClamp()
	})
}
