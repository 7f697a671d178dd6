// Package metrics exposes prometheus instrumentation for the analysis
// pipeline: optimizer run outcomes and upstream data-quality corrections.
//
// All record methods are nil-receiver safe so instrumented code paths work
// unchanged when no recorder is wired in.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline's prometheus collectors.
type Metrics struct {
	optimizerRuns       *prometheus.CounterVec
	optimizerIterations prometheus.Histogram
	indexImprovement    prometheus.Histogram
	dataQualityClamps   prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		optimizerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fsva_optimizer_runs_total",
			Help: "Optimization runs by stopping reason.",
		}, []string{"reason"}),
		optimizerIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fsva_optimizer_iterations",
			Help:    "Descent iterations per optimization run.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		indexImprovement: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fsva_optimizer_index_improvement",
			Help:    "Absolute system index reduction per optimization run.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 10, 6),
		}),
		dataQualityClamps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsva_data_quality_clamps_total",
			Help: "Upstream data errors corrected by clamping (e.g. negative allocations).",
		}),
	}
	reg.MustRegister(m.optimizerRuns, m.optimizerIterations, m.indexImprovement, m.dataQualityClamps)
	return m
}

// ObserveOptimizerRun records the outcome of one optimization run.
func (m *Metrics) ObserveOptimizerRun(reason string, iterations int, improvement float64) {
	if m == nil {
		return
	}
	m.optimizerRuns.WithLabelValues(reason).Inc()
	m.optimizerIterations.Observe(float64(iterations))
	if improvement > 0 {
		m.indexImprovement.Observe(improvement)
	}
}

// ObserveDataQualityClamp records one clamped data error.
func (m *Metrics) ObserveDataQualityClamp() {
	if m == nil {
		return
	}
	m.dataQualityClamps.Inc()
}
