package analyzer

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/foodsystems-lab/vulnerability-optimizer/internal/calibration"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/config"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/gap"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/logging"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/metrics"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/solver"
)

// Analyzer runs the scoring pipeline and, on request, the budget solver.
type Analyzer struct {
	cfg        *config.Config
	tables     config.CalibrationTables
	solverOpts solver.Options
	log        logr.Logger
	metrics    *metrics.Metrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used by the pipeline and the solver.
func WithLogger(log logr.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// WithMetrics wires a metrics recorder into the pipeline.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithCalibrationTables substitutes the calibration lookup tables.
func WithCalibrationTables(t config.CalibrationTables) Option {
	return func(a *Analyzer) { a.tables = t }
}

// WithSolverOptions overrides the solver's default tuning.
func WithSolverOptions(opts solver.Options) Option {
	return func(a *Analyzer) { a.solverOpts = opts }
}

// New creates an Analyzer. A nil config selects the documented defaults.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Analyzer{
		cfg:    cfg,
		tables: config.DefaultCalibrationTables(),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.solverOpts.Log.GetSink() == nil {
		a.solverOpts.Log = a.log
	}
	return a
}

// Analysis is a fully scored dataset plus its system index.
type Analysis struct {
	// Dataset carries AverageGap, Sensitivity, Weight and Vulnerability
	// populated for every component.
	Dataset *core.Dataset

	// Index is the system vulnerability index at the dataset's allocations.
	Index float64
}

// Report extends an Analysis with the solver's reallocation and the derived
// efficiency metrics.
type Report struct {
	Analysis

	// Optimization describes the solver run. The optimized allocations and
	// index live here; Analysis keeps the pre-optimization view.
	Optimization *solver.Result

	// Optimized is the dataset at the optimized allocations.
	Optimized *core.Dataset

	// Efficiency compares original and optimized index. Check IsDefined
	// before using the ratio fields.
	Efficiency solver.Efficiency
}

// Score runs the scoring pipeline on a dataset snapshot: indicator gaps,
// component gap aggregation, sensitivity estimation, weight assignment and
// vulnerability scoring. The input is never mutated.
func (a *Analyzer) Score(ctx context.Context, ds *core.Dataset) (*Analysis, error) {
	out := a.computeGaps(ds)
	out = calibration.EstimateSensitivity(out, a.tables)
	out = calibration.AssignWeights(out, a.cfg, a.tables)

	for _, comp := range out.Components {
		comp.Vulnerability = core.Vulnerability(comp.AverageGap, comp.Allocation, comp.Sensitivity)
	}
	index := core.SystemIndex(out)

	a.log.V(logging.DEBUG).Info("Scored dataset",
		"components", len(out.Components),
		"index", index)

	return &Analysis{Dataset: out, Index: index}, nil
}

// OptimizeBudget scores the dataset and searches for a budget reallocation
// that lowers the system index.
func (a *Analyzer) OptimizeBudget(ctx context.Context, ds *core.Dataset) (*Report, error) {
	analysis, err := a.Score(ctx, ds)
	if err != nil {
		return nil, err
	}

	optimized, result, err := solver.Optimize(analysis.Dataset, a.solverOpts)
	if err != nil {
		return nil, err
	}

	improvement := result.OriginalIndex - result.OptimizedIndex
	a.metrics.ObserveOptimizerRun(result.Reason, result.Iterations, improvement)
	a.log.Info("Budget optimization complete",
		"originalIndex", result.OriginalIndex,
		"optimizedIndex", result.OptimizedIndex,
		"iterations", result.Iterations,
		"reason", result.Reason)

	return &Report{
		Analysis:     *analysis,
		Optimization: result,
		Optimized:    optimized,
		Efficiency:   solver.ComputeEfficiency(result.OriginalIndex, result.OptimizedIndex),
	}, nil
}

// computeGaps derives indicator gaps and the per-component average gap on a
// fresh snapshot. Components without indicators keep any pre-computed
// average gap supplied by the data loader. Negative allocations are upstream
// data errors: they are clamped to zero and surfaced as data-quality
// signals, never propagated as failures.
func (a *Analyzer) computeGaps(ds *core.Dataset) *core.Dataset {
	out := ds.Clone()
	for _, id := range out.ComponentIDs() {
		comp := out.Components[id]

		if comp.Allocation < 0 {
			a.log.Info("Clamping negative allocation to zero",
				"component", id,
				"allocation", comp.Allocation)
			a.metrics.ObserveDataQualityClamp()
			comp.Allocation = 0
		}

		if len(comp.Indicators) == 0 {
			continue
		}

		preferHigher := a.cfg.PreferHigher(id)
		for i := range comp.Indicators {
			comp.Indicators[i].Gap = gap.Calculate(
				comp.Indicators[i].Value,
				comp.Indicators[i].Benchmark,
				preferHigher)
		}
		comp.AverageGap = gap.AggregateComponent(comp.Indicators, a.cfg.GapCalculation, id)
	}
	return out
}
