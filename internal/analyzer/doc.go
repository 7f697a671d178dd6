// Package analyzer orchestrates the vulnerability analysis pipeline.
//
// The analyzer coordinates the stage functions into the full computation:
//
//	Indicator Gaps → Component Aggregation → Sensitivity → Weights → Scoring → Solver
//	     (gap)            (gap)              (calibration) (calibration) (core)  (solver)
//
// Each stage takes an immutable dataset snapshot and produces a new one;
// no component record is shared across stage boundaries. The pipeline is
// fully synchronous and performs no I/O: independent datasets may be
// analyzed concurrently with no shared mutable state.
//
// Example usage:
//
//	a := analyzer.New(cfg,
//	    analyzer.WithLogger(log),
//	    analyzer.WithMetrics(m),
//	)
//
//	// Score a dataset without touching allocations
//	analysis, err := a.Score(ctx, ds)
//	if err != nil {
//	    log.Error(err, "analysis failed")
//	    return err
//	}
//
//	// Score and search for a better budget split
//	report, err := a.OptimizeBudget(ctx, ds)
//	if err != nil {
//	    log.Error(err, "optimization failed")
//	    return err
//	}
//
//	log.Info("analysis complete",
//	    "index", report.Index,
//	    "optimizedIndex", report.Optimization.OptimizedIndex,
//	    "reason", report.Optimization.Reason)
//
// Error Handling:
//
// The scoring stages are total: missing data yields zero gaps, omitted
// options resolve to defaults, and invalid upstream values (e.g. negative
// allocations) are clamped and surfaced as data-quality signals rather than
// failures. Only the solver returns an error, and only for a dataset it
// cannot optimize at all (non-positive budget).
//
// The analyzer is designed to be:
//   - Composable with dependency injection
//   - Observable with structured logging and metrics
//   - Testable with substituted calibration tables
//   - Deterministic for identical inputs
package analyzer
