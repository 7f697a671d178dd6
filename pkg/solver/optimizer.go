package solver

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"

	"github.com/foodsystems-lab/vulnerability-optimizer/internal/logging"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
)

// Default optimizer parameters.
const (
	// DefaultMaxIterations caps the descent loop, guaranteeing termination.
	DefaultMaxIterations = 100

	// DefaultMinImprovement is the index improvement below which the search
	// is considered converged.
	DefaultMinImprovement = 1e-4

	// DefaultLearningRate is the initial step size as a fraction of the
	// total budget.
	DefaultLearningRate = 0.1

	// Per-component allocation bounds, relative to the original allocation
	// and the total budget.
	minAllocationFraction = 0.01
	minAllocationFloor    = 0.1
	maxAllocationFactor   = 2.0
	maxBudgetShare        = 0.4

	// Adaptive step factors.
	stepGrowth = 1.1
	stepDecay  = 0.5
)

// Convergence reasons reported in Result.Reason.
const (
	ReasonMaxIterations  = "max-iterations"
	ReasonMinImprovement = "min-improvement"
	ReasonNoGradient     = "no-gradient"
)

// Options tunes the optimizer. The zero value selects the defaults.
type Options struct {
	// MaxIterations caps the number of descent iterations.
	MaxIterations int

	// MinImprovement is the convergence threshold on index improvement.
	MinImprovement float64

	// LearningRate is the initial step size as a fraction of the budget.
	LearningRate float64

	// Log receives convergence diagnostics. Defaults to a no-op logger.
	Log logr.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MinImprovement <= 0 {
		o.MinImprovement = DefaultMinImprovement
	}
	if o.LearningRate <= 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.Log.GetSink() == nil {
		o.Log = logr.Discard()
	}
	return o
}

// Result describes one optimization run. The optimizer is a local heuristic:
// OptimizedIndex is never worse than OriginalIndex, but it carries no
// global-optimality guarantee.
type Result struct {
	OriginalIndex  float64 `json:"originalIndex"`
	OptimizedIndex float64 `json:"optimizedIndex"`

	OriginalAllocations  map[string]float64 `json:"originalAllocations"`
	OptimizedAllocations map[string]float64 `json:"optimizedAllocations"`

	// Iterations is the number of descent iterations performed.
	Iterations int `json:"iterations"`

	// Converged is true when the run stopped on a convergence condition
	// rather than the iteration ceiling.
	Converged bool `json:"converged"`

	// Reason is one of the Reason* constants.
	Reason string `json:"reason"`
}

// bounds holds the feasible allocation interval for one component.
type bounds struct {
	min, max float64
}

// allocationBounds derives a component's feasible interval from its original
// allocation and the budget: no component drops below 1% of its original
// funding (or an absolute floor), and none takes more than double its
// original funding or 40% of the budget. A degenerate interval (tiny
// original allocation) collapses to its lower bound.
func allocationBounds(original, budget float64) bounds {
	b := bounds{
		min: math.Max(minAllocationFraction*original, minAllocationFloor),
		max: math.Min(maxAllocationFactor*original, maxBudgetShare*budget),
	}
	if b.max < b.min {
		b.max = b.min
	}
	return b
}

// Optimize reallocates the dataset's total budget across components to
// minimize the system vulnerability index. The dataset must already be
// scored: AverageGap, Sensitivity and Weight populated per component.
//
// It returns a new dataset carrying the optimized allocations and
// recomputed vulnerabilities, plus the run Result. The input is never
// mutated.
func Optimize(ds *core.Dataset, opts Options) (*core.Dataset, *Result, error) {
	opts = opts.withDefaults()

	out := ds.Clone()
	ids := out.ComponentIDs()
	budget := out.TotalBudget

	if len(ids) == 0 {
		rescore(out)
		idx := core.SystemIndex(out)
		return out, &Result{
			OriginalIndex:        idx,
			OptimizedIndex:       idx,
			OriginalAllocations:  map[string]float64{},
			OptimizedAllocations: map[string]float64{},
			Converged:            true,
			Reason:               ReasonNoGradient,
		}, nil
	}
	if budget <= 0 {
		return nil, nil, fmt.Errorf("total budget must be > 0, got %.2f", budget)
	}

	rescore(out)
	originalIndex := core.SystemIndex(out)
	original := out.Allocations()

	feasible := make(map[string]bounds, len(ids))
	for _, id := range ids {
		feasible[id] = allocationBounds(original[id], budget)
	}

	f := make(map[string]float64, len(ids))
	for id, alloc := range original {
		f[id] = alloc
	}

	lr := opts.LearningRate
	currentIndex := originalIndex
	reason := ReasonMaxIterations
	converged := false
	iterations := 0

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		iterations = iter

		grad := gradient(out, ids, f)
		totalMag := 0.0
		for _, g := range grad {
			totalMag += math.Abs(g)
		}
		if totalMag == 0 {
			// Nothing left to move: every component either has no weighted
			// gap or no responsiveness. Convergence, not an error.
			reason = ReasonNoGradient
			converged = true
			break
		}

		proposal := make(map[string]float64, len(ids))
		for _, id := range ids {
			step := lr * (grad[id] / totalMag) * budget
			proposal[id] = clamp(f[id]-step, feasible[id])
		}

		projectOntoBudget(ids, proposal, feasible, budget)

		newIndex := indexAt(out, ids, proposal)
		if newIndex < currentIndex {
			improvement := currentIndex - newIndex
			f = proposal
			currentIndex = newIndex
			lr *= stepGrowth
			if improvement <= opts.MinImprovement {
				reason = ReasonMinImprovement
				converged = true
				break
			}
		} else {
			// Non-improving step: revert allocations and index together and
			// retry with a smaller step.
			lr *= stepDecay
		}
	}

	// Final pass: restore the budget sum exactly, then rescore.
	total := sum(ids, f)
	if total > 0 {
		scale := budget / total
		for id := range f {
			f[id] *= scale
		}
	}
	for _, id := range ids {
		out.Components[id].Allocation = f[id]
	}
	rescore(out)
	optimizedIndex := core.SystemIndex(out)

	opts.Log.V(logging.DEBUG).Info("Optimization finished",
		"iterations", iterations,
		"reason", reason,
		"originalIndex", originalIndex,
		"optimizedIndex", optimizedIndex,
		"learningRate", lr)

	return out, &Result{
		OriginalIndex:        originalIndex,
		OptimizedIndex:       optimizedIndex,
		OriginalAllocations:  original,
		OptimizedAllocations: out.Allocations(),
		Iterations:           iterations,
		Converged:            converged,
		Reason:               reason,
	}, nil
}

// rescore recomputes every component's vulnerability from its current
// allocation.
func rescore(ds *core.Dataset) {
	for _, comp := range ds.Components {
		comp.Vulnerability = core.Vulnerability(comp.AverageGap, comp.Allocation, comp.Sensitivity)
	}
}

// gradient returns the partial derivative of the system index with respect
// to each component's allocation, evaluated at f. Vulnerability decreases
// monotonically in allocation, so every entry is <= 0.
func gradient(ds *core.Dataset, ids []string, f map[string]float64) map[string]float64 {
	grad := make(map[string]float64, len(ids))
	for _, id := range ids {
		comp := ds.Components[id]
		denom := 1 + comp.Sensitivity*f[id]
		grad[id] = -comp.Weight * comp.AverageGap * comp.Sensitivity / (denom * denom)
	}
	return grad
}

// indexAt evaluates the system index at the candidate allocations without
// touching the dataset.
func indexAt(ds *core.Dataset, ids []string, f map[string]float64) float64 {
	var index float64
	for _, id := range ids {
		comp := ds.Components[id]
		index += comp.Weight * core.Vulnerability(comp.AverageGap, f[id], comp.Sensitivity)
	}
	return index
}

// projectOntoBudget rescales the candidate allocations to the budget sum,
// re-clamps anything pushed outside its bounds, and redistributes the
// residual discrepancy proportionally across components strictly inside
// their bounds.
func projectOntoBudget(ids []string, f map[string]float64, feasible map[string]bounds, budget float64) {
	total := sum(ids, f)
	if total <= 0 {
		return
	}

	scale := budget / total
	for _, id := range ids {
		f[id] = clamp(f[id]*scale, feasible[id])
	}

	diff := budget - sum(ids, f)
	if diff == 0 {
		return
	}

	interior := make([]string, 0, len(ids))
	interiorTotal := 0.0
	for _, id := range ids {
		if f[id] > feasible[id].min && f[id] < feasible[id].max {
			interior = append(interior, id)
			interiorTotal += f[id]
		}
	}
	if interiorTotal <= 0 {
		return
	}
	for _, id := range interior {
		f[id] = clamp(f[id]+diff*f[id]/interiorTotal, feasible[id])
	}
}

func sum(ids []string, f map[string]float64) float64 {
	vals := make([]float64, 0, len(ids))
	for _, id := range ids {
		vals = append(vals, f[id])
	}
	return floats.Sum(vals)
}

func clamp(v float64, b bounds) float64 {
	return math.Min(b.max, math.Max(b.min, v))
}
