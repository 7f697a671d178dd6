package analyzer_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foodsystems-lab/vulnerability-optimizer/internal/analyzer"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/calibration"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/config"
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/logging"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
)

// makeDataset builds a small but realistic food-system dataset: observed
// values below benchmark on higher-is-better metrics, one lower-is-better
// component, and one component with only a pre-computed average gap.
func makeDataset() *core.Dataset {
	return &core.Dataset{
		Components: map[string]*core.Component{
			"nutrition": {
				ID:   "nutrition",
				Name: "Nutrition programs",
				Indicators: []core.Indicator{
					{Value: core.Ptr(40), Benchmark: core.Ptr(60)},
					{Value: core.Ptr(55), Benchmark: core.Ptr(66)},
				},
				Allocation: 25,
			},
			"food_availability": {
				ID:   "food_availability",
				Name: "Food availability",
				Indicators: []core.Indicator{
					{Value: core.Ptr(80), Benchmark: core.Ptr(120), WeightHint: 2},
					{Value: core.Ptr(30), Benchmark: core.Ptr(45)},
				},
				Allocation: 40,
			},
			"post_harvest_loss": {
				ID:   "post_harvest_loss",
				Name: "Post-harvest losses",
				Indicators: []core.Indicator{
					// Lower is better: observed losses above benchmark.
					{Value: core.Ptr(18), Benchmark: core.Ptr(12)},
				},
				Allocation: 15,
			},
			"environment": {
				ID:         "environment",
				Name:       "Environment and natural resources",
				AverageGap: 1.4, // pre-computed by the data loader
				Allocation: 20,
			},
		},
		TotalBudget: 100,
	}
}

func makeConfig() *config.Config {
	cfg := config.Default()
	cfg.MetricPreference["post_harvest_loss"] = false
	return cfg
}

var _ = Describe("Analyzer", func() {
	var (
		ctx context.Context
		a   *analyzer.Analyzer
		ds  *core.Dataset
	)

	BeforeEach(func() {
		ctx = context.Background()
		a = analyzer.New(makeConfig(), analyzer.WithLogger(logging.NewTestLogger()))
		ds = makeDataset()
	})

	Describe("Score", func() {
		It("populates every derived field", func() {
			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			for id, comp := range analysis.Dataset.Components {
				Expect(comp.Sensitivity).To(BeNumerically(">=", calibration.MinSensitivity), id)
				Expect(comp.Sensitivity).To(BeNumerically("<=", calibration.MaxSensitivity), id)
				Expect(comp.Weight).To(BeNumerically(">", 0), id)
				Expect(comp.Vulnerability).To(BeNumerically(">=", 0), id)
			}
			Expect(analysis.Index).To(BeNumerically(">", 0))
		})

		It("normalizes weights to exactly one", func() {
			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			var sum float64
			for _, comp := range analysis.Dataset.Components {
				sum += comp.Weight
			}
			Expect(sum).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("computes indicator gaps from benchmarks", func() {
			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			nutrition := analysis.Dataset.Components["nutrition"]
			Expect(nutrition.Indicators[0].Gap).To(BeNumerically("~", 0.5, 1e-12))
			Expect(nutrition.Indicators[1].Gap).To(BeNumerically("~", 0.2, 1e-12))
			Expect(nutrition.AverageGap).To(BeNumerically("~", 0.35, 1e-12))
		})

		It("honors lower-is-better metric preferences", func() {
			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			loss := analysis.Dataset.Components["post_harvest_loss"]
			Expect(loss.Indicators[0].Gap).To(BeNumerically("~", 6.0/18.0, 1e-12))
		})

		It("keeps a pre-computed average gap for components without indicators", func() {
			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			Expect(analysis.Dataset.Components["environment"].AverageGap).To(Equal(1.4))
		})

		It("clamps negative allocations to zero", func() {
			ds.Components["nutrition"].Allocation = -5

			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			nutrition := analysis.Dataset.Components["nutrition"]
			Expect(nutrition.Allocation).To(BeZero())
			// Zero funding leaves the gap undiscounted.
			Expect(nutrition.Vulnerability).To(BeNumerically("~", nutrition.AverageGap, 1e-12))
		})

		It("does not mutate the input dataset", func() {
			_, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			Expect(ds.Components["nutrition"].Indicators[0].Gap).To(BeZero())
			Expect(ds.Components["nutrition"].Weight).To(BeZero())
			Expect(ds.Components["nutrition"].Vulnerability).To(BeZero())
		})

		It("is deterministic", func() {
			first, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())
			second, err := a.Score(ctx, makeDataset())
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Index).To(Equal(second.Index))
		})

		It("supports substituted calibration tables", func() {
			tables := config.CalibrationTables{
				Sensitivity:        map[string]float64{},
				BaseWeights:        map[string]float64{},
				DefaultSensitivity: 0.5,
				DefaultWeight:      0.1,
			}
			a = analyzer.New(makeConfig(), analyzer.WithCalibrationTables(tables))

			analysis, err := a.Score(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			n := float64(len(analysis.Dataset.Components))
			for _, comp := range analysis.Dataset.Components {
				Expect(comp.Weight).To(BeNumerically("~", 1/n, 1e-12))
			}
		})
	})

	Describe("OptimizeBudget", func() {
		It("never worsens the system index", func() {
			report, err := a.OptimizeBudget(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Optimization.OptimizedIndex).To(
				BeNumerically("<=", report.Optimization.OriginalIndex+1e-9))
		})

		It("spends exactly the total budget", func() {
			report, err := a.OptimizeBudget(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			var total float64
			for _, alloc := range report.Optimization.OptimizedAllocations {
				total += alloc
			}
			Expect(total).To(BeNumerically("~", ds.TotalBudget, 1e-6))
		})

		It("reports the pre-optimization analysis alongside the result", func() {
			report, err := a.OptimizeBudget(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Index).To(Equal(report.Optimization.OriginalIndex))
			Expect(report.Optimized).NotTo(BeNil())
			Expect(core.SystemIndex(report.Optimized)).To(
				BeNumerically("~", report.Optimization.OptimizedIndex, 1e-12))
		})

		It("derives defined efficiency metrics for a nonzero index", func() {
			report, err := a.OptimizeBudget(ctx, ds)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Efficiency.IsDefined()).To(BeTrue())
			Expect(report.Efficiency.AbsoluteGap).To(BeNumerically(">=", 0))
			Expect(report.Efficiency.EfficiencyIndex).To(BeNumerically("<=", 1+1e-9))
			Expect(math.IsNaN(report.Efficiency.GapRatio)).To(BeFalse())
		})
	})
})
