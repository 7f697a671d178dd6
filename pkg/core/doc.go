// Package core provides fundamental data structures and business logic for the vulnerability analysis engine.
//
// This package contains the core domain models that represent the entities and relationships
// in the analyzed food system:
//
//   - Indicator: a single observed value paired with its benchmark and derived performance gap
//   - Component: a weighted, fundable subsector holding indicators and derived scores
//   - Dataset: the full set of components plus the total budget under analysis
//
// It also holds the two scoring primitives the rest of the pipeline is built on:
//
//   - Vulnerability: discounts a component's performance gap by its funding and responsiveness
//   - SystemIndex: the weighted sum of component vulnerabilities, the scalar being minimized
//
// Example usage:
//
//	// Build a component with one indicator
//	comp := &core.Component{
//	    ID:         "nutrition",
//	    Name:       "Nutrition programs",
//	    Indicators: []core.Indicator{{Value: core.Ptr(40.0), Benchmark: core.Ptr(60.0)}},
//	    Allocation: 12.5,
//	}
//
//	ds := &core.Dataset{
//	    Components:  map[string]*core.Component{comp.ID: comp},
//	    TotalBudget: 12.5,
//	}
//
//	// Score a component directly
//	v := core.Vulnerability(0.5, comp.Allocation, 0.4)
//
// The core package is designed to be:
//   - Immutable across pipeline stages (Clone before mutate, never aliasing)
//   - Type-safe with strong domain boundaries
//   - Independent of configuration and I/O concerns (pure domain logic)
//   - Well-tested with comprehensive unit tests
package core
