package valuation

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGordonMonotonicity_PropertyBased verifies that, with the precondition
// satisfied, the Gordon value rises with growth and falls with the required
// return.
func TestGordonMonotonicity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("value increases with growth", prop.ForAll(
		func(d0, r, frac float64) bool {
			g1 := r * frac * 0.5
			g2 := r * frac
			v1, ok1 := GordonGrowth(d0, r, g1).Value()
			v2, ok2 := GordonGrowth(d0, r, g2).Value()
			return ok1 && ok2 && v2 >= v1
		},
		gen.Float64Range(0.01, 100),
		gen.Float64Range(0.01, 0.5),
		gen.Float64Range(0, 0.95),
	))

	properties.Property("value decreases with required return", prop.ForAll(
		func(d0, g, spread float64) bool {
			r1 := g + spread
			r2 := r1 + 0.01
			v1, ok1 := GordonGrowth(d0, r1, g).Value()
			v2, ok2 := GordonGrowth(d0, r2, g).Value()
			return ok1 && ok2 && v2 < v1
		},
		gen.Float64Range(0.01, 100),
		gen.Float64Range(0, 0.2),
		gen.Float64Range(0.005, 0.3),
	))

	properties.Property("undefined whenever growth reaches the return", prop.ForAll(
		func(d0, r, excess float64) bool {
			return !GordonGrowth(d0, r, r+excess).Defined()
		},
		gen.Float64Range(0.01, 100),
		gen.Float64Range(0.001, 0.5),
		gen.Float64Range(0, 0.5),
	))

	properties.TestingRun(t)
}

// TestZeroGrowthLinearity_PropertyBased verifies D/r scales linearly in D.
func TestZeroGrowthLinearity_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("doubling the dividend doubles the value", prop.ForAll(
		func(d, r float64) bool {
			v1, _ := ZeroGrowth(d, r).Value()
			v2, _ := ZeroGrowth(2*d, r).Value()
			return almostEqual(v2, 2*v1)
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0.001, 1),
	))

	properties.TestingRun(t)
}

// TestMultiStageConsistency_PropertyBased checks the multi-stage model
// against its closed form and against Gordon when both phases share a rate.
func TestMultiStageConsistency_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("matches term-by-term reference", prop.ForAll(
		func(d0, r, gi float64, n int, frac float64) bool {
			gs := r * frac
			got, ok := MultiStage(d0, r, gi, n, gs).Value()
			return ok && almostEqual(got, multiStageReference(d0, r, gi, n, gs))
		},
		gen.Float64Range(0.01, 50),
		gen.Float64Range(0.01, 0.3),
		gen.Float64Range(0, 0.25),
		gen.IntRange(1, 20),
		gen.Float64Range(0, 0.95),
	))

	properties.Property("collapses to Gordon when growth rates match", prop.ForAll(
		func(d0, r, frac float64, n int) bool {
			g := r * frac
			ms, ok1 := MultiStage(d0, r, g, n, g).Value()
			gg, ok2 := GordonGrowth(d0, r, g).Value()
			return ok1 && ok2 && almostEqual(ms, gg)
		},
		gen.Float64Range(0.01, 50),
		gen.Float64Range(0.01, 0.3),
		gen.Float64Range(0, 0.9),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
