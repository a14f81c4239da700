package valuation

import (
	"fmt"
	"math"
	"strings"
)

// Model identifies a dividend discount model.
type Model int

const (
	// ZeroGrowthModel values a perpetuity of constant dividends.
	ZeroGrowthModel Model = iota
	// GordonModel values a perpetuity growing at a constant rate.
	GordonModel
	// MultiStageModel values an explicit growth phase followed by a
	// growing perpetuity.
	MultiStageModel
)

// Models lists every model in display order.
var Models = []Model{ZeroGrowthModel, GordonModel, MultiStageModel}

// String returns the display name of the model.
func (m Model) String() string {
	switch m {
	case ZeroGrowthModel:
		return "Zero-Growth Model"
	case GordonModel:
		return "Gordon Growth Model"
	case MultiStageModel:
		return "Multi-Stage DDM"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Key returns the short registry name of the model.
func (m Model) Key() string {
	switch m {
	case ZeroGrowthModel:
		return "zero"
	case GordonModel:
		return "gordon"
	case MultiStageModel:
		return "multistage"
	default:
		return ""
	}
}

// ParseModel accepts the registry key or one of its aliases.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "zero-growth", "zerogrowth":
		return ZeroGrowthModel, nil
	case "gordon", "gordon-growth", "ggm":
		return GordonModel, nil
	case "multi", "multistage", "multi-stage", "two-stage":
		return MultiStageModel, nil
	}
	return 0, fmt.Errorf("unknown model %q", s)
}

// Input is the set of valuation inputs. Rates are decimals (0.10 = 10%).
// Each model reads only the fields it needs.
type Input struct {
	Dividend       float64
	RequiredReturn float64
	GrowthRate     float64
	InitialGrowth  float64
	StableGrowth   float64
	Years          int
}

// ZeroGrowth computes d / r. It is undefined only when r == 0.
func ZeroGrowth(d, r float64) Result {
	if r == 0 {
		return Undefined()
	}
	return Of(d / r)
}

// GordonGrowth computes d0(1+g) / (r-g). It is undefined when g >= r.
func GordonGrowth(d0, r, g float64) Result {
	if g >= r {
		return Undefined()
	}
	d1 := d0 * (1 + g)
	return Of(d1 / (r - g))
}

// MultiStage discounts years periods of dividends growing at gInitial, then
// adds a growing perpetuity at gStable on the final period's dividend,
// discounted back years periods:
//
//	sum_{t=1..n} D0(1+gi)^t / (1+r)^t  +  D_n(1+gs) / ((r-gs)(1+r)^n)
//
// It is undefined when gStable >= r or years < 1.
func MultiStage(d0, r, gInitial float64, years int, gStable float64) Result {
	growth, terminal := MultiStageParts(d0, r, gInitial, years, gStable)
	g, ok := growth.Value()
	if !ok {
		return Undefined()
	}
	tv, _ := terminal.Value()
	return Of(g + tv)
}

// MultiStageParts returns the present value of the growth phase and of the
// terminal value separately. Both are undefined when MultiStage is.
func MultiStageParts(d0, r, gInitial float64, years int, gStable float64) (growth, terminal Result) {
	if gStable >= r || years < 1 {
		return Undefined(), Undefined()
	}
	var pv, dividend float64
	for t := 1; t <= years; t++ {
		dividend = d0 * math.Pow(1+gInitial, float64(t))
		pv += dividend / math.Pow(1+r, float64(t))
	}
	tv := dividend * (1 + gStable) / (r - gStable)
	return Of(pv), Of(tv / math.Pow(1+r, float64(years)))
}
