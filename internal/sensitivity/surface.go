// Package sensitivity builds the Gordon growth sensitivity surface: the
// value over a grid of growth rates and required returns around a base
// point, with terminal and CSV renderings.
package sensitivity

import (
	"math"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// DefaultPoints is the grid resolution on each axis.
const DefaultPoints = 50

// Axis bounds as fractions of the base required return.
const (
	GrowthMaxFactor = 0.95
	ReturnMinFactor = 0.5
	ReturnMaxFactor = 1.5
)

// Surface is a grid of Gordon values. Values[i][j] is the value at
// Returns[i] and Growth[j]; cells with Returns[i] <= Growth[j] are undefined.
type Surface struct {
	Dividend   float64
	BaseReturn float64
	BaseGrowth float64
	Growth     []float64
	Returns    []float64
	Values     [][]valuation.Result
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// GordonSurface evaluates GordonGrowth(d0, y, g) for g in [0, 0.95r] and y
// in [0.5r, 1.5r]. points < 2 selects DefaultPoints.
func GordonSurface(d0, r, baseGrowth float64, points int) Surface {
	if points < 2 {
		points = DefaultPoints
	}
	s := Surface{
		Dividend:   d0,
		BaseReturn: r,
		BaseGrowth: baseGrowth,
		Growth:     Linspace(0, r*GrowthMaxFactor, points),
		Returns:    Linspace(r*ReturnMinFactor, r*ReturnMaxFactor, points),
	}
	s.Values = make([][]valuation.Result, len(s.Returns))
	for i, y := range s.Returns {
		row := make([]valuation.Result, len(s.Growth))
		for j, g := range s.Growth {
			// No price exists where y <= g; those cells stay undefined.
			row[j] = valuation.GordonGrowth(d0, y, g)
		}
		s.Values[i] = row
	}
	return s
}

// At returns the value at return index i and growth index j.
func (s Surface) At(i, j int) valuation.Result {
	if i < 0 || i >= len(s.Values) || j < 0 || j >= len(s.Values[i]) {
		return valuation.Undefined()
	}
	return s.Values[i][j]
}

// Range returns the smallest and largest defined values. ok is false when
// no cell is defined.
func (s Surface) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range s.Values {
		for _, v := range row {
			x, defined := v.Value()
			if !defined {
				continue
			}
			ok = true
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Defined counts the defined cells.
func (s Surface) Defined() int {
	n := 0
	for _, row := range s.Values {
		for _, v := range row {
			if v.Defined() {
				n++
			}
		}
	}
	return n
}

// BaseIndex returns the grid cell closest to the base point.
func (s Surface) BaseIndex() (i, j int) {
	return nearest(s.Returns, s.BaseReturn), nearest(s.Growth, s.BaseGrowth)
}

func nearest(xs []float64, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range xs {
		if d := math.Abs(v - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
