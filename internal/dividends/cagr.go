package dividends

import (
	"math"
	"time"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// DaysPerYear converts calendar days into fractional years.
const DaysPerYear = 365.25

// YearsBetween returns the whole calendar days between from and to divided
// by DaysPerYear. Partial days are dropped.
func YearsBetween(from, to time.Time) float64 {
	days := math.Floor(to.Sub(from).Hours() / 24)
	return days / DaysPerYear
}

// HistoricalCAGR returns the compound annual growth rate between the earliest
// and latest payments of s:
//
//	(last / first)^(1 / years) - 1
//
// The result is undefined for an empty series, when both ends fall on the
// same day (including a single payment), when the earliest amount is zero,
// or when the ratio has no real root.
func HistoricalCAGR(s Series) valuation.Result {
	first, ok := s.First()
	if !ok {
		return valuation.Undefined()
	}
	last, _ := s.Last()

	years := YearsBetween(first.Date, last.Date)
	if years <= 0 || first.Amount == 0 {
		return valuation.Undefined()
	}
	ratio := last.Amount / first.Amount
	if ratio < 0 {
		return valuation.Undefined()
	}
	return valuation.Of(math.Pow(ratio, 1/years) - 1)
}

// RecentCAGR is HistoricalCAGR over the payments dated within the given
// number of years before the latest payment.
func RecentCAGR(s Series, years int) valuation.Result {
	last, ok := s.Last()
	if !ok {
		return valuation.Undefined()
	}
	return HistoricalCAGR(s.Since(last.Date.AddDate(-years, 0, 0)))
}
