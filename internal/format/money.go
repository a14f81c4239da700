package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// Undefined is shown in place of a value that does not exist.
const Undefined = "n/a"

// Currency renders v as dollars rounded half away from zero to cents with
// thousands separators, e.g. 1234567.891 -> "$1,234,567.89".
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// CurrencyResult renders a valuation result, or Undefined.
func CurrencyResult(r valuation.Result) string {
	v, ok := r.Value()
	if !ok {
		return Undefined
	}
	return Currency(v)
}

// Amount renders v with n decimals and no currency sign.
func Amount(v float64, n int32) string {
	return decimal.NewFromFloat(v).StringFixed(n)
}

// Percent renders a decimal rate as a percentage with two decimals,
// e.g. 0.0525 -> "5.25%".
func Percent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Undefined
	}
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// PercentResult renders a rate result, or Undefined.
func PercentResult(r valuation.Result) string {
	v, ok := r.Value()
	if !ok {
		return Undefined
	}
	return Percent(v)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
