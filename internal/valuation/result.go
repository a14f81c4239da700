package valuation

import (
	"fmt"
	"math"
)

// Result is a valuation that is either a finite value or undefined.
// The zero value is undefined.
type Result struct {
	value   float64
	defined bool
}

// Of wraps v, mapping NaN and ±Inf to an undefined result.
func Of(v float64) Result {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{}
	}
	return Result{value: v, defined: true}
}

// Undefined returns the undefined result.
func Undefined() Result { return Result{} }

// Value returns the value and whether it is defined.
func (r Result) Value() (float64, bool) { return r.value, r.defined }

// Defined reports whether the result carries a value.
func (r Result) Defined() bool { return r.defined }

// Or returns the value, or fallback when undefined.
func (r Result) Or(fallback float64) float64 {
	if !r.defined {
		return fallback
	}
	return r.value
}

// String renders the value with two decimals, or "undefined".
func (r Result) String() string {
	if !r.defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", r.value)
}
