// Package valuation implements the dividend discount models: zero-growth,
// Gordon growth and two-stage (multi-stage) valuation.
//
// The model functions are pure and closed-form. None of them panics or
// returns an error: when a model's no-arbitrage precondition fails (growth
// not strictly below the required return) or the arithmetic has no real
// value, they return an undefined Result. Calculators layer precondition
// checks with typed errors on top for the host surfaces.
package valuation
