package orchestration

import (
	"io"
	"time"

	"github.com/agbru/ddmcalc/internal/valuation"
)

// ValuationResult is the outcome of running one model. It is the shared
// domain type between orchestration and presentation layers.
type ValuationResult struct {
	// Name is the display name of the model (e.g., "Gordon Growth Model").
	Name string
	// Model identifies the model.
	Model valuation.Model
	// Value is the computed valuation; undefined when Err is set.
	Value valuation.Result
	// Duration is the time taken by the model.
	Duration time.Duration
	// Err is the validation, precondition or arithmetic failure, if any.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Input   valuation.Input
	Verbose bool
	Details bool
}

// ResultPresenter presents valuation outcomes. Implementations decide the
// output format (plain CLI, TUI panels, ...) without touching orchestration.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per model.
	PresentComparisonTable(results []ValuationResult, out io.Writer)

	// PresentResult displays a single successful valuation.
	PresentResult(result ValuationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed valuation and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(err error, out io.Writer) int

// HandleError calls f.
func (f ErrorHandlerFunc) HandleError(err error, out io.Writer) int { return f(err, out) }
