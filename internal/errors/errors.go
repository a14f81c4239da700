package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess           = 0   // Indicates successful execution.
	ExitErrorGeneric      = 1   // Indicates a generic error.
	ExitErrorTimeout      = 2   // Indicates the operation timed out.
	ExitErrorPrecondition = 3   // Indicates a model precondition failure (growth >= required return).
	ExitErrorConfig       = 4   // Indicates a configuration error.
	ExitErrorCanceled     = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrArithmeticUndefined is reported when a valuation or statistic has no
// real value (division by zero, non-real root) even though its model
// precondition holds. Callers suppress the dependent output instead of
// failing the session.
var ErrArithmeticUndefined = errors.New("result is arithmetically undefined")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// PreconditionError reports that a model's no-arbitrage precondition does not
// hold: the growth rate feeding a perpetuity is not strictly below the
// required return. The valuation is withheld.
type PreconditionError struct {
	// Model is the display name of the valuation model.
	Model string
	// GrowthLabel names the offending growth input ("Growth rate",
	// "Stable growth rate").
	GrowthLabel string
	// Growth is the offending growth rate (decimal).
	Growth float64
	// RequiredReturn is the required rate of return (decimal).
	RequiredReturn float64
}

// Error returns the user-facing message for the failed precondition.
func (e PreconditionError) Error() string {
	label := e.GrowthLabel
	if label == "" {
		label = "Growth rate"
	}
	return fmt.Sprintf("%s must be less than required return (%.2f%% >= %.2f%%)",
		label, e.Growth*100, e.RequiredReturn*100)
}

// DataUnavailableError reports that the market-data provider returned nothing
// for a ticker or failed outright. It is never fatal: the historical panel is
// simply omitted.
type DataUnavailableError struct {
	// Ticker is the symbol that was requested.
	Ticker string
	// Cause is the underlying failure, nil when the provider returned no data.
	Cause error
}

// Error returns a formatted notice describing the missing data.
func (e DataUnavailableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("no dividend data available for %s", e.Ticker)
	}
	return fmt.Sprintf("dividend data unavailable for %s: %v", e.Ticker, e.Cause)
}

// Unwrap returns the underlying cause.
func (e DataUnavailableError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		precondition PreconditionError
		validation   ValidationError
		config       ConfigError
		timeout      TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &precondition):
		return ExitErrorPrecondition
	case errors.As(err, &validation), errors.As(err, &config):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleValuationError writes a user-facing message for err and returns the
// matching exit code. A nil writer suppresses the message.
func HandleValuationError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	if out != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached.\n")
		case errors.Is(err, context.Canceled):
			fmt.Fprintf(out, "Status: Canceled by user.\n")
		default:
			fmt.Fprintf(out, "Status: Failure. %v\n", err)
		}
	}
	return ExitCodeFor(err)
}
