package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"
)

func TestPreconditionError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  PreconditionError
		want string
	}{
		{
			name: "gordon growth above return",
			err:  PreconditionError{Model: "Gordon Growth Model", Growth: 0.12, RequiredReturn: 0.10},
			want: "Growth rate must be less than required return (12.00% >= 10.00%)",
		},
		{
			name: "multi-stage stable growth equal to return",
			err:  PreconditionError{Model: "Multi-Stage DDM", GrowthLabel: "Stable growth rate", Growth: 0.10, RequiredReturn: 0.10},
			want: "Stable growth rate must be less than required return (10.00% >= 10.00%)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataUnavailableError(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		err := DataUnavailableError{Ticker: "BRK-B"}
		if err.Error() != "no dividend data available for BRK-B" {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.Unwrap() != nil {
			t.Error("Unwrap should be nil without a cause")
		}
	})

	t.Run("fetch cut short by the run deadline", func(t *testing.T) {
		t.Parallel()
		cause := fmt.Errorf("Get \"https://query1.finance.yahoo.com/v8/finance/chart/KO\": %w", context.DeadlineExceeded)
		err := DataUnavailableError{Ticker: "KO", Cause: cause}
		if !strings.HasPrefix(err.Error(), "dividend data unavailable for KO: Get ") {
			t.Errorf("Error() = %q", err.Error())
		}
		if !IsContextError(err) {
			t.Error("IsContextError should see the deadline through the fetch failure")
		}
		if IsContextError(DataUnavailableError{Ticker: "KO", Cause: errors.New("404 Not Found")}) {
			t.Error("an HTTP failure is not a context error")
		}
	})
}

func TestWrapError_OutputFiles(t *testing.T) {
	t.Parallel()
	cause := &fs.PathError{Op: "open", Path: "/ro/grid.csv", Err: fs.ErrPermission}
	err := WrapError(cause, "failed to write sensitivity grid %s", "/ro/grid.csv")

	if err.Error() != "failed to write sensitivity grid /ro/grid.csv: open /ro/grid.csv: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("the wrapped cause should stay in the chain")
	}
	if WrapError(nil, "failed to create output file") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

// TestHandleValuationError walks every failure a run can end with and
// checks both the user-facing status line and the exit code.
func TestHandleValuationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{
			name:     "gordon precondition",
			err:      PreconditionError{Model: "Gordon Growth Model", Growth: 0.12, RequiredReturn: 0.10},
			wantCode: ExitErrorPrecondition,
			wantOut:  "Status: Failure. Growth rate must be less than required return (12.00% >= 10.00%)",
		},
		{
			name:     "precondition wrapped by the model name",
			err:      WrapError(PreconditionError{GrowthLabel: "Stable growth rate", Growth: 0.11, RequiredReturn: 0.10}, "multistage"),
			wantCode: ExitErrorPrecondition,
			wantOut:  "multistage: Stable growth rate must be less",
		},
		{
			name:     "arithmetically undefined",
			err:      ErrArithmeticUndefined,
			wantCode: ExitErrorGeneric,
			wantOut:  "result is arithmetically undefined",
		},
		{
			name:     "out of bounds input",
			err:      ValidationError{Field: "years", Message: "must be between 1 and 20"},
			wantCode: ExitErrorConfig,
			wantOut:  `validation error for "years": must be between 1 and 20`,
		},
		{
			name:     "unwritable log file",
			err:      NewConfigError("cannot open log file: %v", fs.ErrPermission),
			wantCode: ExitErrorConfig,
			wantOut:  "cannot open log file: permission denied",
		},
		{
			name:     "run timeout",
			err:      TimeoutError{Operation: "valuation", Limit: 30 * time.Second},
			wantCode: ExitErrorTimeout,
			wantOut:  `operation "valuation" timed out after 30s`,
		},
		{
			name:     "deadline inside a fetch",
			err:      DataUnavailableError{Ticker: "KO", Cause: context.DeadlineExceeded},
			wantCode: ExitErrorTimeout,
			wantOut:  "Status: Failure (Timeout)",
		},
		{
			name:     "interrupted",
			err:      context.Canceled,
			wantCode: ExitErrorCanceled,
			wantOut:  "Status: Canceled by user.",
		},
		{
			name:     "history unavailable",
			err:      DataUnavailableError{Ticker: "ZZZZ"},
			wantCode: ExitErrorGeneric,
			wantOut:  "no dividend data available for ZZZZ",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if code := HandleValuationError(tt.err, &buf); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.wantOut)
			}
		})
	}
}

func TestHandleValuationError_Quiet(t *testing.T) {
	t.Parallel()
	if code := HandleValuationError(nil, nil); code != ExitSuccess {
		t.Errorf("nil error: code = %d, want %d", code, ExitSuccess)
	}
	if code := HandleValuationError(PreconditionError{Growth: 0.2, RequiredReturn: 0.1}, nil); code != ExitErrorPrecondition {
		t.Errorf("nil writer: code = %d, want %d", code, ExitErrorPrecondition)
	}
}
