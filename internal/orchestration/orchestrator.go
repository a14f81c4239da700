package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/metrics"
	"github.com/agbru/ddmcalc/internal/valuation"
)

type execOptions struct {
	metrics *metrics.Metrics
	logger  logging.Logger
}

// Option configures ExecuteValuations.
type Option func(*execOptions)

// WithMetrics counts each valuation outcome in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *execOptions) { o.metrics = m }
}

// WithLogger logs each valuation at debug level.
func WithLogger(l logging.Logger) Option {
	return func(o *execOptions) { o.logger = l }
}

// Outcome classifies a result for metrics.
func Outcome(err error) string {
	var precon apperrors.PreconditionError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &precon):
		return metrics.OutcomePrecondition
	case errors.Is(err, apperrors.ErrArithmeticUndefined):
		return metrics.OutcomeUndefined
	}
	return metrics.OutcomeError
}

// ExecuteValuations runs every calculator on in concurrently and returns the
// results in the order of calcs. Models that have not started when ctx is
// canceled report the context error.
func ExecuteValuations(ctx context.Context, calcs []valuation.Calculator, in valuation.Input, opts ...Option) []ValuationResult {
	o := execOptions{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]ValuationResult, len(calcs))

	for i, calc := range calcs {
		i, calc := i, calc
		g.Go(func() error {
			start := time.Now()
			res := ValuationResult{Name: calc.Name(), Model: calc.Model()}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else if v, err := valuation.Evaluate(calc, in); err != nil {
				res.Err = err
			} else {
				res.Value = valuation.Of(v)
			}
			res.Duration = time.Since(start)
			results[i] = res

			o.metrics.ObserveValuation(calc.Model().Key(), Outcome(res.Err))
			o.logger.Debug("valuation finished",
				logging.String("model", calc.Model().Key()),
				logging.String("value", res.Value.String()),
				logging.Duration("elapsed", res.Duration))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// AnalyzeResults presents results and returns the exit code. With more than
// one result a comparison table comes first. The first defined result in
// model order is then presented in full. When every model failed, the first
// failure is handed to errHandler.
func AnalyzeResults(results []ValuationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Model < results[j].Model
	})

	var primary *ValuationResult
	var firstErr error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		successCount++
		if primary == nil {
			primary = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("no valuation model selected")
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No model produced a valuation.\n")
		}
		return errHandler.HandleError(firstErr, out)
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: %d of %d models produced a valuation.\n", successCount, len(results))
	}
	presenter.PresentResult(*primary, opts, out)
	return apperrors.ExitSuccess
}
