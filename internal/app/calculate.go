package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/ddmcalc/internal/cli"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// runCalculate orchestrates a one-shot valuation.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Model, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no calculator registered for model %q\n", a.Config.Model)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		if a.Config.Ticker != "" {
			a.showHistory(ctx, out)
			if ctx.Err() != nil {
				return apperrors.HandleValuationError(a.lifecycleError(ctx), a.ErrWriter)
			}
		}
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	in := a.Config.ToInput()
	results := orchestration.ExecuteValuations(ctx, calculatorsToRun, in,
		orchestration.WithMetrics(a.Metrics), orchestration.WithLogger(a.Logger))

	var exitCode int
	if a.Config.Quiet {
		exitCode = a.presentQuiet(results, out)
	} else {
		presOpts := orchestration.PresentationOptions{
			Input:   in,
			Verbose: a.Config.Verbose,
			Details: a.Config.Details,
		}
		presenter := cli.CLIResultPresenter{}
		exitCode = orchestration.AnalyzeResults(results, presOpts, presenter, presenter, out)
	}
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	if err := a.writeOutputs(results, in, out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		cli.DisplayDisclaimer(out)
	}
	return apperrors.ExitSuccess
}

// showHistory fetches and prints the dividend history of the configured
// ticker. A failed fetch prints a notice and the run continues.
func (a *Application) showHistory(ctx context.Context, out io.Writer) {
	var h marketdata.History
	err := cli.WithSpinner(out, "Fetching dividend history...", func() error {
		var err error
		h, err = marketdata.FetchHistory(ctx, a.Provider, a.Config.Ticker)
		return err
	})
	if apperrors.IsContextError(err) && ctx.Err() != nil {
		// The run itself ended; the caller reports why.
		return
	}
	if err != nil {
		a.Logger.Error("dividend history unavailable", err, logging.String("ticker", h.Ticker))
		cli.DisplayHistoryUnavailable(out, h.Ticker, err)
		return
	}
	cli.DisplayHistory(out, h)
}

// lifecycleError reports why ctx ended: a TimeoutError once --timeout is
// reached, the cancellation otherwise.
func (a *Application) lifecycleError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "valuation", Limit: a.Config.Timeout}
	}
	return err
}

// presentQuiet prints bare values. When every model failed the first error
// goes to the error writer and decides the exit code.
func (a *Application) presentQuiet(results []orchestration.ValuationResult, out io.Writer) int {
	var firstErr error
	for _, r := range results {
		if r.Err == nil {
			cli.DisplayQuietResults(out, results)
			return apperrors.ExitSuccess
		}
		if firstErr == nil {
			firstErr = r.Err
		}
	}
	return apperrors.HandleValuationError(firstErr, a.ErrWriter)
}

// writeOutputs renders the sensitivity analysis and writes the requested
// files.
func (a *Application) writeOutputs(results []orchestration.ValuationResult, in valuation.Input, out io.Writer) error {
	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.WriteReportToFile(results, in, outputCfg); err != nil {
		return err
	}
	if outputCfg.OutputFile != "" && !outputCfg.Quiet {
		cli.DisplaySaved(out, "Report", outputCfg.OutputFile)
	}

	if !a.Config.Sensitivity && a.Config.SensitivityCSV == "" {
		return nil
	}
	if !valuation.GordonGrowth(in.Dividend, in.RequiredReturn, in.GrowthRate).Defined() {
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%sSensitivity analysis skipped: the Gordon valuation is undefined for these inputs.%s\n",
				ui.ColorOrange(), ui.ColorReset())
		}
		return nil
	}

	surface := sensitivity.GordonSurface(in.Dividend, in.RequiredReturn, in.GrowthRate, sensitivity.DefaultPoints)
	if a.Config.Sensitivity && !a.Config.Quiet {
		if err := cli.DisplaySensitivity(out, surface); err != nil {
			return err
		}
	}
	if a.Config.SensitivityCSV != "" {
		if err := cli.WriteSensitivityCSV(a.Config.SensitivityCSV, surface); err != nil {
			return err
		}
		if !a.Config.Quiet {
			cli.DisplaySaved(out, "Sensitivity grid", a.Config.SensitivityCSV)
		}
	}
	return nil
}
