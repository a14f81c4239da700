package cli

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/format"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// Disclaimer is printed after every valuation report.
const Disclaimer = `Disclaimer: This application provides theoretical valuations based on dividend discount models.
Actual stock prices may vary due to market conditions, risk factors, and other fundamental
considerations. Always conduct thorough research before making investment decisions.

Data is taken from the Yahoo Finance API`

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for valuation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with model
// names, values, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ValuationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Model")
	maxValueLen := len("Value")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxValueLen = max(maxValueLen, len(format.CurrencyResult(res.Value)))
	}

	fmt.Fprintf(out, "%sModel%s%s   %sValue%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Model")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxValueLen-len("Value")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		value := format.CurrencyResult(res.Value)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), value, ui.ColorReset(), padRight("", maxValueLen-len(value)),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final valuation using DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.ValuationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError reports a failed valuation in red and returns its exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	fmt.Fprint(out, ui.ColorRed())
	code := apperrors.HandleValuationError(err, out)
	fmt.Fprint(out, ui.ColorReset())
	return code
}

// DisplayResult prints the headline value of a valuation. Verbose adds the
// inputs the model used; Details adds the model's intermediate figures.
func DisplayResult(result orchestration.ValuationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nCalculated Stock Value (%s): %s%s%s%s\n",
		result.Model, ui.ColorBold(), ui.ColorGreen(), format.CurrencyResult(result.Value), ui.ColorReset())

	if opts.Verbose {
		fmt.Fprintf(out, "\n%sInputs:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, row := range InputRows(result.Model, opts.Input) {
			fmt.Fprintf(out, "  %-24s %s%s%s\n", row[0]+":", ui.ColorCyan(), row[1], ui.ColorReset())
		}
	}
	if opts.Details {
		fmt.Fprintf(out, "\n%sDetails:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, row := range DetailRows(result.Model, opts.Input) {
			fmt.Fprintf(out, "  %-24s %s%s%s\n", row[0]+":", ui.ColorYellow(), row[1], ui.ColorReset())
		}
		fmt.Fprintf(out, "  %-24s %s\n", "Computed in:", format.FormatExecutionDuration(result.Duration))
	}
}

// InputRows lists the label/value pairs of the inputs model m reads.
func InputRows(m valuation.Model, in valuation.Input) [][2]string {
	rows := [][2]string{
		{"Current Annual Dividend", format.Currency(in.Dividend)},
		{"Required Return", format.Percent(in.RequiredReturn)},
	}
	switch m {
	case valuation.GordonModel:
		rows = append(rows, [2]string{"Growth Rate", format.Percent(in.GrowthRate)})
	case valuation.MultiStageModel:
		rows = append(rows,
			[2]string{"Initial Growth Rate", format.Percent(in.InitialGrowth)},
			[2]string{"High Growth Years", fmt.Sprintf("%d", in.Years)},
			[2]string{"Stable Growth Rate", format.Percent(in.StableGrowth)},
		)
	}
	return rows
}

// DetailRows lists the intermediate figures of model m. Undefined figures
// are rendered as format.Undefined.
func DetailRows(m valuation.Model, in valuation.Input) [][2]string {
	switch m {
	case valuation.ZeroGrowthModel:
		return [][2]string{{"Formula", "P = D / r"}}
	case valuation.GordonModel:
		return [][2]string{
			{"Formula", "P = D1 / (r - g)"},
			{"Next Dividend (D1)", format.Currency(in.Dividend * (1 + in.GrowthRate))},
			{"Spread (r - g)", format.Percent(in.RequiredReturn - in.GrowthRate)},
		}
	case valuation.MultiStageModel:
		growth, terminal := valuation.MultiStageParts(in.Dividend, in.RequiredReturn, in.InitialGrowth, in.Years, in.StableGrowth)
		return [][2]string{
			{"Formula", "P = sum D_t/(1+r)^t + TV/(1+r)^n"},
			{"PV of Growth Phase", format.CurrencyResult(growth)},
			{"PV of Terminal Value", format.CurrencyResult(terminal)},
		}
	}
	return nil
}

// DisplayDisclaimer prints the disclaimer in the secondary color.
func DisplayDisclaimer(out io.Writer) {
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorGrey(), Disclaimer, ui.ColorReset())
}
