// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResults], [DisplayHistory].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile], [WriteSensitivityCSV].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/format"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path of the report (empty for no file output).
	OutputFile string
	// Quiet prints bare values for scripts.
	Quiet bool
}

// createFile creates path, making its parent directories first.
func createFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.WrapError(err, "failed to create directory")
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create output file")
	}
	return file, nil
}

// WriteReportToFile writes the valuation report of results to
// config.OutputFile. It does nothing when no file is configured.
func WriteReportToFile(results []orchestration.ValuationResult, in valuation.Input, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}
	file, err := createFile(config.OutputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Dividend Discount Model Valuation\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Dividend: %s\n", format.Currency(in.Dividend))
	fmt.Fprintf(file, "# Required return: %s\n", format.Percent(in.RequiredReturn))
	fmt.Fprintf(file, "\n")

	for _, res := range results {
		fmt.Fprintf(file, "[%s]\n", res.Name)
		for _, row := range InputRows(res.Model, in) {
			fmt.Fprintf(file, "%s = %s\n", row[0], row[1])
		}
		if res.Err != nil {
			fmt.Fprintf(file, "Error = %v\n", res.Err)
		}
		fmt.Fprintf(file, "Value = %s\n\n", format.CurrencyResult(res.Value))
	}
	return file.Close()
}

// WriteSensitivityCSV writes the grid of s to path as CSV.
func WriteSensitivityCSV(path string, s sensitivity.Surface) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := sensitivity.WriteCSV(file, s); err != nil {
		return apperrors.WrapError(err, "failed to write sensitivity grid %s", path)
	}
	return file.Close()
}

// FormatQuietResult returns the bare value of result for scripting.
func FormatQuietResult(result orchestration.ValuationResult) string {
	return result.Value.String()
}

// DisplayQuietResults prints one line per result. A single result prints
// its value alone; several results are prefixed with the model key.
func DisplayQuietResults(out io.Writer, results []orchestration.ValuationResult) {
	if len(results) == 1 {
		fmt.Fprintln(out, FormatQuietResult(results[0]))
		return
	}
	for _, res := range results {
		fmt.Fprintf(out, "%s %s\n", res.Model.Key(), FormatQuietResult(res))
	}
}

// DisplaySaved confirms that a file was written.
func DisplaySaved(out io.Writer, what, path string) {
	fmt.Fprintf(out, "\n%s✓ %s saved to: %s%s%s\n",
		ui.ColorGreen(), what, ui.ColorCyan(), path, ui.ColorReset())
}
