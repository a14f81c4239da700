package cli

import (
	"fmt"
	"io"

	"github.com/agbru/ddmcalc/internal/config"
	"github.com/agbru/ddmcalc/internal/format"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// Heat map size in terminal cells.
const (
	HeatmapWidth  = 50
	HeatmapHeight = 20
)

// PrintExecutionConfig displays the inputs and limits of the run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	in := cfg.ToInput()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Valuing a dividend of %s%s%s at a required return of %s%s%s.\n",
		ui.ColorMagenta(), format.Currency(in.Dividend), ui.ColorReset(),
		ui.ColorYellow(), format.Percent(in.RequiredReturn), ui.ColorReset())
	if cfg.Ticker != "" {
		fmt.Fprintf(out, "Dividend history: %s%s%s (cached for %s).\n",
			ui.ColorCyan(), cfg.Ticker, ui.ColorReset(), cfg.CacheTTL)
	}
	fmt.Fprintf(out, "Timeout: %s%s%s.\n", ui.ColorCyan(), cfg.Timeout, ui.ColorReset())
}

// PrintExecutionMode displays whether one model runs or all are compared.
func PrintExecutionMode(calculators []valuation.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Comparison of all valuation models"
	} else {
		modeDesc = fmt.Sprintf("Single valuation with the %s%s%s",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// DisplaySensitivity prints the Gordon sensitivity heat map of s.
func DisplaySensitivity(out io.Writer, s sensitivity.Surface) error {
	fmt.Fprintf(out, "\n%sSensitivity Analysis%s\n",
		ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "%d of %d grid points defined.\n\n", s.Defined(), len(s.Growth)*len(s.Returns))
	return sensitivity.RenderHeatmap(out, s, HeatmapWidth, HeatmapHeight)
}
