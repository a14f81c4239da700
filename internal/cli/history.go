package cli

import (
	"fmt"
	"io"

	"github.com/agbru/ddmcalc/internal/dividends"
	"github.com/agbru/ddmcalc/internal/format"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/ui"
)

// HistoryRows caps the number of payments listed in the history table.
const HistoryRows = 8

// DisplayHistory prints the company header, the most recent payments, the
// annual totals with a sparkline and the growth rates that are defined. An
// empty series prints nothing.
func DisplayHistory(out io.Writer, h marketdata.History) {
	if h.Series.Empty() {
		return
	}
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold(), h.Title(), ui.ColorReset())

	first, _ := h.Series.First()
	last, _ := h.Series.Last()
	fmt.Fprintf(out, "%d payments from %s to %s\n",
		h.Series.Len(), first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))

	recent := h.Series.Tail(HistoryRows)
	fmt.Fprintf(out, "\n%sDate%s         %sDividend%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, p := range recent.Payments() {
		fmt.Fprintf(out, "%s   %s%10s%s\n", p.Date.Format("2006-01-02"), ui.ColorYellow(), format.Amount(p.Amount, 4), ui.ColorReset())
	}

	years := dividends.AnnualTotals(h.Series)
	if len(years) > 1 {
		fmt.Fprintf(out, "\nAnnual totals %d-%d: %s%s%s\n",
			years[0].Year, years[len(years)-1].Year,
			ui.ColorCyan(), format.Sparkline(dividends.Totals(years)), ui.ColorReset())
	}

	// Undefined growth rates are omitted.
	growth, recentGrowth := h.Growth(), h.RecentGrowth()
	if growth.Defined() || recentGrowth.Defined() {
		fmt.Fprintln(out)
	}
	if growth.Defined() {
		fmt.Fprintf(out, "Historical Growth Rate (CAGR): %s%s%s\n",
			ui.ColorGreen(), format.PercentResult(growth), ui.ColorReset())
	}
	if recentGrowth.Defined() {
		fmt.Fprintf(out, "%d-Yr Historical Growth Rate:   %s%s%s\n", marketdata.RecentGrowthYears,
			ui.ColorGreen(), format.PercentResult(recentGrowth), ui.ColorReset())
	}
}

// DisplayHistoryUnavailable prints the non-fatal notice shown when a fetch
// fails. The valuation still runs on the entered inputs.
func DisplayHistoryUnavailable(out io.Writer, ticker string, err error) {
	fmt.Fprintf(out, "\n%sNotice: no dividend history for %s (%v). Continuing with the entered inputs.%s\n",
		ui.ColorOrange(), ticker, err, ui.ColorReset())
}
