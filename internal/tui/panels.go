package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ddmcalc/internal/format"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// Panel geometry.
const (
	chartRows       = 4
	heatmapHeight   = 12
	minPanelWidth   = 30
	formPanelWidth  = 34
	resultNameWidth = 22
)

// renderResults renders the valuation panel body.
func renderResults(results []orchestration.ValuationResult, in valuation.Input, inputErr error, trend *RingBuffer) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Valuation") + "\n\n")

	if inputErr != nil {
		b.WriteString(errorStyle.Render("Invalid input: " + inputErr.Error()))
		return b.String()
	}

	for _, r := range results {
		name := fmt.Sprintf("%-*s", resultNameWidth, r.Name)
		if r.Err != nil {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(name), errorStyle.Render(r.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(name), valueStyle.Render(format.CurrencyResult(r.Value)))
	}

	if len(results) == 1 && results[0].Err == nil {
		for _, row := range breakdown(results[0].Model, in) {
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(row[0]+":"), row[1])
		}
	}

	if trend != nil && trend.Len() > 1 {
		fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("Trend:"), trendStyle.Render(RenderSparkline(Normalize(trend.Slice()))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// breakdown returns the intermediate figures of a single valuation.
func breakdown(m valuation.Model, in valuation.Input) [][2]string {
	switch m {
	case valuation.GordonModel:
		return [][2]string{
			{"D1", format.Currency(in.Dividend * (1 + in.GrowthRate))},
			{"r - g", format.Percent(in.RequiredReturn - in.GrowthRate)},
		}
	case valuation.MultiStageModel:
		growth, terminal := valuation.MultiStageParts(in.Dividend, in.RequiredReturn, in.InitialGrowth, in.Years, in.StableGrowth)
		return [][2]string{
			{"PV of Growth Phase", format.CurrencyResult(growth)},
			{"PV of Terminal Value", format.CurrencyResult(terminal)},
		}
	}
	return nil
}

// renderHistory renders the dividend history panel body: a braille chart of
// the payments and the growth rates that are defined.
func renderHistory(h marketdata.History, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(h.Title()) + "\n")

	first, _ := h.Series.First()
	last, _ := h.Series.Last()
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("%d payments from %s to %s",
		h.Series.Len(), first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))))

	for _, line := range RenderBrailleChart(Normalize(h.Series.Amounts()), max(10, width), chartRows) {
		b.WriteString(chartStyle.Render(line) + "\n")
	}

	fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("Last payment:"), valueStyle.Render("$"+format.Amount(last.Amount, 4)))
	if g := h.Growth(); g.Defined() {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Historical Growth Rate (CAGR):"), successStyle.Render(format.PercentResult(g)))
	}
	if g := h.RecentGrowth(); g.Defined() {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%d-Yr Historical Growth Rate:", marketdata.RecentGrowthYears)),
			successStyle.Render(format.PercentResult(g)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSensitivity renders the Gordon heat map around in. It renders a
// notice instead when the Gordon valuation of in is undefined.
func renderSensitivity(in valuation.Input, width int) string {
	title := titleStyle.Render("Gordon Sensitivity") + "\n\n"
	if !valuation.GordonGrowth(in.Dividend, in.RequiredReturn, in.GrowthRate).Defined() {
		return title + warningStyle.Render("The Gordon valuation is undefined for these inputs (growth must be below the required return).")
	}
	s := sensitivity.GordonSurface(in.Dividend, in.RequiredReturn, in.GrowthRate, sensitivity.DefaultPoints)
	lines := sensitivity.HeatmapLines(s, max(10, width-10), heatmapHeight)
	return title + strings.Join(lines, "\n")
}

// renderTutorial renders the tutorial overlay for state.
func renderTutorial(state tutorial.State, width int) string {
	var b strings.Builder
	b.WriteString(overlayHeadStyle.Render(tutorial.Header) + "\n")
	b.WriteString(dimStyle.Render(tutorial.Subheader) + "\n\n")

	if state.Complete() {
		b.WriteString(successStyle.Render("Tutorial complete.") + "\n")
		for _, c := range tutorial.CompletionNotes() {
			b.WriteString("\n" + renderCallout(c) + "\n")
		}
		return overlayStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
	}

	page := tutorial.PageFor(state.Step())
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(page.Heading()+": "+page.Title))
	if page.Formula != "" {
		fmt.Fprintf(&b, "\n  %s\n", formulaStyle.Render(page.Formula))
	}
	if len(page.Bullets) > 0 {
		b.WriteString("\n")
		for _, bullet := range page.Bullets {
			fmt.Fprintf(&b, "  • %s\n", bullet)
		}
	}
	if len(page.Worked) > 0 {
		b.WriteString("\n" + labelStyle.Render("Example:") + "\n")
		for _, line := range page.Worked {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	for _, c := range page.Callouts {
		b.WriteString("\n" + renderCallout(c) + "\n")
	}

	var nav []string
	if page.HasPrevious() {
		nav = append(nav, "p: previous")
	}
	if state.CanFinish() {
		nav = append(nav, "f: "+page.NextLabel)
	} else {
		nav = append(nav, "n: "+page.NextLabel)
	}
	nav = append(nav, "t: close")
	fmt.Fprintf(&b, "\n%s", dimStyle.Render(strings.Join(nav, "  ·  ")))
	return overlayStyle.Width(width).Render(b.String())
}

// renderCallout renders a callout as a box with a colored left border.
func renderCallout(c tutorial.Callout) string {
	color := ui.CalloutColor(string(c.Kind))
	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(c.Label)
	if c.Value != "" {
		head += ": " + c.Value
	}
	lines := []string{head}
	for i, item := range c.Items {
		if c.Ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			lines = append(lines, "- "+item)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}
