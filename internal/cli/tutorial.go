package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/ui"
)

// calloutColor maps a callout kind to an ANSI color of the current theme.
func calloutColor(kind tutorial.CalloutKind) string {
	switch kind {
	case tutorial.KindDividend:
		return ui.ColorGreen()
	case tutorial.KindReturn:
		return ui.ColorBlue()
	case tutorial.KindGrowth:
		return ui.ColorOrange()
	case tutorial.KindBestPractice:
		return ui.ColorMagenta()
	default:
		return ui.ColorGrey()
	}
}

// DisplayTutorialState prints the page of state, or the completion notes
// once the tutorial is finished.
func DisplayTutorialState(out io.Writer, state tutorial.State) {
	if state.Complete() {
		DisplayCompletionNotes(out)
		return
	}
	DisplayTutorialPage(out, tutorial.PageFor(state.Step()))
}

// DisplayTutorialPage prints one tutorial page with its navigation hint.
func DisplayTutorialPage(out io.Writer, page tutorial.Page) {
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold(), tutorial.Header, ui.ColorReset())
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGrey(), tutorial.Subheader, ui.ColorReset())
	fmt.Fprintf(out, "\n%s%s: %s%s\n", ui.ColorCyan(), page.Heading(), page.Title, ui.ColorReset())

	if page.Formula != "" {
		fmt.Fprintf(out, "\n    %s%s%s\n", ui.ColorYellow(), page.Formula, ui.ColorReset())
	}
	if len(page.Bullets) > 0 {
		fmt.Fprintln(out)
		for _, b := range page.Bullets {
			fmt.Fprintf(out, "  • %s\n", b)
		}
	}
	if len(page.Worked) > 0 {
		fmt.Fprintf(out, "\n%sExample:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, line := range page.Worked {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	for _, c := range page.Callouts {
		displayCallout(out, c)
	}

	var nav []string
	if page.HasPrevious() {
		nav = append(nav, "prev")
	}
	if page.Step == tutorial.Steps {
		nav = append(nav, "finish")
	} else {
		label := page.NextLabel
		if label == "" {
			label = "Next"
		}
		nav = append(nav, fmt.Sprintf("next (%s)", label))
	}
	fmt.Fprintf(out, "\n%s[%s]%s\n", ui.ColorGrey(), strings.Join(nav, " | "), ui.ColorReset())
}

// DisplayCompletionNotes prints the callouts that remain after the tutorial.
func DisplayCompletionNotes(out io.Writer) {
	fmt.Fprintf(out, "\n%sTutorial complete.%s\n", ui.ColorGreen(), ui.ColorReset())
	for _, c := range tutorial.CompletionNotes() {
		displayCallout(out, c)
	}
}

func displayCallout(out io.Writer, c tutorial.Callout) {
	color := calloutColor(c.Kind)
	fmt.Fprintf(out, "\n%s┃ %s%s", color, c.Label, ui.ColorReset())
	if c.Value != "" {
		fmt.Fprintf(out, ": %s", c.Value)
	}
	fmt.Fprintln(out)
	for i, item := range c.Items {
		if c.Ordered {
			fmt.Fprintf(out, "%s┃%s   %d. %s\n", color, ui.ColorReset(), i+1, item)
		} else {
			fmt.Fprintf(out, "%s┃%s   - %s\n", color, ui.ColorReset(), item)
		}
	}
}
