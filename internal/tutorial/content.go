package tutorial

import "fmt"

// CalloutKind selects the accent a host uses for a callout.
type CalloutKind string

const (
	KindDividend     CalloutKind = "dividend"
	KindReturn       CalloutKind = "return"
	KindGrowth       CalloutKind = "growth"
	KindUsage        CalloutKind = "usage"
	KindNeutral      CalloutKind = "neutral"
	KindBestPractice CalloutKind = "best-practice"
)

// Callout is a labelled highlight box. Items, when set, render as a list
// below Value.
type Callout struct {
	Label string
	Value string
	Items []string
	Kind  CalloutKind
	// Ordered marks Items as a numbered list.
	Ordered bool
}

// Page is the static content of one tutorial step.
type Page struct {
	Step      int
	Title     string
	Formula   string
	Bullets   []string
	Worked    []string
	Callouts  []Callout
	NextLabel string
}

// Heading returns "Step N/5".
func (p Page) Heading() string { return fmt.Sprintf("Step %d/%d", p.Step, Steps) }

// HasPrevious reports whether the page offers a Previous control.
func (p Page) HasPrevious() bool { return p.Step > 1 }

// Header is shown above every page while the tutorial is open.
const (
	Header    = "Dividend Discount Model Tutorial"
	Subheader = "Learn how to value stocks using dividend discount models"
)

var usingTheApp = Callout{
	Label: "Using the DDM App",
	Kind:  KindNeutral,
	Items: []string{
		"Enter stock ticker for historical data",
		"Select valuation model",
		"Adjust inputs using number fields",
		"Review valuation results",
		"Explore sensitivity plots",
	},
	Ordered: true,
}

var bestPractices = Callout{
	Label: "Best Practices",
	Kind:  KindBestPractice,
	Items: []string{
		"Compare multiple models",
		"Validate growth assumptions",
		"Use historical data as reference",
		"Consider market conditions",
	},
}

var pages = [Steps]Page{
	{
		Step:    1,
		Title:   "Understanding DDM Basics",
		Formula: "P = Σ_{t=1..∞} D_t / (1+r)^t",
		Bullets: []string{
			"Stock value = Present value of all future dividends",
			"Three main variants: Zero-Growth Model, Gordon Growth Model, Multi-Stage DDM",
			"Required return > Growth rate for valid results",
		},
		Callouts: []Callout{
			{Label: "Example Dividend", Value: "$2.00", Kind: KindDividend},
			{Label: "Example Return", Value: "10%", Kind: KindReturn},
		},
		NextLabel: "Next",
	},
	{
		Step:    2,
		Title:   "Zero-Growth Model",
		Formula: "P = D / r",
		Worked:  []string{"P = 2.00 / 0.10 = 20.00"},
		Callouts: []Callout{
			{Label: "Dividend (D)", Value: "$2.00/year", Kind: KindDividend},
			{Label: "Required Return (r)", Value: "10%", Kind: KindReturn},
			{Label: "When to Use", Kind: KindUsage, Items: []string{"Utility companies", "REITs", "Mature blue chips"}},
		},
		NextLabel: "Next: Gordon Growth Model",
	},
	{
		Step:    3,
		Title:   "Gordon Growth Model",
		Formula: "P = D_1 / (r - g)",
		Worked: []string{
			"D_1 = 2.00 × (1 + 0.05) = 2.10",
			"P = 2.10 / (0.10 - 0.05) = 42.00",
		},
		Callouts: []Callout{
			{Label: "D₀", Value: "$2.00", Kind: KindDividend},
			{Label: "Growth (g)", Value: "5%", Kind: KindGrowth},
			{Label: "Return (r)", Value: "10%", Kind: KindReturn},
			{Label: "Best For", Kind: KindUsage, Items: []string{"Consumer staples", "Dividend aristocrats", "Stable growth firms"}},
		},
		NextLabel: "Next: Multi-Stage DDM",
	},
	{
		Step:      4,
		Title:     "Multi-Stage DDM",
		Formula:   "P = Σ_{t=1..n} D_0(1+g_i)^t / (1+r)^t + D_n(1+g_s) / ((r-g_s)(1+r)^n)",
		NextLabel: "Next: Practical Application",
	},
	{
		Step:      5,
		Title:     "Practical Application",
		Callouts:  []Callout{usingTheApp, bestPractices},
		NextLabel: "Finish Tutorial",
	},
}

// PageFor returns the page for step, clamped to [1, Steps].
func PageFor(step int) Page {
	if step < 1 {
		step = 1
	}
	if step > Steps {
		step = Steps
	}
	return pages[step-1]
}

// CompletionNotes returns the callouts that stay visible after the tutorial
// is finished.
func CompletionNotes() []Callout {
	return []Callout{usingTheApp, bestPractices}
}
