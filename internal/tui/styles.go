package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ddmcalc/internal/ui"
)

// Style variables for the dashboard, built from the ui theme by
// initTUIStyles.
var (
	panelStyle       lipgloss.Style
	focusPanelStyle  lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	sessionStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	focusLabelStyle  lipgloss.Style
	valueStyle       lipgloss.Style
	modelStyle       lipgloss.Style
	successStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	warningStyle     lipgloss.Style
	dimStyle         lipgloss.Style
	chartStyle       lipgloss.Style
	trendStyle       lipgloss.Style
	formulaStyle     lipgloss.Style
	overlayStyle     lipgloss.Style
	overlayHeadStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again once the app has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	focusPanelStyle = panelStyle.BorderForeground(t.Accent)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	sessionStyle = lipgloss.NewStyle().Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	focusLabelStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	valueStyle = lipgloss.NewStyle().Foreground(t.Value).Bold(true)
	modelStyle = lipgloss.NewStyle().Foreground(t.Info).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	chartStyle = lipgloss.NewStyle().Foreground(t.Accent)
	trendStyle = lipgloss.NewStyle().Foreground(t.Value)
	formulaStyle = lipgloss.NewStyle().Foreground(t.Value).Italic(true)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Foreground(t.Text).
		Padding(1, 2)

	overlayHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}
