package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// HeaderModel renders the top bar: title, version and session.
type HeaderModel struct {
	version string
	session uuid.UUID
	width   int
}

// NewHeaderModel creates a header for one dashboard session.
func NewHeaderModel(version string, session uuid.UUID) HeaderModel {
	return HeaderModel{version: version, session: session}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "DDM Valuation"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText)

	right := ""
	if h.session != uuid.Nil {
		right = sessionStyle.Render("session " + h.session.String()[:8])
	}

	gap := max(0, h.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
