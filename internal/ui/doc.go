// Package ui provides the color themes shared by the CLI and the TUI: ANSI
// escape codes for plain terminal output, lipgloss colors for the dashboard,
// and the accent used for each kind of tutorial callout.
package ui
