package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"solarized", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	t.Run("flag disables colors", func(t *testing.T) {
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q", GetCurrentTheme().Name)
		}
		if ColorGreen() != "" || ColorReset() != "" {
			t.Error("colorless theme should have empty escape codes")
		}
		if Paint(ColorRed(), "x") != "x" {
			t.Error("Paint should not decorate without colors")
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q", GetCurrentTheme().Name)
		}
		if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
			t.Error("TUI theme should be colorless")
		}
		if _, ok := CalloutColor("dividend").(lipgloss.NoColor); !ok {
			t.Error("callouts should be colorless")
		}
	})

	t.Run("default is dark", func(t *testing.T) {
		if _, set := os.LookupEnv("NO_COLOR"); set {
			t.Skip("NO_COLOR is set in the environment")
		}
		InitTheme(false)
		if GetCurrentTheme().Name != "dark" {
			t.Errorf("theme = %q", GetCurrentTheme().Name)
		}
		if got := Paint(ColorGreen(), "ok"); got != DarkTheme.Success+"ok"+DarkTheme.Reset {
			t.Errorf("Paint = %q", got)
		}
		if CalloutColor("growth") != lipgloss.Color("#87D787") {
			t.Error("unexpected growth callout color")
		}
		if _, ok := CalloutColor("unknown").(lipgloss.NoColor); !ok {
			t.Error("unknown callout kind should be colorless")
		}
	})
}
