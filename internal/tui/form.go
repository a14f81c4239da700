package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/ddmcalc/internal/config"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/valuation"
)

type field int

const (
	fieldTicker field = iota
	fieldDividend
	fieldReturn
	fieldGrowth
	fieldInitial
	fieldStable
	fieldYears
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Stock Ticker",
	"Current Dividend ($)",
	"Required Return (%)",
	"Growth Rate (%)",
	"Initial Growth Rate (%)",
	"Stable Growth Rate (%)",
	"High Growth Years",
}

// flag names used in validation errors.
var fieldNames = [fieldCount]string{"ticker", "dividend", "return", "growth", "initial-growth", "stable-growth", "years"}

// fieldsFor lists the fields shown for a model selection.
func fieldsFor(model string) []field {
	switch model {
	case valuation.ZeroGrowthModel.Key():
		return []field{fieldTicker, fieldDividend, fieldReturn}
	case valuation.GordonModel.Key():
		return []field{fieldTicker, fieldDividend, fieldReturn, fieldGrowth}
	case valuation.MultiStageModel.Key():
		return []field{fieldTicker, fieldDividend, fieldReturn, fieldInitial, fieldStable, fieldYears}
	}
	return []field{fieldTicker, fieldDividend, fieldReturn, fieldGrowth, fieldInitial, fieldStable, fieldYears}
}

// modelLabel returns the display name of a model selection.
func modelLabel(key string) string {
	if key == orchestration.AllModels {
		return "All models (comparison)"
	}
	if m, err := valuation.ParseModel(key); err == nil {
		return m.String()
	}
	return key
}

// FormModel holds one text input per valuation field and the selected model.
type FormModel struct {
	inputs  [fieldCount]textinput.Model
	models  []string
	model   string
	focus   field
	focused bool
}

// NewFormModel creates a form filled from cfg. models is the cycle order of
// the model selector.
func NewFormModel(cfg config.AppConfig, models []string) FormModel {
	f := FormModel{models: models}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 12
		in.Width = 12
		f.inputs[i] = in
	}
	f.inputs[fieldTicker].Placeholder = "e.g. KO"
	f.inputs[fieldTicker].CharLimit = 10
	f.Load(cfg)
	return f
}

// Load replaces every field with the values of cfg.
func (f *FormModel) Load(cfg config.AppConfig) {
	f.model = cfg.Model
	f.inputs[fieldTicker].SetValue(cfg.Ticker)
	f.inputs[fieldDividend].SetValue(strconv.FormatFloat(cfg.Dividend, 'f', 2, 64))
	f.inputs[fieldReturn].SetValue(formatRate(cfg.RequiredReturn))
	f.inputs[fieldGrowth].SetValue(formatRate(cfg.GrowthRate))
	f.inputs[fieldInitial].SetValue(formatRate(cfg.InitialGrowth))
	f.inputs[fieldStable].SetValue(formatRate(cfg.StableGrowth))
	f.inputs[fieldYears].SetValue(strconv.Itoa(cfg.Years))
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Model returns the selected model key.
func (f FormModel) Model() string { return f.model }

// Ticker returns the entered ticker, trimmed.
func (f FormModel) Ticker() string {
	return strings.TrimSpace(f.inputs[fieldTicker].Value())
}

// Value returns the raw text of fl.
func (f FormModel) Value(fl field) string { return f.inputs[fl].Value() }

// SetValue replaces the text of fl.
func (f *FormModel) SetValue(fl field, s string) { f.inputs[fl].SetValue(s) }

// Focused reports whether a field has keyboard focus, and which.
func (f FormModel) Focused() (field, bool) { return f.focus, f.focused }

// Visible returns the fields shown for the selected model.
func (f FormModel) Visible() []field { return fieldsFor(f.model) }

// Focus gives fl keyboard focus.
func (f *FormModel) Focus(fl field) {
	f.Blur()
	f.focus, f.focused = fl, true
	f.inputs[fl].Focus()
}

// Blur removes keyboard focus from every field.
func (f *FormModel) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focused = false
}

// Move focuses the visible field delta steps away, wrapping around. With no
// field focused it focuses the first or last one.
func (f *FormModel) Move(delta int) {
	visible := f.Visible()
	idx := slices.Index(visible, f.focus)
	switch {
	case !f.focused || idx < 0:
		idx = 0
		if delta < 0 {
			idx = len(visible) - 1
		}
	default:
		idx = (idx + delta + len(visible)) % len(visible)
	}
	f.Focus(visible[idx])
}

// CycleModel selects the next model. Focus moves to the ticker when the
// focused field is hidden by the new model.
func (f *FormModel) CycleModel() {
	idx := slices.Index(f.models, f.model)
	f.model = f.models[(idx+1)%len(f.models)]
	if f.focused && !slices.Contains(f.Visible(), f.focus) {
		f.Focus(fieldTicker)
	}
}

// Accepts reports whether msg edits the focused field. Numeric fields take
// digits and a decimal point only, leaving other letters to the dashboard.
func (f FormModel) Accepts(msg tea.KeyMsg) bool {
	if !f.focused {
		return false
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeySpace:
		return f.focus == fieldTicker
	case tea.KeyRunes:
		if f.focus == fieldTicker {
			return true
		}
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

// Update forwards msg to the focused input.
func (f FormModel) Update(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Apply parses the fields into a copy of base. Hidden fields are parsed too
// so that switching models never keeps a stale value.
func (f FormModel) Apply(base config.AppConfig) (config.AppConfig, error) {
	cfg := base
	cfg.Model = f.model
	cfg.Ticker = f.Ticker()

	floats := []struct {
		fl  field
		dst *float64
	}{
		{fieldDividend, &cfg.Dividend},
		{fieldReturn, &cfg.RequiredReturn},
		{fieldGrowth, &cfg.GrowthRate},
		{fieldInitial, &cfg.InitialGrowth},
		{fieldStable, &cfg.StableGrowth},
	}
	for _, p := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[p.fl].Value()), 64)
		if err != nil {
			return base, apperrors.ValidationError{Field: fieldNames[p.fl], Message: "must be a number"}
		}
		*p.dst = v
	}
	years, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldYears].Value()))
	if err != nil {
		return base, apperrors.ValidationError{Field: fieldNames[fieldYears], Message: "must be a whole number"}
	}
	cfg.Years = years
	return cfg, nil
}

// View renders the model selector and the visible fields.
func (f FormModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Model:"), modelStyle.Render(modelLabel(f.model)))
	for _, fl := range f.Visible() {
		label := labelStyle
		marker := "  "
		if f.focused && f.focus == fl {
			label = focusLabelStyle
			marker = "▸ "
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", marker, label.Render(fieldLabels[fl]), f.inputs[fl].View())
	}
	return strings.TrimRight(b.String(), "\n")
}
