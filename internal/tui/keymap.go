package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings. It implements help.KeyMap.
type KeyMap struct {
	Quit           key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	Blur           key.Binding
	CycleModel     key.Binding
	Fetch          key.Binding
	Sensitivity    key.Binding
	Tutorial       key.Binding
	TutorialNext   key.Binding
	TutorialPrev   key.Binding
	TutorialFinish key.Binding
	Reset          key.Binding
	Help           key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave field"),
		),
		CycleModel: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "model"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "fetch history"),
		),
		Sensitivity: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sensitivity"),
		),
		Tutorial: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tutorial"),
		),
		TutorialNext: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next"),
		),
		TutorialPrev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "previous"),
		),
		TutorialFinish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.CycleModel, k.Fetch, k.Sensitivity, k.Tutorial, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Blur, k.CycleModel},
		{k.Fetch, k.Sensitivity, k.Reset},
		{k.Tutorial, k.TutorialNext, k.TutorialPrev, k.TutorialFinish},
		{k.Help, k.Quit},
	}
}

// tutorialKeyMap is the footer help while the tutorial overlay is open.
type tutorialKeyMap struct{ k KeyMap }

func (t tutorialKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{t.k.TutorialPrev, t.k.TutorialNext, t.k.TutorialFinish, t.k.Tutorial, t.k.Quit}
}

func (t tutorialKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{t.ShortHelp()}
}
