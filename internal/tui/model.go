package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ddmcalc/internal/config"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/metrics"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// TrendCapacity is the number of recent valuations kept for the trend line.
const TrendCapacity = 40

// Options configures a dashboard session.
type Options struct {
	Config   config.AppConfig
	Factory  valuation.CalculatorFactory
	Provider marketdata.Provider
	Metrics  *metrics.Metrics
	Logger   logging.Logger
	Version  string
}

// historyMsg carries the result of a history fetch. Fetches started before
// the latest one are ignored by generation.
type historyMsg struct {
	generation uint64
	history    marketdata.History
	err        error
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// rightWidth is the inner width of the results and history column.
func (l LayoutManager) rightWidth() int {
	return max(minPanelWidth, l.width-formPanelWidth-6)
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	form    FormModel
	help    help.Model
	spinner spinner.Model
	keymap  KeyMap

	LayoutManager

	ctx      context.Context
	initial  config.AppConfig
	cfg      config.AppConfig
	factory  valuation.CalculatorFactory
	provider marketdata.Provider
	metrics  *metrics.Metrics
	logger   logging.Logger
	names    []string

	session         *tutorial.Session
	showTutorial    bool
	showSensitivity bool

	results  []orchestration.ValuationResult
	inputErr error
	trend    *RingBuffer

	history    *marketdata.History
	historyErr error
	fetching   bool
	generation uint64
}

// modelCycle lists the model keys of factory in model order, then "all".
func modelCycle(factory valuation.CalculatorFactory) []string {
	var keys []string
	for _, c := range orchestration.GetCalculatorsToRun(orchestration.AllModels, factory) {
		keys = append(keys, c.Model().Key())
	}
	return append(keys, orchestration.AllModels)
}

// NewModel creates a dashboard with the tutorial overlay open and the
// initial valuation computed.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Factory == nil {
		opts.Factory = valuation.GlobalFactory()
	}
	session := tutorial.NewSession()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = chartStyle

	m := Model{
		header:       NewHeaderModel(opts.Version, session.ID),
		form:         NewFormModel(opts.Config, modelCycle(opts.Factory)),
		help:         help.New(),
		spinner:      sp,
		keymap:       DefaultKeyMap(),
		ctx:          ctx,
		initial:      opts.Config,
		cfg:          opts.Config,
		factory:      opts.Factory,
		provider:     opts.Provider,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		names:        opts.Factory.List(),
		session:      session,
		showTutorial: true,
		trend:        NewRingBuffer(TrendCapacity),
	}
	m.recalculate()
	if m.form.Ticker() != "" && m.provider != nil {
		m.fetching, m.generation = true, 1
	}
	return m
}

// Init starts the history fetch of a configured ticker.
func (m Model) Init() tea.Cmd {
	if !m.fetching {
		return nil
	}
	return tea.Batch(m.spinner.Tick, fetchHistoryCmd(m.ctx, m.provider, m.form.Ticker(), m.generation))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case historyMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.fetching = false
		if msg.err != nil {
			m.history, m.historyErr = nil, msg.err
			m.logger.Error("dividend history unavailable", msg.err, logging.String("ticker", msg.history.Ticker))
			return m, nil
		}
		h := msg.history
		m.history, m.historyErr = &h, nil
		m.logger.Debug("dividend history loaded",
			logging.String("ticker", h.Ticker),
			logging.Int("payments", h.Series.Len()))
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.showTutorial {
		return m.handleTutorialKey(msg)
	}

	if m.form.Accepts(msg) {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if fl, _ := m.form.Focused(); fl != fieldTicker {
			m.recalculate()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextField):
		m.form.Move(1)

	case key.Matches(msg, m.keymap.PrevField):
		m.form.Move(-1)

	case key.Matches(msg, m.keymap.Blur):
		m.form.Blur()

	case key.Matches(msg, m.keymap.CycleModel):
		m.form.CycleModel()
		m.recalculate()

	case key.Matches(msg, m.keymap.Fetch):
		return m, m.startFetch()

	case key.Matches(msg, m.keymap.Sensitivity):
		m.showSensitivity = !m.showSensitivity

	case key.Matches(msg, m.keymap.Tutorial):
		m.showTutorial = true

	case key.Matches(msg, m.keymap.Reset):
		m.form.Load(m.initial)
		m.form.Blur()
		m.trend.Reset()
		m.history, m.historyErr = nil, nil
		m.fetching = false
		m.generation++
		m.recalculate()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleTutorialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action tutorial.Action
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Tutorial), key.Matches(msg, m.keymap.Blur):
		m.showTutorial = false
		return m, nil
	case key.Matches(msg, m.keymap.TutorialNext):
		action = tutorial.ActionNext
	case key.Matches(msg, m.keymap.TutorialPrev):
		action = tutorial.ActionPrevious
	case key.Matches(msg, m.keymap.TutorialFinish):
		action = tutorial.ActionFinish
	default:
		return m, nil
	}
	state := m.session.Apply(action)
	m.logger.Debug("tutorial step",
		logging.String("session", m.session.ID.String()),
		logging.String("state", state.String()))
	return m, nil
}

// recalculate parses the form and reruns the selected models. Defined
// values feed the trend line.
func (m *Model) recalculate() {
	cfg, err := m.form.Apply(m.cfg)
	if err == nil {
		err = cfg.Validate(m.names)
	}
	if err != nil {
		m.inputErr, m.results = err, nil
		return
	}
	m.cfg, m.inputErr = cfg, nil

	calcs := orchestration.GetCalculatorsToRun(cfg.Model, m.factory)
	m.results = orchestration.ExecuteValuations(m.ctx, calcs, cfg.ToInput(),
		orchestration.WithMetrics(m.metrics), orchestration.WithLogger(m.logger))

	for _, r := range m.results {
		if v, ok := r.Value.Value(); ok {
			if m.trend.Len() == 0 || m.trend.Last() != v {
				m.trend.Push(v)
			}
			break
		}
	}
}

// startFetch begins a history fetch for the entered ticker.
func (m *Model) startFetch() tea.Cmd {
	ticker := m.form.Ticker()
	switch {
	case ticker == "":
		m.historyErr = apperrors.ValidationError{Field: "ticker", Message: "enter a ticker first"}
		return nil
	case m.provider == nil:
		m.historyErr = errors.New("no market data provider configured")
		return nil
	}
	m.generation++
	m.fetching = true
	m.historyErr = nil
	return tea.Batch(m.spinner.Tick, fetchHistoryCmd(m.ctx, m.provider, ticker, m.generation))
}

// fetchHistoryCmd fetches the history of ticker off the UI goroutine.
func fetchHistoryCmd(ctx context.Context, p marketdata.Provider, ticker string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		h, err := marketdata.FetchHistory(ctx, p, ticker)
		return historyMsg{generation: gen, history: h, err: err}
	}
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	header := m.header.View()

	var body string
	var footer string
	if m.showTutorial {
		overlay := renderTutorial(m.session.State, min(m.width-4, 90))
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, overlay)
		footer = m.help.View(tutorialKeyMap{m.keymap})
	} else {
		body = m.renderBody()
		footer = m.help.View(m.keymap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderBody() string {
	formPanel := panelStyle
	if _, ok := m.form.Focused(); ok {
		formPanel = focusPanelStyle
	}
	left := formPanel.Width(formPanelWidth).Render(m.form.View())

	w := m.rightWidth()
	in := m.cfg.ToInput()
	right := []string{panelStyle.Width(w).Render(renderResults(m.results, in, m.inputErr, m.trend))}
	if panel := m.historyPanel(w - 4); panel != "" {
		right = append(right, panelStyle.Width(w).Render(panel))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.JoinVertical(lipgloss.Left, right...))

	if m.showSensitivity && m.inputErr == nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, panelStyle.Width(m.width-2).Render(renderSensitivity(in, m.width-6)))
	}
	return body
}

func (m Model) historyPanel(width int) string {
	switch {
	case m.fetching:
		return m.spinner.View() + " Fetching dividend history..."
	case m.historyErr != nil:
		return warningStyle.Render(fmt.Sprintf("Notice: no dividend history for %s (%v).", m.form.Ticker(), m.historyErr))
	case m.history != nil:
		return renderHistory(*m.history, width)
	}
	return ""
}

// Run is the public entry point for the TUI mode. It returns the exit code.
func Run(ctx context.Context, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		model.logger.Error("dashboard failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
