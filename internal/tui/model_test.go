package tui

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"

	"github.com/agbru/ddmcalc/internal/config"
	"github.com/agbru/ddmcalc/internal/dividends"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/marketdata/mocks"
	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

func TestMain(m *testing.M) {
	ui.InitTheme(true)
	initTUIStyles()
	os.Exit(m.Run())
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

// send feeds msgs to m in order and returns the model and the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// newDashboard returns a model with the tutorial closed.
func newDashboard(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.Model == "" {
		opts.Config = config.Default()
	}
	m, _ := send(t, NewModel(context.Background(), opts), runes("t"))
	if m.showTutorial {
		t.Fatal("tutorial overlay should close on t")
	}
	return m
}

func primaryValue(t *testing.T, m Model) float64 {
	t.Helper()
	if len(m.results) == 0 {
		t.Fatalf("no results (input error: %v)", m.inputErr)
	}
	v, ok := m.results[0].Value.Value()
	if !ok {
		t.Fatalf("%s is undefined: %v", m.results[0].Name, m.results[0].Err)
	}
	return v
}

func TestNewModel_Defaults(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), Options{Config: config.Default()})

	if !m.showTutorial {
		t.Error("tutorial overlay should be open at startup")
	}
	if m.session.State != tutorial.New() {
		t.Errorf("tutorial state = %v, want initial", m.session.State)
	}
	if got := primaryValue(t, m); math.Abs(got-42) > 1e-9 {
		t.Errorf("initial Gordon value = %v, want 42", got)
	}
	if m.Init() != nil {
		t.Error("Init should not fetch without a ticker")
	}
	if m.trend.Len() != 1 {
		t.Errorf("trend has %d samples, want 1", m.trend.Len())
	}
}

func TestModel_TutorialNavigation(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), Options{Config: config.Default()})

	m, _ = send(t, m, runes("n"), runes("n"), runes("p"))
	if m.session.State.Step() != 2 {
		t.Errorf("step = %d, want 2", m.session.State.Step())
	}

	// Finish is a no-op before the last page.
	m, _ = send(t, m, runes("f"))
	if m.session.State.Complete() {
		t.Error("finish before step 5 should be ignored")
	}

	m, _ = send(t, m, runes("n"), runes("n"), runes("n"), runes("n"), runes("f"))
	if !m.session.State.Complete() {
		t.Errorf("state = %v, want complete", m.session.State)
	}

	// Keys that edit the form do nothing while the overlay is open.
	m, _ = send(t, m, runes("m"), keyOf(tea.KeyEsc))
	if m.form.Model() != config.DefaultModel {
		t.Errorf("model changed behind the overlay: %s", m.form.Model())
	}
	if m.showTutorial {
		t.Error("esc should close the overlay")
	}

	// Reopening after completion keeps the completed state.
	m, _ = send(t, m, runes("t"))
	if !m.showTutorial || !m.session.State.Complete() {
		t.Error("reopened tutorial should show the completion notes")
	}
}

func TestModel_CycleModel(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})

	want := []string{"multistage", "all", "zero", "gordon"}
	for _, w := range want {
		m, _ = send(t, m, runes("m"))
		if m.form.Model() != w {
			t.Fatalf("model = %s, want %s", m.form.Model(), w)
		}
	}

	m, _ = send(t, m, runes("m"), runes("m"))
	if len(m.results) != 3 {
		t.Fatalf("all models should produce 3 results, got %d", len(m.results))
	}
	for _, r := range m.results {
		if r.Err != nil {
			t.Errorf("%s failed: %v", r.Name, r.Err)
		}
	}
}

func TestModel_EditGrowthField(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})

	// ticker, dividend, return, growth
	m, _ = send(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyTab), keyOf(tea.KeyTab), keyOf(tea.KeyTab))
	if fl, ok := m.form.Focused(); !ok || fl != fieldGrowth {
		t.Fatalf("focus = %v (%v), want growth", fl, ok)
	}

	m, _ = send(t, m, keyOf(tea.KeyBackspace))
	var verr apperrors.ValidationError
	if !errors.As(m.inputErr, &verr) || verr.Field != "growth" {
		t.Fatalf("empty growth should be a validation error, got %v", m.inputErr)
	}

	m, _ = send(t, m, runes("1"), runes("2"))
	var precon apperrors.PreconditionError
	if len(m.results) != 1 || !errors.As(m.results[0].Err, &precon) {
		t.Fatalf("growth 12%% >= return 10%% should fail the precondition, got %+v", m.results)
	}

	// Letters are not numeric input: 'x' is ignored and 'q' quits.
	m, _ = send(t, m, runes("x"))
	if m.form.Value(fieldGrowth) != "12" {
		t.Errorf("growth = %q, want 12", m.form.Value(fieldGrowth))
	}
	if _, cmd := send(t, m, runes("q")); !isQuit(cmd) {
		t.Error("q should quit from a numeric field")
	}
}

func TestModel_TickerFieldTakesLetters(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})

	m, cmd := send(t, m, keyOf(tea.KeyTab), runes("q"), runes("k"))
	if isQuit(cmd) {
		t.Fatal("q typed in the ticker field should not quit")
	}
	if m.form.Ticker() != "qk" {
		t.Errorf("ticker = %q, want qk", m.form.Ticker())
	}
	if _, cmd := send(t, m, keyOf(tea.KeyCtrlC)); !isQuit(cmd) {
		t.Error("ctrl+c should always quit")
	}
}

func TestModel_FetchWithoutTicker(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})

	m, cmd := send(t, m, keyOf(tea.KeyEnter))
	if cmd != nil || m.fetching {
		t.Error("no fetch should start without a ticker")
	}
	var verr apperrors.ValidationError
	if !errors.As(m.historyErr, &verr) {
		t.Errorf("historyErr = %v, want ValidationError", m.historyErr)
	}
}

func growingSeries(years int, growth float64) dividends.Series {
	start := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	payments := make([]dividends.Payment, 0, years+1)
	for i := 0; i <= years; i++ {
		payments = append(payments, dividends.Payment{
			Date:   start.AddDate(i, 0, 0),
			Amount: math.Pow(1+growth, float64(i)),
		})
	}
	return dividends.NewSeries(payments)
}

func TestModel_HistoryIsDisplayOnly(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().FetchDividendHistory(gomock.Any(), "KO").Return(growingSeries(8, 0.07), nil)
	p.EXPECT().FetchCompanyName(gomock.Any(), "KO").Return("The Coca-Cola Company")

	cfg := config.Default()
	cfg.Ticker = "ko"
	m := NewModel(context.Background(), Options{Config: cfg, Provider: p})
	if !m.fetching || m.Init() == nil {
		t.Fatal("a configured ticker should be fetched at startup")
	}

	msg := fetchHistoryCmd(context.Background(), p, m.form.Ticker(), m.generation)()
	m, _ = send(t, m, msg, runes("t"), tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.fetching || m.history == nil {
		t.Fatalf("history not loaded (err: %v)", m.historyErr)
	}
	if m.history.Company != "The Coca-Cola Company" {
		t.Errorf("company = %q", m.history.Company)
	}
	if !strings.Contains(m.View(), "Historical Growth Rate (CAGR):") {
		t.Error("the CAGR should be shown once the history is loaded")
	}

	m, _ = send(t, m, runes("c"))
	if m.form.Value(fieldGrowth) != "5" || m.cfg.GrowthRate != 5 {
		t.Errorf("growth changed to %q (config %v); the CAGR is a reference only",
			m.form.Value(fieldGrowth), m.cfg.GrowthRate)
	}
	if v := primaryValue(t, m); math.Abs(v-42) > 1e-9 {
		t.Errorf("valuation = %v, want 42", v)
	}
}

func TestModel_StaleHistoryIgnored(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})
	m.generation = 3
	m.fetching = true

	m, _ = send(t, m, historyMsg{generation: 2, err: errors.New("late")})
	if !m.fetching || m.historyErr != nil {
		t.Error("a stale history message should be ignored")
	}

	m, _ = send(t, m, historyMsg{generation: 3, err: apperrors.DataUnavailableError{Ticker: "ZZZZ"}})
	if m.fetching || m.history != nil || m.historyErr == nil {
		t.Error("the current failure should be recorded")
	}
}

func TestRenderHistory_UndefinedGrowthHidden(t *testing.T) {
	t.Parallel()
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	h := marketdata.History{
		Ticker: "KO",
		Series: dividends.NewSeries([]dividends.Payment{{Date: day, Amount: 0.41}, {Date: day, Amount: 0.44}}),
	}
	out := renderHistory(h, 40)
	if !strings.Contains(out, "Last payment:") {
		t.Errorf("history panel missing the last payment:\n%s", out)
	}
	if strings.Contains(out, "Growth Rate") || strings.Contains(out, "n/a") {
		t.Errorf("undefined growth should not be shown:\n%s", out)
	}
}

func TestModel_Reset(t *testing.T) {
	t.Parallel()
	m := newDashboard(t, Options{})
	m.form.SetValue(fieldDividend, "3")
	m.recalculate()
	m, _ = send(t, m, runes("m"), runes("r"))

	if m.form.Model() != config.DefaultModel || m.form.Value(fieldDividend) != "2.00" {
		t.Errorf("reset left model=%s dividend=%s", m.form.Model(), m.form.Value(fieldDividend))
	}
	if m.trend.Len() != 1 {
		t.Errorf("trend has %d samples after reset, want 1", m.trend.Len())
	}
}

func TestModel_View(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), Options{Config: config.Default(), Version: "v1.2.3"})
	if m.View() != "Initializing..." {
		t.Error("view before the first resize should be the placeholder")
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"DDM Valuation v1.2.3", tutorial.Header, "Step 1/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("tutorial view missing %q", want)
		}
	}

	m, _ = send(t, m, runes("t"), runes("s"))
	view = m.View()
	for _, want := range []string{"Gordon Growth Model", "$42.00", "D1", "Gordon Sensitivity", "Growth Rate (%)"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestRenderSensitivity_Undefined(t *testing.T) {
	t.Parallel()
	in := valuation.Input{Dividend: 2, RequiredReturn: 0.05, GrowthRate: 0.05}
	if got := renderSensitivity(in, 80); !strings.Contains(got, "undefined") {
		t.Errorf("expected a notice for an undefined Gordon valuation, got %q", got)
	}
}
