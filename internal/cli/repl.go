package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/ddmcalc/internal/config"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/metrics"
	"github.com/agbru/ddmcalc/internal/orchestration"
	"github.com/agbru/ddmcalc/internal/sensitivity"
	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Inputs are the initial valuation inputs, in percent.
	Inputs config.AppConfig
	// Timeout bounds each command, including history fetches.
	Timeout time.Duration
	// Provider fetches dividend histories; nil disables the history command.
	Provider marketdata.Provider
	Metrics  *metrics.Metrics
	Logger   logging.Logger
}

// REPL is an interactive valuation session.
type REPL struct {
	config       REPLConfig
	factory      valuation.CalculatorFactory
	inputs       config.AppConfig
	currentModel string
	session      *tutorial.Session
	history      marketdata.History
	in           io.Reader
	out          io.Writer
}

// NewREPL creates a REPL over the calculators of factory.
func NewREPL(factory valuation.CalculatorFactory, cfg REPLConfig) *REPL {
	current := cfg.Inputs.Model
	if _, err := factory.Get(current); err != nil {
		current = config.DefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{
		config:       cfg,
		factory:      factory,
		inputs:       cfg.Inputs,
		currentModel: current,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and runs commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"ddm> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s📈 DDM Valuation Calculator - Interactive Mode%s        %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	commands := [][2]string{
		{"calc [model]", "Value the stock with the current (or given) model"},
		{"model <name>", "Change model (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"set <field> <v>", "Set dividend, return, growth, initial, stable or years"},
		{"compare", "Compare all models on the current inputs"},
		{"list", "List available models"},
		{"history <ticker>", "Fetch and show a dividend history"},
		{"surface", "Show the Gordon sensitivity heat map"},
		{"tutorial", "Start the DDM tutorial (next, prev, finish)"},
		{"status", "Display the current inputs"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	}
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s%-17s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc", "c":
		r.cmdCalc(args)
	case "model", "m":
		r.cmdModel(args)
	case "set", "s":
		r.cmdSet(args)
	case "compare", "cmp":
		r.cmdCompare()
	case "list", "ls":
		r.cmdList()
	case "history", "hist":
		r.cmdHistory(args)
	case "surface", "sens":
		r.cmdSurface()
	case "tutorial", "tut":
		r.session = tutorial.NewSession()
		r.config.Logger.Debug("tutorial started", logging.String("session", r.session.ID.String()))
		DisplayTutorialState(r.out, r.session.State)
	case "next", "n", "prev", "p", "back", "finish", "f", "done":
		r.cmdTutorial(cmd)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

func (r *REPL) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.config.Timeout)
}

func (r *REPL) cmdCalc(args []string) {
	name := r.currentModel
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	calcs := orchestration.GetCalculatorsToRun(name, r.factory)
	if len(calcs) == 0 {
		fmt.Fprintf(r.out, "%sUnknown model: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	r.run(calcs)
}

func (r *REPL) cmdCompare() {
	r.run(orchestration.GetCalculatorsToRun(orchestration.AllModels, r.factory))
}

func (r *REPL) run(calcs []valuation.Calculator) {
	ctx, cancel := r.context()
	defer cancel()

	results := orchestration.ExecuteValuations(ctx, calcs, r.inputs.ToInput(),
		orchestration.WithMetrics(r.config.Metrics), orchestration.WithLogger(r.config.Logger))
	opts := orchestration.PresentationOptions{Input: r.inputs.ToInput(), Verbose: true}
	orchestration.AnalyzeResults(results, opts, CLIResultPresenter{}, CLIResultPresenter{}, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdModel(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: model <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available models: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	calc, err := r.factory.Get(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown model: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available models: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentModel = calc.Model().Key()
	r.inputs.Model = r.currentModel
	fmt.Fprintf(r.out, "Model changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

// setField applies one "set" assignment to a copy of the inputs.
func setField(c config.AppConfig, field, value string) (config.AppConfig, error) {
	if field == "years" || field == "n" {
		years, err := strconv.Atoi(value)
		if err != nil {
			return c, fmt.Errorf("invalid years: %s", value)
		}
		c.Years = years
		return c, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return c, fmt.Errorf("invalid value: %s", value)
	}
	switch field {
	case "dividend", "d0", "d":
		c.Dividend = v
	case "return", "r":
		c.RequiredReturn = v
	case "growth", "g":
		c.GrowthRate = v
	case "initial", "initial-growth", "gi":
		c.InitialGrowth = v
	case "stable", "stable-growth", "gs":
		c.StableGrowth = v
	default:
		return c, fmt.Errorf("unknown field: %s", field)
	}
	return c, nil
}

func (r *REPL) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: set <field> <value>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	next, err := setField(r.inputs, strings.ToLower(args[0]), args[1])
	if err == nil {
		err = next.Validate(r.factory.List())
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.inputs = next
	fmt.Fprintf(r.out, "%s set to %s%s%s\n", args[0], ui.ColorCyan(), args[1], ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable models:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentModel {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHistory(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: history <ticker>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if r.config.Provider == nil {
		fmt.Fprintf(r.out, "%sMarket data is not available in this session.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	ctx, cancel := r.context()
	defer cancel()

	var h marketdata.History
	err := WithSpinner(r.out, "Fetching dividend history...", func() error {
		var err error
		h, err = marketdata.FetchHistory(ctx, r.config.Provider, args[0])
		return err
	})
	if err != nil {
		DisplayHistoryUnavailable(r.out, marketdata.NormalizeTicker(args[0]), err)
		return
	}
	r.history = h
	r.inputs.Ticker = h.Ticker
	DisplayHistory(r.out, h)
}

func (r *REPL) cmdSurface() {
	in := r.inputs.ToInput()
	s := sensitivity.GordonSurface(in.Dividend, in.RequiredReturn, in.GrowthRate, sensitivity.DefaultPoints)
	if err := DisplaySensitivity(r.out, s); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

func (r *REPL) cmdTutorial(cmd string) {
	if r.session == nil {
		fmt.Fprintf(r.out, "%sNo tutorial in progress. Type tutorial to start.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	action, err := tutorial.ParseAction(cmd)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	state := r.session.Apply(action)
	r.config.Logger.Debug("tutorial action",
		logging.String("session", r.session.ID.String()),
		logging.String("action", action.String()),
		logging.String("state", state.String()))
	DisplayTutorialState(r.out, state)
}

func (r *REPL) cmdStatus() {
	calc, err := r.factory.Get(r.currentModel)
	if err != nil {
		return
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %-24s %s%s%s\n", "Model:", ui.ColorCyan(), calc.Name(), ui.ColorReset())
	for _, row := range InputRows(calc.Model(), r.inputs.ToInput()) {
		fmt.Fprintf(r.out, "  %-24s %s%s%s\n", row[0]+":", ui.ColorCyan(), row[1], ui.ColorReset())
	}
	if r.history.Ticker != "" {
		fmt.Fprintf(r.out, "  %-24s %s%s%s\n", "Ticker:", ui.ColorCyan(), r.history.Ticker, ui.ColorReset())
	}
	if r.session != nil {
		fmt.Fprintf(r.out, "  %-24s %s%s%s\n", "Tutorial:", ui.ColorCyan(), r.session.State, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}
