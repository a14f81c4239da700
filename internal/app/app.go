package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/ddmcalc/internal/cli"
	"github.com/agbru/ddmcalc/internal/config"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/marketdata"
	"github.com/agbru/ddmcalc/internal/metrics"
	"github.com/agbru/ddmcalc/internal/tui"
	"github.com/agbru/ddmcalc/internal/tutorial"
	"github.com/agbru/ddmcalc/internal/ui"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// Application represents the ddmcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   valuation.CalculatorFactory
	Provider  marketdata.Provider
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f valuation.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithProvider replaces the Yahoo Finance provider.
func WithProvider(p marketdata.Provider) AppOption {
	return func(a *Application) { a.Provider = p }
}

// WithLogger replaces the logger built from --log-level and --log-file.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = valuation.NewDefaultFactory()
	}

	programName := "ddmcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Tutorial {
		return a.runTutorial(out)
	}

	closeLog, err := a.setupLogging()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()
	a.setupMarketData()

	stopMetrics := a.serveMetrics(ctx)
	defer stopMetrics()

	switch {
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL(out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTutorial prints every tutorial page followed by the completion notes.
func (a *Application) runTutorial(out io.Writer) int {
	for step := 1; step <= tutorial.Steps; step++ {
		cli.DisplayTutorialPage(out, tutorial.PageFor(step))
	}
	cli.DisplayCompletionNotes(out)
	return apperrors.ExitSuccess
}

// setupLogging builds the logger unless one was injected. The dashboard
// owns the terminal, so it only logs to --log-file.
func (a *Application) setupLogging() (func(), error) {
	if a.Logger != nil {
		return func() {}, nil
	}
	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, apperrors.NewConfigError("cannot open log file: %v", err)
		}
		a.Logger = logging.NewLogger(f, "ddmcalc")
		return func() { _ = f.Close() }, nil
	case a.Config.TUI:
		a.Logger = logging.NewLogger(io.Discard, "ddmcalc")
	default:
		a.Logger = logging.NewConsoleLogger(a.ErrWriter, "ddmcalc")
	}
	return func() {}, nil
}

// setupMarketData wires the Yahoo Finance provider behind the TTL cache
// unless a provider was injected.
func (a *Application) setupMarketData() {
	if a.Metrics == nil {
		a.Metrics = metrics.New()
	}
	if a.Provider != nil {
		return
	}
	opts := []marketdata.YahooOption{
		marketdata.WithTimeout(a.Config.Timeout),
		marketdata.WithLogger(a.Logger),
		marketdata.WithMetrics(a.Metrics),
	}
	if a.Config.YahooURL != "" {
		opts = append(opts, marketdata.WithBaseURL(a.Config.YahooURL))
	}
	cache := marketdata.NewCache(a.Config.CacheTTL)
	a.Provider = marketdata.NewCachedProvider(marketdata.NewYahooProvider(opts...), cache, a.Metrics)
}

// serveMetrics exposes /metrics when --metrics-addr is set. The returned
// function stops the server.
func (a *Application) serveMetrics(ctx context.Context) func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.Metrics.Serve(ctx, a.Config.MetricsAddr); err != nil {
			a.Logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	a.Logger.Info("serving metrics", logging.String("addr", a.Config.MetricsAddr))
	return func() {
		cancel()
		<-done
	}
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, tui.Options{
		Config:   a.Config,
		Factory:  a.Factory,
		Provider: a.Provider,
		Metrics:  a.Metrics,
		Logger:   a.Logger,
		Version:  Version,
	})
}

// runREPL starts the interactive command loop on stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Inputs:   a.Config,
		Timeout:  a.Config.Timeout,
		Provider: a.Provider,
		Metrics:  a.Metrics,
		Logger:   a.Logger,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
