// Package config parses and validates the application configuration from
// command-line flags and DDMCALC_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "DDMCALC_"

// Defaults for the valuation inputs. Rates are percentages.
const (
	DefaultModel          = "gordon"
	DefaultDividend       = 2.00
	DefaultRequiredReturn = 10.0
	DefaultGrowthRate     = 5.0
	DefaultInitialGrowth  = 10.0
	DefaultStableGrowth   = 5.0
	DefaultYears          = 5
	DefaultTimeout        = 30 * time.Second
	DefaultCacheTTL       = time.Hour
	DefaultLogLevel       = "info"
)

// Input bounds. Rates are percentages.
const (
	MinRequiredReturn = 0.1
	MaxGrowthRate     = 15.0
	MaxInitialGrowth  = 25.0
	MaxStableGrowth   = 15.0
	MinYears          = 1
	MaxYears          = 20
)

// AppConfig aggregates the application's configuration. Rates are entered
// and stored as percentages; ToInput converts them to decimals.
type AppConfig struct {
	// Model selects "zero", "gordon", "multistage" or "all".
	Model string
	// Dividend is the current annual dividend in dollars.
	Dividend float64
	// RequiredReturn is the discount rate in percent.
	RequiredReturn float64
	// GrowthRate is the Gordon constant growth in percent.
	GrowthRate float64
	// InitialGrowth is the multi-stage explicit-phase growth in percent.
	InitialGrowth float64
	// StableGrowth is the multi-stage terminal growth in percent.
	StableGrowth float64
	// Years is the length of the multi-stage explicit phase.
	Years int

	// Ticker, when set, fetches the dividend history for context.
	Ticker string
	// YahooURL overrides the market-data host.
	YahooURL string
	// CacheTTL bounds how long fetched histories are reused.
	CacheTTL time.Duration
	// Timeout bounds the whole run, including network fetches.
	Timeout time.Duration

	Sensitivity    bool
	SensitivityCSV string
	OutputFile     string

	MetricsAddr string
	LogLevel    string
	LogFile     string

	Verbose     bool
	Details     bool
	Quiet       bool
	NoColor     bool
	TUI         bool
	Interactive bool
	Tutorial    bool
	Completion  string
}

// ToInput converts the percentage inputs into a valuation.Input.
func (c AppConfig) ToInput() valuation.Input {
	return valuation.Input{
		Dividend:       c.Dividend,
		RequiredReturn: c.RequiredReturn / 100,
		GrowthRate:     c.GrowthRate / 100,
		InitialGrowth:  c.InitialGrowth / 100,
		StableGrowth:   c.StableGrowth / 100,
		Years:          c.Years,
	}
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	return AppConfig{
		Model:          DefaultModel,
		Dividend:       DefaultDividend,
		RequiredReturn: DefaultRequiredReturn,
		GrowthRate:     DefaultGrowthRate,
		InitialGrowth:  DefaultInitialGrowth,
		StableGrowth:   DefaultStableGrowth,
		Years:          DefaultYears,
		CacheTTL:       DefaultCacheTTL,
		Timeout:        DefaultTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is flags, then DDMCALC_* variables, then defaults. It returns
// flag.ErrHelp when help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableModels []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	c := Default()
	fs.StringVar(&c.Model, "model", c.Model, fmt.Sprintf("Valuation model: all, %s.", strings.Join(availableModels, ", ")))
	fs.StringVar(&c.Model, "m", c.Model, "Valuation model (shorthand).")
	fs.Float64Var(&c.Dividend, "dividend", c.Dividend, "Current annual dividend ($).")
	fs.Float64Var(&c.Dividend, "d0", c.Dividend, "Current annual dividend (shorthand).")
	fs.Float64Var(&c.RequiredReturn, "return", c.RequiredReturn, "Required rate of return (%).")
	fs.Float64Var(&c.RequiredReturn, "r", c.RequiredReturn, "Required rate of return (shorthand).")
	fs.Float64Var(&c.GrowthRate, "growth", c.GrowthRate, "Gordon dividend growth rate (%).")
	fs.Float64Var(&c.GrowthRate, "g", c.GrowthRate, "Gordon dividend growth rate (shorthand).")
	fs.Float64Var(&c.InitialGrowth, "initial-growth", c.InitialGrowth, "Multi-stage initial growth rate (%).")
	fs.Float64Var(&c.StableGrowth, "stable-growth", c.StableGrowth, "Multi-stage stable growth rate (%).")
	fs.IntVar(&c.Years, "years", c.Years, "Years of initial growth (multi-stage).")
	fs.StringVar(&c.Ticker, "ticker", "", "Stock ticker to fetch dividend history for (e.g. KO).")
	fs.StringVar(&c.Ticker, "t", "", "Stock ticker (shorthand).")
	fs.StringVar(&c.YahooURL, "yahoo-url", "", "Override the Yahoo Finance API host.")
	fs.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "How long fetched dividend histories are reused.")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum run time, including network fetches.")
	fs.BoolVar(&c.Sensitivity, "sensitivity", false, "Render the Gordon sensitivity heat map.")
	fs.StringVar(&c.SensitivityCSV, "sensitivity-csv", "", "Write the Gordon sensitivity grid to a CSV file.")
	fs.StringVar(&c.OutputFile, "output", "", "Write the valuation report to a file.")
	fs.StringVar(&c.OutputFile, "o", "", "Write the valuation report to a file (shorthand).")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&c.LogFile, "log-file", "", "Append logs to this file instead of stderr.")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&c.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&c.Details, "details", false, "Show the valuation inputs and breakdown.")
	fs.BoolVar(&c.Quiet, "quiet", false, "Print only the valuation.")
	fs.BoolVar(&c.Quiet, "q", false, "Print only the valuation (shorthand).")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&c.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&c.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&c.Interactive, "i", false, "Start the interactive REPL (shorthand).")
	fs.BoolVar(&c.Tutorial, "tutorial", false, "Print the DDM tutorial and exit.")
	fs.StringVar(&c.Completion, "completion", "", "Generate a shell completion script: bash, zsh, fish, powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&c, fs)
	c.Model = strings.ToLower(strings.TrimSpace(c.Model))

	if err := c.Validate(availableModels); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return c, nil
}

// Validate checks the model name and input bounds.
func (c AppConfig) Validate(availableModels []string) error {
	if c.Model != "all" && !slices.Contains(availableModels, c.Model) {
		if _, err := valuation.ParseModel(c.Model); err != nil {
			return apperrors.ValidationError{Field: "model", Message: fmt.Sprintf("unknown model %q (available: all, %s)", c.Model, strings.Join(availableModels, ", "))}
		}
	}

	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.Dividend >= 0, "dividend", "must be non-negative"},
		{c.RequiredReturn >= MinRequiredReturn, "return", fmt.Sprintf("must be at least %.1f%%", MinRequiredReturn)},
		{c.GrowthRate >= 0 && c.GrowthRate <= MaxGrowthRate, "growth", fmt.Sprintf("must be between 0%% and %.0f%%", MaxGrowthRate)},
		{c.InitialGrowth >= 0 && c.InitialGrowth <= MaxInitialGrowth, "initial-growth", fmt.Sprintf("must be between 0%% and %.0f%%", MaxInitialGrowth)},
		{c.StableGrowth >= 0 && c.StableGrowth <= MaxStableGrowth, "stable-growth", fmt.Sprintf("must be between 0%% and %.0f%%", MaxStableGrowth)},
		{c.Years >= MinYears && c.Years <= MaxYears, "years", fmt.Sprintf("must be between %d and %d", MinYears, MaxYears)},
		{c.Timeout > 0, "timeout", "must be positive"},
		{c.CacheTTL > 0, "cache-ttl", "must be positive"},
		{c.Completion == "" || slices.Contains(completionShells, c.Completion), "completion", "must be one of " + strings.Join(completionShells, ", ")},
	}
	for _, chk := range checks {
		if !chk.ok {
			return apperrors.ValidationError{Field: chk.field, Message: chk.message}
		}
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	return nil
}
