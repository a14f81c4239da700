// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags register one name per form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without the DDMCALC_ prefix) to the
// flag name(s) it shadows and a function that applies the value.
// Unparseable values are ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func floatSetter(dst func(*AppConfig) *float64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst(c) = parsed
		}
	}
}

func durationSetter(dst func(*AppConfig) *time.Duration) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringSetter(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = v }
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Valuation inputs
	{"MODEL", []string{"model", "m"}, stringSetter(func(c *AppConfig) *string { return &c.Model })},
	{"DIVIDEND", []string{"dividend", "d0"}, floatSetter(func(c *AppConfig) *float64 { return &c.Dividend })},
	{"RETURN", []string{"return", "r"}, floatSetter(func(c *AppConfig) *float64 { return &c.RequiredReturn })},
	{"GROWTH", []string{"growth", "g"}, floatSetter(func(c *AppConfig) *float64 { return &c.GrowthRate })},
	{"INITIAL_GROWTH", []string{"initial-growth"}, floatSetter(func(c *AppConfig) *float64 { return &c.InitialGrowth })},
	{"STABLE_GROWTH", []string{"stable-growth"}, floatSetter(func(c *AppConfig) *float64 { return &c.StableGrowth })},
	{"YEARS", []string{"years"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Years = parsed
		}
	}},

	// Market data
	{"TICKER", []string{"ticker", "t"}, stringSetter(func(c *AppConfig) *string { return &c.Ticker })},
	{"YAHOO_URL", []string{"yahoo-url"}, stringSetter(func(c *AppConfig) *string { return &c.YahooURL })},
	{"CACHE_TTL", []string{"cache-ttl"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.CacheTTL })},
	{"TIMEOUT", []string{"timeout"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.Timeout })},

	// Output and observability
	{"OUTPUT", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"SENSITIVITY_CSV", []string{"sensitivity-csv"}, stringSetter(func(c *AppConfig) *string { return &c.SensitivityCSV })},
	{"METRICS_ADDR", []string{"metrics-addr"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsAddr })},
	{"LOG_LEVEL", []string{"log-level"}, stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"LOG_FILE", []string{"log-file"}, stringSetter(func(c *AppConfig) *string { return &c.LogFile })},

	// Boolean overrides
	{"SENSITIVITY", []string{"sensitivity"}, boolSetter(func(c *AppConfig) *bool { return &c.Sensitivity })},
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
	{"INTERACTIVE", []string{"interactive", "i"}, boolSetter(func(c *AppConfig) *bool { return &c.Interactive })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
