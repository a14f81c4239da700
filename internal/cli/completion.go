package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "model")
	Short     string   // single-letter alias without "-" (e.g., "m")
	Help      string   // description text
	Values    []string // suggested completion values
	ValueName string   // label for the value; empty for boolean flags
	IsFile    bool     // the flag takes a file path
	IsModel   bool     // values come from the model list
	Section   string   // fish comment grouping
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},

	{Long: "model", Short: "m", Help: "Valuation model", IsModel: true, ValueName: "model", Section: "Valuation inputs"},
	{Long: "dividend", Help: "Current annual dividend ($)", ValueName: "amount", Section: "Valuation inputs"},
	{Long: "return", Short: "r", Help: "Required rate of return (%)", Values: []string{"6", "8", "10", "12"}, ValueName: "percent", Section: "Valuation inputs"},
	{Long: "growth", Short: "g", Help: "Dividend growth rate (%)", Values: []string{"2", "3", "5", "7"}, ValueName: "percent", Section: "Valuation inputs"},
	{Long: "initial-growth", Help: "Multi-stage initial growth rate (%)", ValueName: "percent", Section: "Valuation inputs"},
	{Long: "stable-growth", Help: "Multi-stage stable growth rate (%)", ValueName: "percent", Section: "Valuation inputs"},
	{Long: "years", Help: "Years of initial growth", Values: []string{"3", "5", "10"}, ValueName: "years", Section: "Valuation inputs"},

	{Long: "ticker", Short: "t", Help: "Stock ticker for dividend history", ValueName: "ticker", Section: "Market data"},
	{Long: "yahoo-url", Help: "Yahoo Finance API host", ValueName: "url", Section: "Market data"},
	{Long: "cache-ttl", Help: "Dividend history cache lifetime", Values: []string{"10m", "1h", "24h"}, ValueName: "duration", Section: "Market data"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "30s", "1m"}, ValueName: "duration", Section: "Market data"},

	{Long: "sensitivity", Help: "Render the sensitivity heat map", Section: "Output"},
	{Long: "sensitivity-csv", Help: "Sensitivity grid CSV file", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Show the valuation inputs", Section: "Output"},
	{Long: "details", Help: "Show the valuation breakdown", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "metrics-addr", Help: "Prometheus metrics address", ValueName: "addr", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "log-file", Help: "Log file path", IsFile: true, ValueName: "file", Section: "Output"},

	{Long: "tui", Help: "Launch the interactive dashboard", Section: "Modes"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL", Section: "Modes"},
	{Long: "tutorial", Help: "Print the DDM tutorial", Section: "Modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Modes"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish" or "powershell") offering models for --model.
func GenerateCompletion(out io.Writer, shell string, models []string) error {
	models = append(append([]string(nil), models...), "all")
	switch shell {
	case "bash":
		return generateBashCompletion(out, models)
	case "zsh":
		return generateZshCompletion(out, models)
	case "fish":
		return generateFishCompletion(out, models)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, models)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// names returns the flag spellings, long first.
func (f FlagCompletion) names() []string {
	var out []string
	if f.Long != "" {
		out = append(out, "--"+f.Long)
	}
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	return out
}

// choices returns the suggestions offered after the flag.
func (f FlagCompletion) choices(models []string) []string {
	if f.IsModel {
		return models
	}
	return f.Values
}

func generateBashCompletion(out io.Writer, models []string) error {
	var opts []string
	var cases strings.Builder
	var files []string
	for _, f := range flagRegistry {
		opts = append(opts, f.names()...)
		if f.IsFile {
			files = append(files, f.names()...)
			continue
		}
		if vals := f.choices(models); len(vals) > 0 {
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(f.names(), "|"), strings.Join(vals, " "))
		}
	}
	if len(files) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(files, "|"))
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for ddmcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_ddmcalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _ddmcalc_completions ddmcalc
`, strings.Join(opts, " "), cases.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats f as a zsh _arguments spec.
func zshArgEntry(f FlagCompletion, models []string) string {
	value := ""
	switch vals := f.choices(models); {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(vals) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, value)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, value)
}

func generateZshCompletion(out io.Writer, models []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, models))
	}
	_, err := fmt.Fprintf(out, `#compdef ddmcalc

# Zsh completion script for ddmcalc
# Add this to your ~/.zshrc or place in $fpath

_ddmcalc() {
    _arguments -s \
%s
}

_ddmcalc "$@"
`, strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, models []string) string {
	parts := []string{"complete -c ddmcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
	switch vals := f.choices(models); {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(vals) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generateFishCompletion(out io.Writer, models []string) error {
	lines := []string{
		"# Fish completion script for ddmcalc",
		"# Add this to ~/.config/fish/completions/ddmcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c ddmcalc -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, models))
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func psQuote(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func generatePowerShellCompletion(out io.Writer, models []string) error {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range f.names() {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		if vals := f.choices(models); len(vals) > 0 && !f.IsFile {
			switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, psQuote(vals)))
		}
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for ddmcalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'ddmcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
	if err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
