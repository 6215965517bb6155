package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "timeout")
	Short     string   // short flag without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "type", "duration")
	IsType    bool     // true if values come from the operand type list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "op", Help: "Operation", Values: []string{"add", "sub", "div", "cast", "clamp", "round"}, ValueName: "op"},
	{Long: "type", Help: "Operand type", IsType: true, ValueName: "type"},
	{Long: "to", Help: "Result type for cast and round", IsType: true, ValueName: "type"},
	{Long: "mode", Help: "Rounding mode", Values: []string{"half-away", "half-even", "ceil", "floor", "trunc"}, ValueName: "mode"},
	{Long: "json", Help: "Print the result as JSON"},
	{Long: "quiet", Short: "q", Help: "Print only the value"},
	{Long: "verbose", Short: "v", Help: "Print the cause chain of failures"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "repl", Help: "Start the interactive mode"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "addr"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "timeout", Help: "Maximum duration of one evaluation", Values: []string{"1s", "5s", "30s"}, ValueName: "duration"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - types: List of operand type names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, types []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, types)
	case "zsh":
		return generateZshCompletion(out, types)
	case "fish":
		return generateFishCompletion(out, types)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns the command-line spellings of f. Go's flag package
// accepts one or two dashes; the scripts offer the single-dash form.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "-"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, types []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)

		var words string
		switch {
		case f.IsType:
			words = "${types}"
		case len(f.Values) > 0:
			words = strings.Join(f.Values, " ")
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n", strings.Join(flagNames(f), "|"))
		fmt.Fprintf(&cases, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", words)
		cases.WriteString("            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for checkedcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_checkedcalc_completions() {
    local cur prev opts types
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    types="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _checkedcalc_completions checkedcalc
`, strings.Join(opts, " "), strings.Join(types, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, types []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef checkedcalc

# Zsh completion script for checkedcalc
# Add this to your ~/.zshrc or place in $fpath

_checkedcalc() {
    local -a types
    types=(%s)

    _arguments -s \
%s
}

_checkedcalc "$@"
`, strings.Join(types, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsType:
		valueSuffix = fmt.Sprintf(":%s:($types)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, types []string) error {
	lines := []string{
		"# Fish completion script for checkedcalc",
		"# Add this to ~/.config/fish/completions/checkedcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c checkedcalc -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, strings.Join(types, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Fish's -o option matches the single-dash long flags of the flag package.
func fishCompleteLine(f FlagCompletion, typeList string) string {
	parts := []string{"complete -c checkedcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-o "+f.Long)
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsType:
		parts = append(parts, fmt.Sprintf("-xa '%s'", typeList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
