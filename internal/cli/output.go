// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayJSONResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatResult], [FormatQuietResult].

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/checked"
	"github.com/agbru/checked/internal/calc"
	"github.com/agbru/checked/internal/metrics"
	"github.com/agbru/checked/internal/ui"
	"github.com/bytedance/sonic"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// JSON writes one JSON object per result.
	JSON bool
	// Quiet prints only the value, and nothing on failure.
	Quiet bool
	// Verbose adds the kind badge and the cause chain of failures.
	Verbose bool
}

// JSONResult is the JSON form of a calc.Result.
type JSONResult struct {
	Expr  string `json:"expr"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	// Kind is the outcome label of a failure: overflow, underflow,
	// divide_by_zero, cast or error.
	Kind string `json:"kind,omitempty"`
	// Chain holds the messages of the causes below Error, outermost first.
	Chain []string `json:"chain,omitempty"`
}

// NewJSONResult converts res to its JSON form.
func NewJSONResult(res calc.Result) JSONResult {
	out := JSONResult{Expr: res.Expr.String(), Value: res.Value}
	if res.Err != nil {
		out.Error = res.Err.Error()
		out.Kind = string(res.Outcome)
		out.Chain = FormatCauses(res.Err)
	}
	return out
}

// FormatCauses returns the messages of every error below err in its chain.
func FormatCauses(err error) []string {
	var causes []string
	first := true
	for e := range checked.Chain(err) {
		if first {
			first = false
			continue
		}
		causes = append(causes, e.Error())
	}
	return causes
}

// FormatResult formats res as text: "<expr> = <value>" on success and
// "error: <message>" on failure. Verbose output prefixes failures with the
// kind badge and lists their causes, one per line.
func FormatResult(res calc.Result, config OutputConfig) string {
	if res.Err == nil {
		return fmt.Sprintf("%s = %s%s%s", res.Expr, ui.ColorGreen(), res.Value, ui.ColorReset())
	}

	var sb strings.Builder
	if config.Verbose && res.Outcome != metrics.OutcomeError {
		sb.WriteString(ui.Badge(string(res.Outcome)))
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "%serror:%s %s", ui.ColorRed(), ui.ColorReset(), res.Err)
	if config.Verbose {
		for _, cause := range FormatCauses(res.Err) {
			fmt.Fprintf(&sb, "\n  %scaused by:%s %s", ui.ColorYellow(), ui.ColorReset(), cause)
		}
	}
	return sb.String()
}

// FormatQuietResult formats a result for quiet mode output: the bare value,
// or "" for a failure.
func FormatQuietResult(res calc.Result) string {
	if res.Err != nil {
		return ""
	}
	return res.Value
}

// DisplayQuietResult outputs a result in quiet mode. Failures print nothing;
// the exit code reports them.
func DisplayQuietResult(out io.Writer, res calc.Result) {
	if res.Err != nil {
		return
	}
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayJSONResult writes res as one line of JSON.
func DisplayJSONResult(out io.Writer, res calc.Result) error {
	data, err := sonic.ConfigStd.Marshal(NewJSONResult(res))
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

// DisplayResult writes res according to config. This is the single entry
// point used by both the one-shot command and the REPL.
func DisplayResult(out io.Writer, res calc.Result, config OutputConfig) error {
	switch {
	case config.JSON:
		return DisplayJSONResult(out, res)
	case config.Quiet:
		DisplayQuietResult(out, res)
	default:
		fmt.Fprintln(out, FormatResult(res, config))
	}
	return nil
}
