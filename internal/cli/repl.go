// Package cli provides the output formatting and the REPL (Read-Eval-Print
// Loop) of checkedcalc.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/checked"
	"github.com/agbru/checked/internal/calc"
	"github.com/agbru/checked/internal/config"
	"github.com/agbru/checked/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Output selects text, quiet or JSON output and verbosity.
	Output OutputConfig
	// Prompt replaces the default "checked> " prompt when set.
	Prompt string
}

// REPL represents an interactive checked arithmetic session.
type REPL struct {
	config REPLConfig
	engine *calc.Engine
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance evaluating with engine.
func NewREPL(engine *calc.Engine, cfg REPLConfig) *REPL {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "checked> "
	}
	return &REPL{
		config: cfg,
		engine: engine,
		in:     os.Stdin,
		out:    os.Stdout,
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

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits, the input ends or fails, or ctx is canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+r.config.Prompt+ui.ColorReset())

		input, err := reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		// A last line without a newline is still evaluated.
		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return // Exit command received
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sChecked Arithmetic - Interactive Mode%s                %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd|sub|div <type> <a> <b>%s   - Checked arithmetic on two operands\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scast <from> <to> <v>%s         - Convert v from one type to another\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sround <mode> <to> <v>%s        - Round the f64 v to an integer type\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclamp <type> <v> <min> <max>%s - Restrict v to [min, max]\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stypes%s                        - List operand types\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s                      - Toggle cause chain display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s                       - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                         - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s                  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case config.OpAdd, config.OpSub, config.OpDiv, config.OpClamp:
		r.cmdTyped(ctx, cmd, args)
	case config.OpCast:
		r.cmdCast(ctx, args)
	case config.OpRound:
		r.cmdRound(ctx, args)
	case "types", "ls":
		r.cmdTypes()
	case "verbose", "v":
		r.cmdVerbose()
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

// cmdTyped handles the commands of the form "<op> <type> <operands...>".
func (r *REPL) cmdTyped(ctx context.Context, op string, args []string) {
	want := config.Arity(op)
	if len(args) != want+1 {
		usage := "<type> <a> <b>"
		if op == config.OpClamp {
			usage = "<type> <v> <min> <max>"
		}
		fmt.Fprintf(r.out, "%sUsage: %s %s%s\n", ui.ColorRed(), op, usage, ui.ColorReset())
		return
	}
	r.evaluate(ctx, calc.Expression{Op: op, Type: strings.ToLower(args[0]), Operands: args[1:]})
}

// cmdCast handles the "cast" command.
func (r *REPL) cmdCast(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintf(r.out, "%sUsage: cast <from> <to> <v>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.evaluate(ctx, calc.Expression{
		Op:       config.OpCast,
		Type:     strings.ToLower(args[0]),
		Target:   strings.ToLower(args[1]),
		Operands: args[2:],
	})
}

// cmdRound handles the "round" command. The operand is always an f64.
func (r *REPL) cmdRound(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintf(r.out, "%sUsage: round <mode> <to> <v>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Modes: %s\n", strings.Join(roundingModes(), ", "))
		return
	}
	r.evaluate(ctx, calc.Expression{
		Op:       config.OpRound,
		Type:     "f64",
		Target:   strings.ToLower(args[1]),
		Mode:     strings.ToLower(args[0]),
		Operands: args[2:],
	})
}

func (r *REPL) evaluate(ctx context.Context, expr calc.Expression) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	res := r.engine.Evaluate(ctx, expr)
	if err := DisplayResult(r.out, res, r.config.Output); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// cmdTypes lists the operand types.
func (r *REPL) cmdTypes() {
	fmt.Fprintf(r.out, "\n%sOperand types:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s%s%s\n\n", ui.ColorYellow(), strings.Join(calc.SupportedTypes(), " "), ui.ColorReset())
}

// cmdVerbose toggles the display of cause chains.
func (r *REPL) cmdVerbose() {
	r.config.Output.Verbose = !r.config.Output.Verbose
	status := "disabled"
	if r.config.Output.Verbose {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Verbose display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	format := "text"
	switch {
	case r.config.Output.JSON:
		format = "json"
	case r.config.Output.Quiet:
		format = "quiet"
	}
	verbose := "no"
	if r.config.Output.Verbose {
		verbose = "yes"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Output:   %s%s%s\n", ui.ColorCyan(), format, ui.ColorReset())
	fmt.Fprintf(r.out, "  Verbose:  %s%s%s\n", ui.ColorCyan(), verbose, ui.ColorReset())
	fmt.Fprintln(r.out)
}

func roundingModes() []string {
	modes := []checked.RoundingMode{
		checked.ToNearestAway, checked.ToNearestEven,
		checked.ToPositiveInf, checked.ToNegativeInf, checked.ToZero,
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
