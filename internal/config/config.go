// Package config handles the command-line and environment configuration of
// checkedcalc.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/checked"
	apperrors "github.com/agbru/checked/internal/errors"
)

const (
	// EnvPrefix is the prefix of every environment variable read by checkedcalc.
	EnvPrefix = "CHECKEDCALC_"

	// DefaultTimeout bounds a single evaluation.
	DefaultTimeout = 5 * time.Second
	// DefaultType is the operand type used when -type is omitted.
	DefaultType = "i64"
	// DefaultLogLevel keeps stderr quiet unless something fails.
	DefaultLogLevel = "warn"
	// DefaultTheme is the color theme used on terminals.
	DefaultTheme = "dark"
)

// Themes lists the accepted -theme values.
var Themes = []string{"dark", "light", "none"}

// Operation names accepted by -op.
const (
	OpAdd   = "add"
	OpSub   = "sub"
	OpDiv   = "div"
	OpCast  = "cast"
	OpClamp = "clamp"
	OpRound = "round"
)

// Operations lists the accepted -op values.
var Operations = []string{OpAdd, OpSub, OpDiv, OpCast, OpClamp, OpRound}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the operation to evaluate.
	Op string
	// Type is the operand type (the source type for cast and round).
	Type string
	// Target is the result type of cast and round.
	Target string
	// Mode is the rounding mode name used by round.
	Mode string
	// Operands holds the positional arguments, still as text.
	Operands []string

	// JSON selects JSON output.
	JSON bool
	// Quiet prints only the value (or nothing on failure).
	Quiet bool
	// Verbose prints the cause chain and the kind of failures.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Theme names the color theme: dark, light or none.
	Theme string
	// REPL starts the interactive mode instead of a single evaluation.
	REPL bool
	// Completion names a shell (bash, zsh, fish) whose completion script is
	// printed instead of evaluating anything.
	Completion string

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
	// LogLevel is the zerolog level name.
	LogLevel string
	// Timeout bounds a single evaluation.
	Timeout time.Duration
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// CHECKEDCALC_ environment overrides for flags that were not set, and
// validates the result against the operand types the engine supports.
//
// Parsing and validation failures are returned as apperrors.ConfigError,
// except -h/-help which yields flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableTypes []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <operand>...\n\n", programName)
		fmt.Fprintf(errWriter, "Evaluates one checked numeric operation.\n\n")
		fmt.Fprintf(errWriter, "Examples:\n")
		fmt.Fprintf(errWriter, "  %s -op add -type i8 100 27\n", programName)
		fmt.Fprintf(errWriter, "  %s -op cast -type f64 -to u32 -- -42\n", programName)
		fmt.Fprintf(errWriter, "  %s -op round -type f64 -to i32 -mode half-even 2.5\n\n", programName)
		fmt.Fprintf(errWriter, "Flags:\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", OpAdd, "Operation: "+strings.Join(Operations, ", ")+".")
	fs.StringVar(&config.Type, "type", DefaultType, "Operand type ("+strings.Join(availableTypes, ", ")+").")
	fs.StringVar(&config.Target, "to", "", "Result type for cast and round.")
	fs.StringVar(&config.Mode, "mode", checked.ToNearestAway.String(), "Rounding mode: half-away, half-even, ceil, floor, trunc.")
	fs.BoolVar(&config.JSON, "json", false, "Print the result as JSON.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the value.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the cause chain of failures.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: "+strings.Join(Themes, ", ")+".")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive mode.")
	fs.StringVar(&config.Completion, "completion", "", "Print the completion script for a shell (bash, zsh, fish).")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of one evaluation.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	config.Operands = fs.Args()

	applyEnvOverrides(&config, fs)
	config.normalize()

	if err := config.Validate(availableTypes); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

func (c *AppConfig) normalize() {
	c.Op = strings.ToLower(strings.TrimSpace(c.Op))
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	c.Target = strings.ToLower(strings.TrimSpace(c.Target))
	c.Completion = strings.ToLower(strings.TrimSpace(c.Completion))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
}

// Arity returns the number of operands op expects, or -1 for an unknown op.
func Arity(op string) int {
	switch op {
	case OpAdd, OpSub, OpDiv:
		return 2
	case OpCast, OpRound:
		return 1
	case OpClamp:
		return 3
	}
	return -1
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate(availableTypes []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.JSON {
		return apperrors.NewConfigError("-quiet and -json are mutually exclusive")
	}
	if !slices.Contains(Themes, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (expected one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if c.REPL || c.Completion != "" {
		return nil
	}

	arity := Arity(c.Op)
	if arity < 0 {
		return apperrors.NewConfigError("unknown op %q (expected one of %s)", c.Op, strings.Join(Operations, ", "))
	}
	if !slices.Contains(availableTypes, c.Type) {
		return apperrors.NewConfigError("unknown type %q", c.Type)
	}
	if c.Op == OpCast || c.Op == OpRound {
		if c.Target == "" {
			return apperrors.NewConfigError("op %q requires -to", c.Op)
		}
		if !slices.Contains(availableTypes, c.Target) {
			return apperrors.NewConfigError("unknown target type %q", c.Target)
		}
	}
	if c.Op == OpRound {
		if _, err := checked.ParseRoundingMode(c.Mode); err != nil {
			return apperrors.NewConfigError("%v", err)
		}
	}
	if len(c.Operands) != arity {
		return apperrors.NewConfigError("op %q expects %d operand(s), got %d", c.Op, arity, len(c.Operands))
	}
	return nil
}
