package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/checked/internal/errors"
)

var testTypes = []string{"i8", "i64", "u8", "u32", "f64"}

func TestParseConfig_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("checkedcalc", []string{"1", "2"}, &buf, testTypes)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Op != OpAdd {
		t.Errorf("Op = %q, want %q", cfg.Op, OpAdd)
	}
	if cfg.Type != DefaultType {
		t.Errorf("Type = %q, want %q", cfg.Type, DefaultType)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Mode != "half-away" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "half-away")
	}
	if len(cfg.Operands) != 2 {
		t.Errorf("Operands = %v, want 2 entries", cfg.Operands)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"-op", "CAST", "-type", "f64", "-to", "u32", "-json", "-v", "-timeout", "2s", "--", "-42"}
	cfg, err := ParseConfig("checkedcalc", args, &buf, testTypes)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Op != OpCast || cfg.Type != "f64" || cfg.Target != "u32" {
		t.Errorf("unexpected op/type/target: %q %q %q", cfg.Op, cfg.Type, cfg.Target)
	}
	if !cfg.JSON || !cfg.Verbose {
		t.Errorf("JSON = %v, Verbose = %v, want both true", cfg.JSON, cfg.Verbose)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout)
	}
	if len(cfg.Operands) != 1 || cfg.Operands[0] != "-42" {
		t.Errorf("Operands = %v, want [-42]", cfg.Operands)
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("checkedcalc", []string{"-h"}, &buf, testTypes)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseConfig(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(buf.String(), "Usage: checkedcalc") {
		t.Errorf("usage not printed, got: %s", buf.String())
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-bogus"}, "flag provided but not defined"},
		{"unknown op", []string{"-op", "mul", "1", "2"}, `unknown op "mul"`},
		{"unknown type", []string{"-type", "i128", "1", "2"}, `unknown type "i128"`},
		{"missing operand", []string{"-op", "div", "1"}, `op "div" expects 2 operand(s), got 1`},
		{"cast without target", []string{"-op", "cast", "1"}, `op "cast" requires -to`},
		{"unknown target", []string{"-op", "cast", "-to", "u128", "1"}, `unknown target type "u128"`},
		{"bad rounding mode", []string{"-op", "round", "-type", "f64", "-to", "i8", "-mode", "banker", "1.5"}, `unknown rounding mode "banker"`},
		{"quiet and json", []string{"-q", "-json", "1", "2"}, "mutually exclusive"},
		{"unknown theme", []string{"-theme", "solarized", "1", "2"}, `unknown theme "solarized"`},
		{"zero timeout", []string{"-timeout", "0s", "1", "2"}, "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("checkedcalc", tt.args, &buf, testTypes)
			if err == nil {
				t.Fatal("expected an error")
			}
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("error %T is not a ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseConfig_REPLSkipsOperandChecks(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("checkedcalc", []string{"-repl", "-op", "whatever"}, &buf, testTypes)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !cfg.REPL {
		t.Error("REPL should be enabled")
	}
}

func TestParseConfig_Completion(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("checkedcalc", []string{"-completion", "Bash"}, &buf, testTypes)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Completion != "bash" {
		t.Errorf("Completion = %q, want %q", cfg.Completion, "bash")
	}
}

func TestArity(t *testing.T) {
	tests := map[string]int{
		OpAdd: 2, OpSub: 2, OpDiv: 2, OpCast: 1, OpRound: 1, OpClamp: 3, "pow": -1,
	}
	for op, want := range tests {
		if got := Arity(op); got != want {
			t.Errorf("Arity(%q) = %d, want %d", op, got, want)
		}
	}
}
