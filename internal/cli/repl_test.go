package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/agbru/checked/internal/calc"
)

func runREPL(t *testing.T, cfg REPLConfig, input string) string {
	t.Helper()
	var out bytes.Buffer
	repl := NewREPL(calc.NewEngine(), cfg)
	repl.SetInput(strings.NewReader(input))
	repl.SetOutput(&out)
	repl.Start(context.Background())
	return out.String()
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Add", "add i8 100 27\n", []string{"add i8 100 27 = 127"}},
		{"Add overflow", "add i8 100 100\n", []string{"error: adding 100 to 100 would overflow i8"}},
		{"Sub", "sub u16 10 3\n", []string{"sub u16 10 3 = 7"}},
		{"Div by zero", "div i32 1 0\n", []string{"error: dividing 1 by 0 is undefined"}},
		{"Cast", "cast f64 u32 -42\n", []string{"error: cannot cast -42 of type f64 to u32"}},
		{"Cast upper case types", "CAST I64 U8 200\n", []string{"cast i64 u8 200 = 200"}},
		{"Round", "round half-even i32 2.5\n", []string{"round f64 i32 half-even 2.5 = 2"}},
		{"Clamp", "clamp i64 -5 0 10\n", []string{"clamp i64 -5 0 10 = 0"}},
		{"Types", "types\n", []string{"i8 i16 i32 i64 int u8 u16 u32 u64 uint f32 f64"}},
		{"Unknown command", "mul i8 1 2\n", []string{"Unknown command: mul", "help"}},
		{"Usage", "add i8 1\n", []string{"Usage: add <type> <a> <b>"}},
		{"Clamp usage", "clamp i8 1 2\n", []string{"Usage: clamp <type> <v> <min> <max>"}},
		{"Round usage lists modes", "round\n", []string{"Modes: half-away, half-even, ceil, floor, trunc"}},
		{"Unknown type", "add i7 1 2\n", []string{`error: unknown type "i7"`}},
		{"Last line without newline", "sub i8 -128 1", []string{"error: subtracting 1 from -128 would underflow i8", "Goodbye!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, REPLConfig{}, tt.input)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPLStopsOnReadError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	repl := NewREPL(calc.NewEngine(), REPLConfig{})
	repl.SetInput(io.MultiReader(
		strings.NewReader("add i8 1 2\n"),
		iotest.ErrReader(errors.New("device unplugged")),
	))
	repl.SetOutput(&out)
	repl.Start(context.Background())

	got := out.String()
	if !strings.Contains(got, "add i8 1 2 = 3") {
		t.Errorf("line before the failure was not evaluated:\n%s", got)
	}
	if n := strings.Count(got, "Read error: device unplugged"); n != 1 {
		t.Errorf("read error reported %d times, want 1:\n%s", n, got)
	}
}

func TestREPLExit(t *testing.T) {
	t.Parallel()

	out := runREPL(t, REPLConfig{}, "quit\nadd i8 1 1\n")
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("expected goodbye message:\n%s", out)
	}
	if strings.Contains(out, "= 2") {
		t.Errorf("commands after quit must not run:\n%s", out)
	}
}

func TestREPLVerboseToggle(t *testing.T) {
	t.Parallel()

	out := runREPL(t, REPLConfig{}, "verbose\ncast i64 i8 300\nstatus\n")
	if !strings.Contains(out, "Verbose display: enabled") {
		t.Errorf("expected verbose to be enabled:\n%s", out)
	}
	if !strings.Contains(out, "[CAST] error: cannot cast 300 of type i64 to i8") {
		t.Errorf("expected badge:\n%s", out)
	}
	if !strings.Contains(out, "caused by:") {
		t.Errorf("expected cause chain:\n%s", out)
	}
	if !strings.Contains(out, "Verbose:  yes") {
		t.Errorf("expected status to report verbose:\n%s", out)
	}
}

func TestREPLJSONOutput(t *testing.T) {
	t.Parallel()

	out := runREPL(t, REPLConfig{Output: OutputConfig{JSON: true}, Prompt: "> "}, "add u8 1 2\n")
	if !strings.Contains(out, `{"expr":"add u8 1 2","value":"3"}`) {
		t.Errorf("expected JSON result:\n%s", out)
	}
}

func TestREPLCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	repl := NewREPL(calc.NewEngine(), REPLConfig{})
	repl.SetInput(strings.NewReader("add i8 1 1\n"))
	repl.SetOutput(&out)
	repl.Start(ctx)

	if strings.Contains(out.String(), "= 2") {
		t.Errorf("no command should run after cancellation:\n%s", out.String())
	}
}
