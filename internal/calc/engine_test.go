package calc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agbru/checked"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/agbru/checked/internal/logging"
	"github.com/agbru/checked/internal/metrics"
	"github.com/agbru/checked/internal/metrics/mocks"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestExpressionString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{Expression{Op: "add", Type: "i8", Operands: []string{"100", "100"}}, "add i8 100 100"},
		{Expression{Op: "cast", Type: "f64", Target: "u32", Operands: []string{"-42"}}, "cast f64 u32 -42"},
		{Expression{Op: "round", Type: "f64", Target: "i32", Mode: "half-even", Operands: []string{"2.5"}}, "round f64 i32 half-even 2.5"},
		{Expression{Op: "cast", Type: "i8", Target: "u8", Mode: "ceil", Operands: []string{"1"}}, "cast i8 u8 1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.expr.String())
	}
}

func TestEngineEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		expr    Expression
		value   string
		message string
		outcome metrics.Outcome
	}{
		{
			name:    "add in range",
			expr:    Expression{Op: "add", Type: "i8", Operands: []string{"100", "27"}},
			value:   "127",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "add overflow",
			expr:    Expression{Op: "add", Type: "i8", Operands: []string{"100", "100"}},
			message: "adding 100 to 100 would overflow i8",
			outcome: metrics.OutcomeOverflow,
		},
		{
			name:    "sub underflow",
			expr:    Expression{Op: "sub", Type: "u8", Operands: []string{"0", "1"}},
			message: "subtracting 1 from 0 would underflow u8",
			outcome: metrics.OutcomeUnderflow,
		},
		{
			name:    "div by zero",
			expr:    Expression{Op: "div", Type: "i32", Operands: []string{"7", "0"}},
			message: "dividing 7 by 0 is undefined",
			outcome: metrics.OutcomeDivideByZero,
		},
		{
			name:    "float div",
			expr:    Expression{Op: "div", Type: "f64", Operands: []string{"1", "4"}},
			value:   "0.25",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "float sum reaches infinity",
			expr:    Expression{Op: "add", Type: "f64", Operands: []string{"1e308", "1e308"}},
			value:   "inf",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "cast float to unsigned",
			expr:    Expression{Op: "cast", Type: "f64", Target: "u32", Operands: []string{"-42"}},
			message: "cannot cast -42 of type f64 to u32",
			outcome: metrics.OutcomeCast,
		},
		{
			name:    "cast truncates",
			expr:    Expression{Op: "cast", Type: "f64", Target: "i16", Operands: []string{"-3.9"}},
			value:   "-3",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "operand out of range",
			expr:    Expression{Op: "add", Type: "i8", Operands: []string{"300", "1"}},
			message: "cannot cast 300 of type i64 to i8",
			outcome: metrics.OutcomeCast,
		},
		{
			name:    "negative unsigned operand",
			expr:    Expression{Op: "add", Type: "u16", Operands: []string{"-1", "1"}},
			message: "cannot cast -1 of type i64 to u16",
			outcome: metrics.OutcomeCast,
		},
		{
			name:    "leading zeros are decimal",
			expr:    Expression{Op: "add", Type: "i32", Operands: []string{"010", "08"}},
			value:   "18",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "signed decimal with zeros",
			expr:    Expression{Op: "sub", Type: "i16", Operands: []string{"-007", "+0"}},
			value:   "-7",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "unsigned with plus sign",
			expr:    Expression{Op: "add", Type: "u8", Operands: []string{"+5", "1"}},
			value:   "6",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "clamp",
			expr:    Expression{Op: "clamp", Type: "i64", Operands: []string{"42", "0", "10"}},
			value:   "10",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "round half even",
			expr:    Expression{Op: "round", Type: "f64", Target: "i32", Mode: "half-even", Operands: []string{"2.5"}},
			value:   "2",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "round default mode",
			expr:    Expression{Op: "round", Type: "f32", Target: "i32", Operands: []string{"2.5"}},
			value:   "3",
			outcome: metrics.OutcomeOK,
		},
		{
			name:    "round out of range",
			expr:    Expression{Op: "round", Type: "f64", Target: "u8", Mode: "ceil", Operands: []string{"255.2"}},
			message: "cannot cast 256 of type f64 to u8",
			outcome: metrics.OutcomeCast,
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Evaluate(context.Background(), tt.expr)
			require.Equal(t, tt.outcome, res.Outcome)
			if tt.message == "" {
				require.NoError(t, res.Err)
				require.Equal(t, tt.value, res.Value)
				return
			}
			require.EqualError(t, res.Err, tt.message)
			require.Empty(t, res.Value)
			require.True(t, checked.IsArithmetic(res.Err))
		})
	}
}

func TestEngineEvaluateKind(t *testing.T) {
	engine := NewEngine()

	res := engine.Evaluate(context.Background(), Expression{Op: "sub", Type: "i64", Operands: []string{"-9223372036854775808", "1"}})
	require.Equal(t, checked.Underflow, res.Kind)
	require.ErrorIs(t, res.Err, checked.ErrUnderflow)
}

func TestEngineEvaluateInputErrors(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want any
	}{
		{"unknown op", Expression{Op: "mul", Type: "i8", Operands: []string{"1", "2"}}, apperrors.ConfigError{}},
		{"unknown type", Expression{Op: "add", Type: "i128", Operands: []string{"1", "2"}}, apperrors.ConfigError{}},
		{"wrong arity", Expression{Op: "add", Type: "i8", Operands: []string{"1"}}, apperrors.ConfigError{}},
		{"unknown cast target", Expression{Op: "cast", Type: "i8", Target: "i7", Operands: []string{"1"}}, apperrors.ConfigError{}},
		{"round from integer", Expression{Op: "round", Type: "i32", Target: "i8", Operands: []string{"1"}}, apperrors.ConfigError{}},
		{"round to float", Expression{Op: "round", Type: "f64", Target: "f32", Operands: []string{"1"}}, apperrors.ConfigError{}},
		{"bad rounding mode", Expression{Op: "round", Type: "f64", Target: "i8", Mode: "sideways", Operands: []string{"1"}}, apperrors.ConfigError{}},
		{"not a number", Expression{Op: "add", Type: "f64", Operands: []string{"abc", "1"}}, apperrors.ValidationError{}},
		{"hex integer", Expression{Op: "add", Type: "i32", Operands: []string{"0x10", "1"}}, apperrors.ValidationError{}},
		{"binary integer", Expression{Op: "add", Type: "u32", Operands: []string{"1", "0b11"}}, apperrors.ValidationError{}},
		{"digit separator", Expression{Op: "add", Type: "i64", Operands: []string{"1_000", "1"}}, apperrors.ValidationError{}},
		{"exponent for integer", Expression{Op: "add", Type: "i64", Operands: []string{"1e3", "1"}}, apperrors.ValidationError{}},
		{"sign only", Expression{Op: "add", Type: "i8", Operands: []string{"-", "1"}}, apperrors.ValidationError{}},
		{"hex float", Expression{Op: "add", Type: "f64", Operands: []string{"0x1p4", "1"}}, apperrors.ValidationError{}},
		{"fraction for integer", Expression{Op: "div", Type: "i32", Operands: []string{"1", "2.5"}}, apperrors.ValidationError{}},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Evaluate(context.Background(), tt.expr)
			require.Error(t, res.Err)
			require.IsType(t, tt.want, res.Err)
			require.False(t, checked.IsArithmetic(res.Err))
			require.Equal(t, metrics.OutcomeError, res.Outcome)
			require.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(res.Err))
		})
	}
}

func TestEngineEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewEngine().Evaluate(ctx, Expression{Op: "add", Type: "i8", Operands: []string{"1", "2"}})
	require.True(t, errors.Is(res.Err, context.Canceled))
	require.Empty(t, res.Value)
}

func TestEngineRecordsOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)

	gomock.InOrder(
		recorder.EXPECT().Observe("add", "i8", metrics.OutcomeOK),
		recorder.EXPECT().Observe("add", "i8", metrics.OutcomeOverflow),
		recorder.EXPECT().Observe("div", "u8", metrics.OutcomeDivideByZero),
	)

	engine := NewEngine(WithRecorder(recorder), WithTracer(noop.NewTracerProvider().Tracer("test")))
	engine.Evaluate(context.Background(), Expression{Op: "add", Type: "i8", Operands: []string{"1", "2"}})
	engine.Evaluate(context.Background(), Expression{Op: "add", Type: "i8", Operands: []string{"127", "1"}})
	engine.Evaluate(context.Background(), Expression{Op: "div", Type: "u8", Operands: []string{"1", "0"}})
}

func TestEngineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, "test").WithLevel(zerolog.DebugLevel)
	engine := NewEngine(WithLogger(logger))

	engine.Evaluate(context.Background(), Expression{Op: "add", Type: "i8", Operands: []string{"127", "1"}})

	out := buf.String()
	require.True(t, strings.Contains(out, `"expr":"add i8 127 1"`), out)
	require.True(t, strings.Contains(out, `"outcome":"overflow"`), out)
	require.True(t, strings.Contains(out, `"level":"debug"`), out)
	require.True(t, strings.Contains(out, `"elapsed_ms":`), out)
}

func TestEngineLoggingLevels(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() context.Context
		expr Expression
	}{
		{
			name: "arithmetic failure",
			ctx:  context.Background,
			expr: Expression{Op: "div", Type: "u8", Operands: []string{"1", "0"}},
		},
		{
			name: "bad operand",
			ctx:  context.Background,
			expr: Expression{Op: "add", Type: "i8", Operands: []string{"0x1", "1"}},
		},
		{
			name: "canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			expr: Expression{Op: "add", Type: "i8", Operands: []string{"1", "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewLogger(&buf, "test").WithLevel(zerolog.DebugLevel)
			res := NewEngine(WithLogger(logger)).Evaluate(tt.ctx(), tt.expr)
			require.Error(t, res.Err)
			require.Contains(t, buf.String(), `"level":"debug"`)
			require.NotContains(t, buf.String(), `"level":"error"`)
		})
	}
}

func TestSupportedTypes(t *testing.T) {
	require.Equal(t, []string{
		"i8", "i16", "i32", "i64", "int",
		"u8", "u16", "u32", "u64", "uint",
		"f32", "f64",
	}, SupportedTypes())
}
