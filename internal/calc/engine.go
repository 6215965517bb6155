// Package calc evaluates checked operations named by text: an operation, the
// operand type names and the operands. It is the only place where a type
// name is mapped to an instantiation of the checked package.
package calc

import (
	"context"
	"strings"
	"time"

	"github.com/agbru/checked"
	"github.com/agbru/checked/internal/config"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/agbru/checked/internal/logging"
	"github.com/agbru/checked/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/agbru/checked/internal/calc"

// Expression is one operation to evaluate.
type Expression struct {
	Op string
	// Type is the operand type, or the source type of cast and round.
	Type string
	// Target is the result type of cast and round.
	Target string
	// Mode is the rounding mode name of round.
	Mode     string
	Operands []string
}

// String renders the expression as "op type [target] [mode] operands...".
func (e Expression) String() string {
	parts := []string{e.Op, e.Type}
	if e.Target != "" {
		parts = append(parts, e.Target)
	}
	if e.Op == config.OpRound && e.Mode != "" {
		parts = append(parts, e.Mode)
	}
	parts = append(parts, e.Operands...)
	return strings.Join(parts, " ")
}

// Result is the outcome of one evaluation.
type Result struct {
	Expr Expression
	// Value is the result rendered as text; empty when Err is set.
	Value string
	Err   error
	// Kind is the classification found along the error chain, if any.
	Kind    checked.Kind
	Outcome metrics.Outcome
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer sets the tracer. The global otel tracer is used by default.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// Engine evaluates expressions. It is safe for concurrent use.
type Engine struct {
	recorder metrics.Recorder
	logger   logging.Logger
	tracer   trace.Tracer
}

// NewEngine creates an Engine. Without options it records nothing and logs
// nothing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		recorder: metrics.Nop{},
		logger:   logging.Nop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs expr. Failures are reported in Result.Err: a
// ConfigError for an unknown operation or type or a wrong operand count, a
// ValidationError for unparsable operands, the checked error otherwise.
func (e *Engine) Evaluate(ctx context.Context, expr Expression) Result {
	ctx, span := e.tracer.Start(ctx, "checked."+expr.Op, trace.WithAttributes(
		attribute.String("checked.op", expr.Op),
		attribute.String("checked.type", expr.Type),
		attribute.String("checked.target", expr.Target),
		attribute.StringSlice("checked.operands", expr.Operands),
	))
	defer span.End()

	start := time.Now()
	res := Result{Expr: expr}
	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		res.Value, res.Err = dispatch(expr)
	}
	res.Kind, _ = checked.KindOf(res.Err)
	res.Outcome = metrics.OutcomeFor(res.Err)

	e.recorder.Observe(expr.Op, expr.Type, res.Outcome)
	span.SetAttributes(attribute.String("checked.outcome", string(res.Outcome)))

	fields := []logging.Field{
		logging.String("expr", expr.String()),
		logging.String("outcome", string(res.Outcome)),
		logging.Float64("elapsed_ms", float64(time.Since(start).Microseconds())/1000),
	}
	if res.Err == nil {
		span.SetStatus(codes.Ok, "")
		e.logger.Debug("evaluated", append(fields, logging.String("value", res.Value))...)
		return res
	}

	span.RecordError(res.Err)
	span.SetStatus(codes.Error, res.Err.Error())
	if res.Outcome == metrics.OutcomeError && !expected(res.Err) {
		e.logger.Error("evaluation failed", res.Err, fields...)
	} else {
		e.logger.Debug("evaluated", append(fields, logging.Err(res.Err))...)
	}
	return res
}

// expected reports failures the caller reports itself: bad input and an
// interrupted context.
func expected(err error) bool {
	return apperrors.IsContextError(err) || apperrors.ExitCodeFor(err) == apperrors.ExitErrorConfig
}

func dispatch(expr Expression) (string, error) {
	want := config.Arity(expr.Op)
	if want < 0 {
		return "", apperrors.NewConfigError("unknown op %q", expr.Op)
	}
	if len(expr.Operands) != want {
		return "", apperrors.NewConfigError("op %q expects %d operand(s), got %d", expr.Op, want, len(expr.Operands))
	}
	ops, err := lookupType(expr.Type)
	if err != nil {
		return "", err
	}
	args := expr.Operands

	switch expr.Op {
	case config.OpAdd:
		return ops.add(args[0], args[1])
	case config.OpSub:
		return ops.sub(args[0], args[1])
	case config.OpDiv:
		return ops.div(args[0], args[1])
	case config.OpClamp:
		return ops.clamp(args[0], args[1], args[2])
	case config.OpCast:
		if _, err := lookupType(expr.Target); err != nil {
			return "", err
		}
		return casts[expr.Type][expr.Target](args[0])
	default:
		return round(expr, ops)
	}
}

func round(expr Expression, ops typeOps) (string, error) {
	if ops.class != "float" {
		return "", apperrors.NewConfigError("round needs a float operand type, got %q", expr.Type)
	}
	target, ok := rounds[expr.Type][expr.Target]
	if !ok {
		return "", apperrors.NewConfigError("round needs an integer target type, got %q", expr.Target)
	}
	mode, err := checked.ParseRoundingMode(expr.Mode)
	if err != nil {
		return "", apperrors.NewConfigError("%v", err)
	}
	return target(expr.Operands[0], mode)
}
