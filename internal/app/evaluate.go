package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/checked/internal/calc"
	"github.com/agbru/checked/internal/cli"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/agbru/checked/internal/logging"
)

// runEvaluate evaluates the single expression given on the command line.
// Results go to out; text-mode failures go to the error writer.
func (a *Application) runEvaluate(ctx context.Context, engine *calc.Engine, logger logging.Logger, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	res := engine.Evaluate(ctx, a.expression())

	w := out
	if res.Err != nil && !a.Config.JSON {
		w = a.ErrWriter
	}
	if err := cli.DisplayResult(w, res, a.outputConfig()); err != nil {
		logger.Error("cannot write result", err)
		return apperrors.ExitErrorGeneric
	}
	if res.Err == nil {
		return apperrors.ExitSuccess
	}

	err := a.classify(res)
	logger.Debug("evaluation failed",
		logging.String("expr", res.Expr.String()),
		logging.Int("exit_code", apperrors.ExitCodeFor(err)))
	return apperrors.ExitCodeFor(err)
}

func (a *Application) expression() calc.Expression {
	return calc.Expression{
		Op:       a.Config.Op,
		Type:     a.Config.Type,
		Target:   a.Config.Target,
		Mode:     a.Config.Mode,
		Operands: a.Config.Operands,
	}
}

// classify wraps the failure of res for exit code mapping. An interrupted
// evaluation keeps its context error, which maps to the canceled exit code.
func (a *Application) classify(res calc.Result) error {
	switch {
	case !apperrors.IsContextError(res.Err):
		return apperrors.EvaluationError{Expr: res.Expr.String(), Cause: res.Err}
	case errors.Is(res.Err, context.DeadlineExceeded):
		return apperrors.TimeoutError{Operation: res.Expr.Op, Limit: a.Config.Timeout}
	default:
		return res.Err
	}
}
