package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/checked"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the evaluation timed out.
	ExitErrorArithmetic = 3   // Indicates a checked operation failed.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the evaluation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an unknown
// operation or a wrong operand count.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError records which expression failed and keeps the underlying
// cause, typically an error from the checked package, inspectable with
// errors.Is and errors.As.
type EvaluationError struct {
	// Expr is the rendered expression, e.g. "add i8 100 100".
	Expr string
	// Cause is the underlying error.
	Cause error
}

// Error returns the message of the cause. The expression is reported
// separately by the presenters.
func (e EvaluationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original cause.
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an operand that could not be parsed.
type ValidationError struct {
	// Field names the operand, e.g. "lhs" or "operand 2".
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by the evaluation pipeline to the
// process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case checked.IsArithmetic(err):
		return ExitErrorArithmetic
	default:
		return ExitErrorGeneric
	}
}
