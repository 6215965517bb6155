package checked

import (
	"fmt"
	"math"
)

// DivError reports a failed checked division.
type DivError[L, R Type] struct {
	Operation[L, R]
}

func (e *DivError[L, R]) Error() string {
	switch e.Kind {
	case Unclassified:
		return fmt.Sprintf("cannot divide %s by %s", formatValue(e.Lhs), formatValue(e.Rhs))
	case DivideByZero:
		return fmt.Sprintf("dividing %s by %s is undefined", formatValue(e.Lhs), formatValue(e.Rhs))
	default:
		return fmt.Sprintf("dividing %s by %s would %s %s",
			formatValue(e.Lhs), formatValue(e.Rhs), e.Kind, typeName[L]())
	}
}

// Unwrap returns the cause, if any.
func (e *DivError[L, R]) Unwrap() error { return e.Cause }

// Is matches ErrDivideByZero, ErrOverflow or ErrUnderflow according to the
// Kind.
func (e *DivError[L, R]) Is(target error) bool { return e.matches(target) }

// WithCause returns a copy of e caused by err.
func (e *DivError[L, R]) WithCause(err error) *DivError[L, R] {
	return &DivError[L, R]{e.Operation.WithCause(err)}
}

func (e *DivError[L, R]) kind() Kind { return e.Kind }

func (*DivError[L, R]) arithmetic() {}

// Div returns lhs / rhs, or a *DivError. A zero divisor always fails with
// DivideByZero, before any class-specific check.
func Div[T Number](lhs, rhs T) (T, error) {
	switch classOf[T]() {
	case classFloat:
		return divFloat(lhs, rhs)
	case classSigned:
		return divSigned(lhs, rhs)
	default:
		return divUnsigned(lhs, rhs)
	}
}

// DivUnsigned divides two unsigned integers. Apart from a zero divisor it
// cannot fail.
func DivUnsigned[T Unsigned](lhs, rhs T) (T, error) {
	return divUnsigned(lhs, rhs)
}

// DivSigned divides two signed integers. When the operand signs agree the
// failure is Overflow (MinValue / -1); when they differ it is Underflow.
func DivSigned[T Signed](lhs, rhs T) (T, error) {
	return divSigned(lhs, rhs)
}

// DivFloat divides two floats with IEEE semantics, returning infinite
// quotients as results. A NaN quotient fails with Overflow when the operand
// signs agree and Underflow otherwise; a NaN operand never agrees.
func DivFloat[T Float](lhs, rhs T) (T, error) {
	return divFloat(lhs, rhs)
}

func divUnsigned[T Number](lhs, rhs T) (T, error) {
	if rhs == 0 {
		return 0, &DivError[T, T]{DivideByZeroOf(lhs)}
	}
	return lhs / rhs, nil
}

func divSigned[T Number](lhs, rhs T) (T, error) {
	if rhs == 0 {
		return 0, &DivError[T, T]{DivideByZeroOf(lhs)}
	}
	// Two's complement division only wraps for MinValue / -1, where the
	// quotient comes back negative.
	q := lhs / rhs
	if signum(lhs) == signum(rhs) {
		if q < 0 {
			return 0, &DivError[T, T]{OverflowOf(lhs, rhs)}
		}
		return q, nil
	}
	if q > 0 {
		return 0, &DivError[T, T]{UnderflowOf(lhs, rhs)}
	}
	return q, nil
}

func divFloat[T Number](lhs, rhs T) (T, error) {
	if rhs == 0 {
		return 0, &DivError[T, T]{DivideByZeroOf(lhs)}
	}
	q := lhs / rhs
	if !isNaN(q) {
		return q, nil
	}
	if floatSignum(lhs) == floatSignum(rhs) {
		return 0, &DivError[T, T]{OverflowOf(lhs, rhs)}
	}
	return 0, &DivError[T, T]{UnderflowOf(lhs, rhs)}
}

func signum[T Number](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// floatSignum is 1 for +0, +Inf and positive values, -1 for -0, -Inf and
// negative values, and NaN for NaN.
func floatSignum[T Number](v T) float64 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return math.NaN()
	case math.Signbit(f):
		return -1
	}
	return 1
}
