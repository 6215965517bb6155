package checked

import "fmt"

// SubError reports a failed checked subtraction.
type SubError[L, R Type] struct {
	Operation[L, R]
}

func (e *SubError[L, R]) Error() string {
	if !e.Classified() {
		return fmt.Sprintf("cannot subtract %s from %s", formatValue(e.Rhs), formatValue(e.Lhs))
	}
	return fmt.Sprintf("subtracting %s from %s would %s %s",
		formatValue(e.Rhs), formatValue(e.Lhs), e.Kind, typeName[L]())
}

// Unwrap returns the cause, if any.
func (e *SubError[L, R]) Unwrap() error { return e.Cause }

// Is matches ErrOverflow or ErrUnderflow according to the Kind.
func (e *SubError[L, R]) Is(target error) bool { return e.matches(target) }

// WithCause returns a copy of e caused by err.
func (e *SubError[L, R]) WithCause(err error) *SubError[L, R] {
	return &SubError[L, R]{e.Operation.WithCause(err)}
}

func (e *SubError[L, R]) kind() Kind { return e.Kind }

func (*SubError[L, R]) arithmetic() {}

// Sub returns lhs - rhs, or a *SubError when the difference is not
// representable in T.
func Sub[T Number](lhs, rhs T) (T, error) {
	switch classOf[T]() {
	case classFloat:
		return subFloat(lhs, rhs)
	case classSigned:
		return subSigned(lhs, rhs)
	default:
		return subUnsigned(lhs, rhs)
	}
}

// SubUnsigned subtracts two unsigned integers. It fails with Underflow when
// rhs is greater than lhs.
func SubUnsigned[T Unsigned](lhs, rhs T) (T, error) {
	return subUnsigned(lhs, rhs)
}

// SubSigned subtracts two signed integers. Subtracting a negative rhs can
// only overflow; subtracting a non-negative rhs can only underflow.
func SubSigned[T Signed](lhs, rhs T) (T, error) {
	return subSigned(lhs, rhs)
}

// SubFloat subtracts two floats with IEEE semantics. A NaN difference fails:
// Overflow when rhs is negative, Underflow otherwise.
func SubFloat[T Float](lhs, rhs T) (T, error) {
	return subFloat(lhs, rhs)
}

func subUnsigned[T Number](lhs, rhs T) (T, error) {
	if rhs > lhs {
		return 0, &SubError[T, T]{UnderflowOf(lhs, rhs)}
	}
	return lhs - rhs, nil
}

func subSigned[T Number](lhs, rhs T) (T, error) {
	diff := lhs - rhs
	if rhs < 0 {
		// lhs + |rhs|, computed without negating rhs.
		if diff < lhs {
			return 0, &SubError[T, T]{OverflowOf(lhs, rhs)}
		}
		return diff, nil
	}
	if diff > lhs {
		return 0, &SubError[T, T]{UnderflowOf(lhs, rhs)}
	}
	return diff, nil
}

func subFloat[T Number](lhs, rhs T) (T, error) {
	diff := lhs - rhs
	if !isNaN(diff) {
		return diff, nil
	}
	if rhs < 0 {
		return 0, &SubError[T, T]{OverflowOf(lhs, rhs)}
	}
	return 0, &SubError[T, T]{UnderflowOf(lhs, rhs)}
}
