package checked

import "fmt"

// AddError reports a failed checked addition.
type AddError[L, R Type] struct {
	Operation[L, R]
}

func (e *AddError[L, R]) Error() string {
	if !e.Classified() {
		return fmt.Sprintf("cannot add %s to %s", formatValue(e.Rhs), formatValue(e.Lhs))
	}
	return fmt.Sprintf("adding %s to %s would %s %s",
		formatValue(e.Rhs), formatValue(e.Lhs), e.Kind, typeName[L]())
}

// Unwrap returns the cause, if any.
func (e *AddError[L, R]) Unwrap() error { return e.Cause }

// Is matches ErrOverflow or ErrUnderflow according to the Kind.
func (e *AddError[L, R]) Is(target error) bool { return e.matches(target) }

// WithCause returns a copy of e caused by err.
func (e *AddError[L, R]) WithCause(err error) *AddError[L, R] {
	return &AddError[L, R]{e.Operation.WithCause(err)}
}

func (e *AddError[L, R]) kind() Kind { return e.Kind }

func (*AddError[L, R]) arithmetic() {}

// Add returns lhs + rhs, or an *AddError when the sum is not representable
// in T. The decision table is chosen from the class of T; see AddUnsigned,
// AddSigned and AddFloat.
func Add[T Number](lhs, rhs T) (T, error) {
	switch classOf[T]() {
	case classFloat:
		return addFloat(lhs, rhs)
	case classSigned:
		return addSigned(lhs, rhs)
	default:
		return addUnsigned(lhs, rhs)
	}
}

// AddUnsigned adds two unsigned integers. The only failure is Overflow.
func AddUnsigned[T Unsigned](lhs, rhs T) (T, error) {
	return addUnsigned(lhs, rhs)
}

// AddSigned adds two signed integers. A negative rhs can only push the sum
// below the minimum (Underflow); a non-negative rhs can only push it above
// the maximum (Overflow).
func AddSigned[T Signed](lhs, rhs T) (T, error) {
	return addSigned(lhs, rhs)
}

// AddFloat adds two floats with IEEE semantics. Infinite sums are returned
// as results. A NaN sum fails: Underflow when rhs is negative, Overflow
// otherwise.
func AddFloat[T Float](lhs, rhs T) (T, error) {
	return addFloat(lhs, rhs)
}

func addUnsigned[T Number](lhs, rhs T) (T, error) {
	sum := lhs + rhs
	if sum < lhs {
		return 0, &AddError[T, T]{OverflowOf(lhs, rhs)}
	}
	return sum, nil
}

func addSigned[T Number](lhs, rhs T) (T, error) {
	sum := lhs + rhs
	if rhs < 0 {
		// lhs - |rhs|, computed without negating rhs.
		if sum > lhs {
			return 0, &AddError[T, T]{UnderflowOf(lhs, rhs)}
		}
		return sum, nil
	}
	if sum < lhs {
		return 0, &AddError[T, T]{OverflowOf(lhs, rhs)}
	}
	return sum, nil
}

func addFloat[T Number](lhs, rhs T) (T, error) {
	sum := lhs + rhs
	if !isNaN(sum) {
		return sum, nil
	}
	if rhs < 0 {
		return 0, &AddError[T, T]{UnderflowOf(lhs, rhs)}
	}
	return 0, &AddError[T, T]{OverflowOf(lhs, rhs)}
}
