package checked

// Operation is the record shared by every arithmetic error: both operands,
// the optional classification and the optional cause.
//
// Operations are values. They are built once where a failure is detected and
// never modified afterwards; WithCause returns a copy.
type Operation[L, R Type] struct {
	Lhs   L
	Rhs   R
	Kind  Kind
	Cause error
}

// OverflowOf records an operation on lhs and rhs that would overflow.
func OverflowOf[L, R Type](lhs L, rhs R) Operation[L, R] {
	return Operation[L, R]{Lhs: lhs, Rhs: rhs, Kind: Overflow}
}

// UnderflowOf records an operation on lhs and rhs that would underflow.
func UnderflowOf[L, R Type](lhs L, rhs R) Operation[L, R] {
	return Operation[L, R]{Lhs: lhs, Rhs: rhs, Kind: Underflow}
}

// DivideByZeroOf records the division of lhs by zero.
func DivideByZeroOf[L Type](lhs L) Operation[L, L] {
	var zero L
	return Operation[L, L]{Lhs: lhs, Rhs: zero, Kind: DivideByZero}
}

// WithCause returns a copy of o whose cause is err.
func (o Operation[L, R]) WithCause(err error) Operation[L, R] {
	o.Cause = err
	return o
}

// Classified reports whether o carries a Kind.
func (o Operation[L, R]) Classified() bool {
	return o.Kind != Unclassified
}

func (o Operation[L, R]) matches(target error) bool {
	s := o.Kind.sentinel()
	return s != nil && target == s
}
