// Package checked provides numeric conversions and arithmetic that never
// wrap, truncate out of range, or panic. Every operation returns its result
// together with an error describing why it could not be computed.
//
// # Operations
//
// Cast converts between numeric types. Add, Sub and Div combine two values
// of the same type; each picks the decision table of the operand class
// (unsigned, signed or float) and is also available per class, as in
// AddSigned or DivFloat. Clamp and Round build on the same error model.
//
//	v, err := checked.Add[int8](100, 100)
//	// err: adding 100 to 100 would overflow i8
//
// # Errors
//
// The errors are AddError, SubError, DivError, CastError and ClampError.
// The operation errors embed an Operation, which records both operands, an
// optional Kind (Overflow, Underflow, DivideByZero) and an optional cause.
// A classified error matches the corresponding sentinel through errors.Is:
//
//	if errors.Is(err, checked.ErrOverflow) { ... }
//
// Any error can be attached as a cause with WithCause. Error messages never
// include the cause; use errors.Unwrap, Chain or Root to walk it. KindOf
// finds the first classification along the chain.
package checked
