package checked

import "fmt"

// ClampError reports a clamp whose bounds do not form a range. Lhs and Rhs
// of the embedded Operation hold the lower and upper bound.
type ClampError[T Type] struct {
	Operation[T, T]
	Value T
}

func (e *ClampError[T]) Error() string {
	return fmt.Sprintf("cannot clamp %s to [%s, %s]",
		formatValue(e.Value), formatValue(e.Lhs), formatValue(e.Rhs))
}

// Unwrap returns the cause, if any.
func (e *ClampError[T]) Unwrap() error { return e.Cause }

// WithCause returns a copy of e caused by err.
func (e *ClampError[T]) WithCause(err error) *ClampError[T] {
	return &ClampError[T]{Operation: e.Operation.WithCause(err), Value: e.Value}
}

func (e *ClampError[T]) kind() Kind { return e.Kind }

func (*ClampError[T]) arithmetic() {}

// Clamp limits v to [lo, hi]. It fails when lo > hi or when either bound
// is NaN. A NaN v is returned unchanged.
func Clamp[T Number](v, lo, hi T) (T, error) {
	if isNaN(lo) || isNaN(hi) || lo > hi {
		return 0, &ClampError[T]{
			Operation: Operation[T, T]{Lhs: lo, Rhs: hi},
			Value:     v,
		}
	}
	switch {
	case v < lo:
		return lo, nil
	case v > hi:
		return hi, nil
	}
	return v, nil
}

// ClampMin raises v to lo when it is below it.
func ClampMin[T Number](v, lo T) T {
	if v < lo {
		return lo
	}
	return v
}
