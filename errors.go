package checked

import (
	"errors"
	"iter"
)

// Arithmetic is implemented by every error this package returns, whatever
// the operation or operand types. It lets generic code handle "any arithmetic
// error" without naming the concrete type:
//
//	var arith checked.Arithmetic
//	if errors.As(err, &arith) {
//	    // err, or one of its causes, is a checked arithmetic failure
//	}
type Arithmetic interface {
	error
	arithmetic()
}

// classified is implemented by errors that carry a Kind.
type classified interface {
	error
	kind() Kind
}

// IsArithmetic reports whether err or any error in its chain is an
// Arithmetic error.
func IsArithmetic(err error) bool {
	var arith Arithmetic
	return errors.As(err, &arith)
}

// KindOf returns the Kind of the outermost classified error in err's chain.
// The boolean is false when no error in the chain carries a classification.
func KindOf(err error) (Kind, bool) {
	for e := range Chain(err) {
		if c, ok := e.(classified); ok && c.kind() != Unclassified {
			return c.kind(), true
		}
	}
	return Unclassified, false
}

// Chain yields err followed by each error reached through Unwrap, outermost
// first. It yields nothing for a nil error.
func Chain(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		for err != nil {
			if !yield(err) {
				return
			}
			err = errors.Unwrap(err)
		}
	}
}

// Root returns the deepest error in err's chain, or nil if err is nil.
func Root(err error) error {
	var root error
	for e := range Chain(err) {
		root = e
	}
	return root
}
