package checked

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Unsigned is satisfied by every unsigned integer type.
type Unsigned = constraints.Unsigned

// Signed is satisfied by every signed integer type.
type Signed = constraints.Signed

// Integer is satisfied by every integer type.
type Integer = constraints.Integer

// Float is satisfied by every floating-point type.
type Float = constraints.Float

// Number is the closed set of numeric representations the package operates on.
type Number interface {
	constraints.Integer | constraints.Float
}

// Type is the bound shared by every generic error type in this package.
//
// Any Go numeric value is printable, comparable, copyable and safe to share
// between goroutines, so Type only has to restrict operands to numbers.
type Type interface {
	Number
}

// class groups the numeric types that share one overflow decision table.
type class uint8

const (
	classUnsigned class = iota
	classSigned
	classFloat
)

// classOf reports the class of T. The probes are constant for a given
// instantiation.
func classOf[T Number]() class {
	half := 0.5
	if T(half) != 0 {
		return classFloat
	}
	var zero T
	if zero-1 > zero {
		return classUnsigned
	}
	return classSigned
}

func isNaN[T Number](v T) bool {
	return v != v
}

// bitsOf returns the width of T in bits.
func bitsOf[T Number]() int {
	return reflect.TypeFor[T]().Bits()
}

// kindOf returns the underlying reflect kind of T, so that named types such
// as `type Cents int64` resolve to their representation.
func kindOf[T Number]() reflect.Kind {
	return reflect.TypeFor[T]().Kind()
}
