package checked

import (
	"errors"
	"fmt"
)

// Kind classifies why an arithmetic operation failed.
//
// The zero value, Unclassified, means the failure carries no classification.
type Kind uint8

const (
	// Unclassified marks an operation error recorded without a Kind.
	Unclassified Kind = iota
	// Overflow means the exact result exceeds the maximum of the type.
	Overflow
	// Underflow means the exact result is below the minimum of the type.
	Underflow
	// DivideByZero means the divisor was zero.
	DivideByZero
)

// Sentinel errors matched by errors.Is against the errors of this package.
var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("divide by zero")
	// ErrCast matches every CastError.
	ErrCast = errors.New("value not representable in target type")
)

// String returns the verb phrase used inside error messages.
func (k Kind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	case DivideByZero:
		return "divide by zero"
	default:
		return "unclassified"
	}
}

// MarshalText encodes the kind as a snake_case token.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Unclassified, Overflow, Underflow, DivideByZero:
		return []byte(k.token()), nil
	}
	return nil, fmt.Errorf("checked: invalid kind %d", uint8(k))
}

// UnmarshalText decodes a token produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{Unclassified, Overflow, Underflow, DivideByZero} {
		if candidate.token() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("checked: unknown kind %q", text)
}

func (k Kind) token() string {
	if k == DivideByZero {
		return "divide_by_zero"
	}
	return k.String()
}

// sentinel returns the package error matched by errors.Is for k, or nil.
func (k Kind) sentinel() error {
	switch k {
	case Overflow:
		return ErrOverflow
	case Underflow:
		return ErrUnderflow
	case DivideByZero:
		return ErrDivideByZero
	}
	return nil
}
