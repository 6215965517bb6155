package calc

import (
	"strconv"
	"strings"

	"github.com/agbru/checked"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/spf13/cast"
)

// parseOperand reads text into T. The text is first parsed into the widest
// type of T's class (int64, uint64 or float64) and then narrowed with
// checked.Cast, so "300" for an i8 operand fails with the CastError
// "cannot cast 300 of type i64 to i8". Text that is not a number of the
// right class is a ValidationError.
//
// Integers are always decimal: "010" is ten, and base prefixes or digit
// separators are rejected.
func parseOperand[T checked.Number](field, text string) (T, error) {
	text = strings.TrimSpace(text)
	invalid := func(msg string) error {
		return apperrors.ValidationError{Field: field, Message: msg}
	}

	var zero T
	switch any(zero).(type) {
	case float32, float64:
		if text == "" || strings.ContainsAny(text, "_xX") {
			return 0, invalid("not a number: " + strconv.Quote(text))
		}
		f, err := cast.ToFloat64E(text)
		if err != nil {
			return 0, invalid("not a number: " + strconv.Quote(text))
		}
		return checked.Cast[T](f)
	}

	digits, ok := decimal(text)
	if !ok {
		return 0, invalid("not an integer: " + strconv.Quote(text))
	}
	// Negative text for an unsigned type is parsed as i64 so that the
	// failure is reported as a cast.
	if zero-1 > zero && !strings.HasPrefix(digits, "-") {
		u, err := cast.ToUint64E(digits)
		if err != nil {
			return 0, invalid("not an unsigned integer: " + strconv.Quote(text))
		}
		return checked.Cast[T](u)
	}
	i, err := cast.ToInt64E(digits)
	if err != nil {
		return 0, invalid("not an integer: " + strconv.Quote(text))
	}
	return checked.Cast[T](i)
}

// decimal checks that text is an optional sign followed by decimal digits
// and strips its leading zeros, which spf13/cast would read as an octal
// prefix.
func decimal(text string) (string, bool) {
	sign, digits := "", text
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		sign, digits = digits[:1], digits[1:]
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", false
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		digits = "0"
	}
	return sign + digits, true
}
