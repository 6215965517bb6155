package checked

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// typeName renders the static type of T for error messages. Fixed-width
// built-ins use their short form (i8, u32, f64).
func typeName[T Type]() string {
	var zero T
	switch any(zero).(type) {
	case int8:
		return "i8"
	case int16:
		return "i16"
	case int32:
		return "i32"
	case int64:
		return "i64"
	case uint8:
		return "u8"
	case uint16:
		return "u16"
	case uint32:
		return "u32"
	case uint64:
		return "u64"
	case float32:
		return "f32"
	case float64:
		return "f64"
	}
	return fmt.Sprintf("%T", zero)
}

// Format renders v the way it appears in error messages, so that results
// and failures print numbers alike: infinities are "inf" and "-inf" and
// floats never use an exponent.
func Format[T Type](v T) string { return formatValue(v) }

// formatValue renders v the way it appears in error messages: integers in
// decimal, floats as the shortest exact decimal without an exponent.
func formatValue[T Type](v T) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	default:
		return strconv.FormatUint(rv.Uint(), 10)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
