package checked

import (
	"fmt"
	"math"
	"reflect"

	"go.dw1.io/safemath"
)

// CastError reports that a value of type Src is not representable as
// Target. It carries no Kind. Target is used only to name the type in the
// message.
type CastError[Src, Target Type] struct {
	Src   Src
	Cause error
}

func (e *CastError[Src, Target]) Error() string {
	return fmt.Sprintf("cannot cast %s of type %s to %s",
		formatValue(e.Src), typeName[Src](), typeName[Target]())
}

// Unwrap returns the cause, if any.
func (e *CastError[Src, Target]) Unwrap() error { return e.Cause }

// Is reports whether target is ErrCast.
func (e *CastError[Src, Target]) Is(target error) bool { return target == ErrCast }

// WithCause returns a copy of e caused by err.
func (e *CastError[Src, Target]) WithCause(err error) *CastError[Src, Target] {
	return &CastError[Src, Target]{Src: e.Src, Cause: err}
}

func (*CastError[Src, Target]) arithmetic() {}

// Cast converts src to Target, failing with a *CastError when the value is
// outside the range of Target.
//
// Floats cast to integers are truncated toward zero before the range check,
// so 42.6 becomes 42 and -0.5 becomes 0. NaN and infinities never cast to an
// integer. Integers always cast to floats, rounding to the nearest
// representable value. A finite float64 whose magnitude exceeds the largest
// float32 does not cast to float32; NaN and infinities do.
func Cast[Target, Src Number](src Src) (Target, error) {
	fail := &CastError[Src, Target]{Src: src}

	switch from, to := classOf[Src](), classOf[Target](); {
	case from == classFloat && to == classFloat:
		f := float64(src)
		if bitsOf[Target]() == 32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return 0, fail
		}
		return Target(src), nil

	case to == classFloat:
		return Target(src), nil

	case from == classFloat:
		t, ok := truncateInto[Target](float64(src))
		if !ok {
			return 0, fail
		}
		return t, nil

	case from == classSigned:
		v := int64(src)
		if v < 0 && to == classUnsigned {
			return 0, fail
		}
		t, err := convertInteger[Target](v)
		if err != nil {
			return 0, fail.WithCause(err)
		}
		return t, nil

	default:
		t, err := convertInteger[Target](uint64(src))
		if err != nil {
			return 0, fail.WithCause(err)
		}
		return t, nil
	}
}

// MustCast is like Cast but panics with the *CastError on failure. It is
// meant for values known to fit, such as constants.
func MustCast[Target, Src Number](src Src) Target {
	t, err := Cast[Target](src)
	if err != nil {
		panic(err)
	}
	return t
}

// truncateInto truncates f toward zero and converts it to the integer type
// T if the result is in range.
func truncateInto[T Number](f float64) (T, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	bits := bitsOf[T]()
	if classOf[T]() == classSigned {
		limit := math.Ldexp(1, bits-1)
		if f < -limit || f >= limit {
			return 0, false
		}
		return T(f), true
	}
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, false
	}
	return T(f), true
}

// convertInteger range-checks an integer held in its widest form and
// narrows it to T.
func convertInteger[T Number, W int64 | uint64](v W) (T, error) {
	switch kindOf[T]() {
	case reflect.Int8:
		return narrow[T, int8](v)
	case reflect.Int16:
		return narrow[T, int16](v)
	case reflect.Int32:
		return narrow[T, int32](v)
	case reflect.Int64:
		return narrow[T, int64](v)
	case reflect.Int:
		return narrow[T, int](v)
	case reflect.Uint8:
		return narrow[T, uint8](v)
	case reflect.Uint16:
		return narrow[T, uint16](v)
	case reflect.Uint32:
		return narrow[T, uint32](v)
	case reflect.Uint64:
		return narrow[T, uint64](v)
	default:
		// uint and uintptr share a width on every supported platform.
		return narrow[T, uint](v)
	}
}

func narrow[T Number, I safemath.Integer](v any) (T, error) {
	n, err := safemath.ConvertAny[I](v)
	if err != nil {
		return 0, err
	}
	return T(n), nil
}
