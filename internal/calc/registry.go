package calc

import (
	"slices"
	"strings"

	"github.com/agbru/checked"
	apperrors "github.com/agbru/checked/internal/errors"
	"github.com/spf13/cast"
)

type (
	binaryFn  func(lhs, rhs string) (string, error)
	ternaryFn func(v, lo, hi string) (string, error)
	unaryFn   func(v string) (string, error)
	roundFn   func(v string, mode checked.RoundingMode) (string, error)
)

// typeOps holds the instantiations of the checked operations for one
// operand type.
type typeOps struct {
	class string
	add   binaryFn
	sub   binaryFn
	div   binaryFn
	clamp ternaryFn
}

func newTypeOps[T checked.Number](class string) typeOps {
	return typeOps{
		class: class,
		add:   binary(checked.Add[T]),
		sub:   binary(checked.Sub[T]),
		div:   binary(checked.Div[T]),
		clamp: clamp[T],
	}
}

// registry maps the short type names used in error messages to their
// operations. Every entry is a compile-time instantiation.
var registry = map[string]typeOps{
	"i8":   newTypeOps[int8]("signed"),
	"i16":  newTypeOps[int16]("signed"),
	"i32":  newTypeOps[int32]("signed"),
	"i64":  newTypeOps[int64]("signed"),
	"int":  newTypeOps[int]("signed"),
	"u8":   newTypeOps[uint8]("unsigned"),
	"u16":  newTypeOps[uint16]("unsigned"),
	"u32":  newTypeOps[uint32]("unsigned"),
	"u64":  newTypeOps[uint64]("unsigned"),
	"uint": newTypeOps[uint]("unsigned"),
	"f32":  newTypeOps[float32]("float"),
	"f64":  newTypeOps[float64]("float"),
}

// casts[src][dst] converts text of type src to dst.
var casts = map[string]map[string]unaryFn{
	"i8":   castRow[int8](),
	"i16":  castRow[int16](),
	"i32":  castRow[int32](),
	"i64":  castRow[int64](),
	"int":  castRow[int](),
	"u8":   castRow[uint8](),
	"u16":  castRow[uint16](),
	"u32":  castRow[uint32](),
	"u64":  castRow[uint64](),
	"uint": castRow[uint](),
	"f32":  castRow[float32](),
	"f64":  castRow[float64](),
}

func castRow[S checked.Number]() map[string]unaryFn {
	return map[string]unaryFn{
		"i8":   castVia[S, int8],
		"i16":  castVia[S, int16],
		"i32":  castVia[S, int32],
		"i64":  castVia[S, int64],
		"int":  castVia[S, int],
		"u8":   castVia[S, uint8],
		"u16":  castVia[S, uint16],
		"u32":  castVia[S, uint32],
		"u64":  castVia[S, uint64],
		"uint": castVia[S, uint],
		"f32":  castVia[S, float32],
		"f64":  castVia[S, float64],
	}
}

// rounds[src][dst] rounds float text of type src to the integer type dst.
var rounds = map[string]map[string]roundFn{
	"f32": roundRow[float32](),
	"f64": roundRow[float64](),
}

func roundRow[S checked.Float]() map[string]roundFn {
	return map[string]roundFn{
		"i8":   roundVia[S, int8],
		"i16":  roundVia[S, int16],
		"i32":  roundVia[S, int32],
		"i64":  roundVia[S, int64],
		"int":  roundVia[S, int],
		"u8":   roundVia[S, uint8],
		"u16":  roundVia[S, uint16],
		"u32":  roundVia[S, uint32],
		"u64":  roundVia[S, uint64],
		"uint": roundVia[S, uint],
	}
}

// SupportedTypes returns the operand type names in a stable order.
func SupportedTypes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.SortFunc(names, compareTypeNames)
	return names
}

// compareTypeNames orders by class (i, u, f) and then by width.
func compareTypeNames(a, b string) int {
	rank := func(name string) (int, int) {
		class := strings.IndexByte("iuf", name[0])
		switch name {
		case "int", "uint":
			return class, 100
		}
		return class, cast.ToInt(name[1:])
	}
	ac, aw := rank(a)
	bc, bw := rank(b)
	if ac != bc {
		return ac - bc
	}
	return aw - bw
}

func lookupType(name string) (typeOps, error) {
	ops, ok := registry[name]
	if !ok {
		return typeOps{}, apperrors.NewConfigError("unknown type %q (expected one of %s)", name, strings.Join(SupportedTypes(), ", "))
	}
	return ops, nil
}

func binary[T checked.Number](op func(T, T) (T, error)) binaryFn {
	return func(lhs, rhs string) (string, error) {
		a, err := parseOperand[T]("lhs", lhs)
		if err != nil {
			return "", err
		}
		b, err := parseOperand[T]("rhs", rhs)
		if err != nil {
			return "", err
		}
		v, err := op(a, b)
		if err != nil {
			return "", err
		}
		return checked.Format(v), nil
	}
}

func clamp[T checked.Number](v, minText, maxText string) (string, error) {
	x, err := parseOperand[T]("value", v)
	if err != nil {
		return "", err
	}
	lo, err := parseOperand[T]("min", minText)
	if err != nil {
		return "", err
	}
	hi, err := parseOperand[T]("max", maxText)
	if err != nil {
		return "", err
	}
	r, err := checked.Clamp(x, lo, hi)
	if err != nil {
		return "", err
	}
	return checked.Format(r), nil
}

func castVia[S, D checked.Number](text string) (string, error) {
	s, err := parseOperand[S]("value", text)
	if err != nil {
		return "", err
	}
	d, err := checked.Cast[D](s)
	if err != nil {
		return "", err
	}
	return checked.Format(d), nil
}

func roundVia[S checked.Float, D checked.Integer](text string, mode checked.RoundingMode) (string, error) {
	s, err := parseOperand[S]("value", text)
	if err != nil {
		return "", err
	}
	d, err := checked.Round[D](s, mode)
	if err != nil {
		return "", err
	}
	return checked.Format(d), nil
}
