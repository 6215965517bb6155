package checked

import (
	"fmt"
	"math"
	"strings"
)

// RoundingMode selects how Round maps a float to an integer. The names
// follow math/big.
type RoundingMode uint8

const (
	ToNearestAway RoundingMode = iota // nearest integer, ties away from zero
	ToNearestEven                     // nearest integer, ties to even
	ToPositiveInf                     // ceiling
	ToNegativeInf                     // floor
	ToZero                            // truncation
)

var roundingModeNames = map[RoundingMode]string{
	ToNearestAway: "half-away",
	ToNearestEven: "half-even",
	ToPositiveInf: "ceil",
	ToNegativeInf: "floor",
	ToZero:        "trunc",
}

func (m RoundingMode) String() string {
	if name, ok := roundingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// ParseRoundingMode parses the names printed by RoundingMode.String,
// case-insensitively. The empty string selects ToNearestAway.
func ParseRoundingMode(s string) (RoundingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ToNearestAway, nil
	}
	for mode, name := range roundingModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("checked: unknown rounding mode %q", s)
}

func (m RoundingMode) apply(f float64) float64 {
	switch m {
	case ToNearestEven:
		return math.RoundToEven(f)
	case ToPositiveInf:
		return math.Ceil(f)
	case ToNegativeInf:
		return math.Floor(f)
	case ToZero:
		return math.Trunc(f)
	default:
		return math.Round(f)
	}
}

// Round rounds v with mode and casts the result to Target. When the rounded
// value does not fit, the *CastError holds the rounded value.
func Round[Target Integer, Src Float](v Src, mode RoundingMode) (Target, error) {
	return Cast[Target](Src(mode.apply(float64(v))))
}

// Ceil is Round with ToPositiveInf.
func Ceil[Target Integer, Src Float](v Src) (Target, error) {
	return Round[Target](v, ToPositiveInf)
}

// Floor is Round with ToNegativeInf.
func Floor[Target Integer, Src Float](v Src) (Target, error) {
	return Round[Target](v, ToNegativeInf)
}
