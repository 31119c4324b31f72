package answer

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a decoded numeric token. SHSWorks does not tag numeric fields with
// a type; a token parses as an integer unless it contains a decimal point or
// an exponent, in which case it parses as a floating-point value.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

// NewIntNumber returns a Number holding an integer value.
func NewIntNumber(v int64) Number {
	return Number{i: v}
}

// NewFloatNumber returns a Number holding a floating-point value.
func NewFloatNumber(v float64) Number {
	return Number{f: v, isFloat: true}
}

// ParseNumber parses a numeric token with integer/float inference.
func ParseNumber(token string) (Number, error) {
	if !strings.ContainsAny(token, ".eE") {
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return Number{i: i}, nil
		}
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %q is not a number", ErrUnexpectedFormat, token)
	}

	return Number{f: f, isFloat: true}, nil
}

// IsInt reports whether the number was parsed as an integer literal.
func (n Number) IsInt() bool {
	return !n.isFloat
}

// Int returns the value as int64, truncating when the number is a float.
func (n Number) Int() int64 {
	if n.isFloat {
		return int64(n.f)
	}

	return n.i
}

// Float64 returns the value as float64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}

	return float64(n.i)
}

// String returns the canonical text form of the number.
func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}

	return strconv.FormatInt(n.i, 10)
}

// Kind identifies how a decoded answer value is classified.
type Kind int

const (
	// KindString is an opaque string value.
	KindString Kind = iota
	// KindPath is a filesystem path value.
	KindPath
	// KindInt is an integral numeric value.
	KindInt
	// KindFloat is a floating-point numeric value.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a decoded answer token: a string, a filesystem path, or a number.
//
// The zero value is an empty KindString.
type Value struct {
	kind Kind
	str  string
	num  Number
}

// ParseValue decodes a token with numeric-type inference: integral literals
// become KindInt, floating-point literals become KindFloat, and anything else
// is kept verbatim as KindString.
func ParseValue(token string) Value {
	if token != "" {
		if n, err := ParseNumber(token); err == nil {
			kind := KindInt
			if !n.IsInt() {
				kind = KindFloat
			}

			return Value{kind: kind, str: token, num: n}
		}
	}

	return Value{kind: KindString, str: token}
}

// StringValue returns a Value holding an opaque string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// PathValue returns a Value holding a filesystem path.
func PathValue(p string) Value {
	return Value{kind: KindPath, str: p}
}

// Kind returns the classification of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumeric reports whether the value holds a number.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// String returns the raw token text.
func (v Value) String() string {
	return v.str
}

// Int returns the numeric value as int64. It returns 0 for non-numeric values.
func (v Value) Int() int64 {
	if !v.IsNumeric() {
		return 0
	}

	return v.num.Int()
}

// Float64 returns the numeric value as float64. It returns 0 for non-numeric values.
func (v Value) Float64() float64 {
	if !v.IsNumeric() {
		return 0
	}

	return v.num.Float64()
}

// Number returns the underlying Number. It is only meaningful when IsNumeric
// reports true.
func (v Value) Number() Number {
	return v.num
}
