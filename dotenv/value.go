package dotenv

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a [Value].
type Kind int

const (
	KindString  Kind = iota // string
	KindInteger             // integer
	KindFloat               // float
	KindBoolean             // boolean
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a resolved scalar. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// String constructs a String value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Integer constructs an Integer value.
func Integer(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Float constructs a Float value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Boolean constructs a Boolean value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// number matches decimal numbers with an optional sign, fraction and
// exponent. Parsing is locale independent: "34,3" is not a number.
var number = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// numberPadding is the whitespace allowed around a number.
const numberPadding = " \t\n\r\v\f"

// Coerce converts a fully resolved string into a typed scalar.
//
//   - Numbers containing '.' become Float; other numbers become Integer,
//     unless they overflow int64 or an exponent leaves a fraction, in
//     which case they become Float. Whitespace around a number is ignored.
//   - Exactly "true" or "false" become Boolean.
//   - Everything else is a String, verbatim.
func Coerce(s string) Value {
	if n := strings.Trim(s, numberPadding); number.MatchString(n) {
		if strings.Contains(n, ".") {
			f, err := strconv.ParseFloat(n, 64)
			if err == nil {
				return Float(f)
			}

			return String(s)
		}

		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return Integer(i)
		}

		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return String(s)
		}

		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return Integer(int64(f))
		}

		return Float(f)
	}

	switch s {
	case "true":
		return Boolean(true)
	case "false":
		return Boolean(false)
	}

	return String(s)
}

// String renders the scalar's string form. The result of [Coerce] on the
// string form of a Value has the same Kind.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}

		return s
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Native returns the Go scalar held by v: string, int64, float64 or bool.
func (v Value) Native() any {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBoolean:
		return v.Bool
	default:
		return v.Str
	}
}
