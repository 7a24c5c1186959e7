// Package record implements the record store behind lettered logical files.
package record

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Value is a field value. It keeps the text it was written with and
// remembers whether that text reads as a number.
type Value struct {
	text    string
	num     float64
	numeric bool
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseValue wraps raw field text. Only decimal numerals read as numbers;
// words such as NaN or Inf stay text.
func ParseValue(s string) Value {
	v := Value{text: s}
	t := strings.TrimSpace(s)
	if !decimalPattern.MatchString(t) {
		return v
	}

	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(f, 0) {
		v.num = f
		v.numeric = true
	}

	return v
}

// IntValue renders n as an integer value.
func IntValue(n int64) Value {
	return Value{text: strconv.FormatInt(n, 10), num: float64(n), numeric: true}
}

// FloatValue renders f as a float value that always carries a decimal
// point, such as "3.0" or "2.5".
func FloatValue(f float64) Value {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.Contains(s, ".") {
		s += ".0"
	}

	return Value{text: s, num: f, numeric: true}
}

func (v Value) String() string {
	return v.text
}

// Float returns the numeric reading of the value.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// IsNumeric reports whether the text reads as a number.
func (v Value) IsNumeric() bool {
	return v.numeric
}

// Integral reports whether the text is written without a decimal point.
// Arithmetic uses it to decide how to render results.
func (v Value) Integral() bool {
	return !strings.Contains(v.text, ".")
}

// Compare orders two values: numerically when both read as numbers,
// lexically on their text otherwise.
func Compare(a, b Value) int {
	if a.numeric && b.numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a.text, b.text)
}
