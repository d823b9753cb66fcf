// Package numfmt converts numbers between the raw form used for parsing
// ("1234.5") and the display form shown to the user ("1.234,5").
//
// Two paths exist. ToRaw/ToDisplay are lossless and used while the user is
// typing. FormatResult renders a computed float64 into a fixed digit budget,
// truncating (never rounding) whatever does not fit.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxDigits is the digit budget of the display, sign and separators excluded.
	MaxDigits = 9

	GroupSeparator   = '.'
	DecimalSeparator = ','

	// ErrorMarker replaces the display when a result cannot be shown.
	ErrorMarker = "Error"

	// Zero is the initial display.
	Zero = "0"
)

// ToRaw strips grouping separators and turns the decimal separator into '.'.
func ToRaw(display string) string {
	var b strings.Builder
	b.Grow(len(display))
	for _, r := range display {
		switch r {
		case GroupSeparator:
		case DecimalSeparator:
			b.WriteByte('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToDisplay groups the integer part of raw and swaps in the display decimal
// separator. A trailing '.' with no fractional digits is preserved as a
// trailing separator.
func ToDisplay(raw string) string {
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}

	intPart, frac, hasFrac := strings.Cut(raw, ".")
	if !hasFrac {
		return sign + group(intPart)
	}
	return sign + group(intPart) + string(DecimalSeparator) + frac
}

// DigitCount counts the decimal digits of raw.
func DigitCount(raw string) int {
	n := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			n++
		}
	}
	return n
}

// Parse reads a raw numeric string. Anything unparsable yields NaN, which
// FormatResult turns into the error marker.
func Parse(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FormatResult renders v using at most MaxDigits digits.
//
// Integer parts with MaxDigits or more digits keep only their leading
// MaxDigits digits and lose the fraction. Otherwise the fraction is cut to
// the remaining budget and trailing zeros are dropped. Cutting is always a
// truncation toward zero.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorMarker
	}

	mag := decimal.NewFromFloat(math.Abs(v))
	intPart := mag.Truncate(0).String()

	var out string
	if len(intPart) >= MaxDigits {
		out = group(intPart[:MaxDigits])
	} else {
		s := mag.Truncate(int32(MaxDigits - len(intPart))).String()
		whole, frac, _ := strings.Cut(s, ".")
		frac = strings.TrimRight(frac, "0")
		out = group(whole)
		if frac != "" {
			out += string(DecimalSeparator) + frac
		}
	}

	if v < 0 && out != Zero {
		return "-" + out
	}
	return out
}

// group inserts GroupSeparator every three digits from the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(GroupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
