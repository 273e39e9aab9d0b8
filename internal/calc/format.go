package calc

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Exponents at which Format switches to scientific notation.
const (
	sciPositiveExponent = 21
	sciNegativeExponent = -7
)

// Format rounds d half away from zero to the given number of significant digits and
// renders it without trailing zeros. Very large and very small values are written in
// scientific notation, e.g. 1.5e+21 and 1e-7.
func Format(d decimal.Decimal, significant int) string {
	if significant < 1 {
		significant = 1
	}
	if d.IsZero() {
		return "0"
	}

	r := roundSig(d, significant)
	if r.IsZero() {
		return "0"
	}

	digits := r.Coefficient().String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	trimmed := strings.TrimRight(digits, "0")
	exp := int(r.Exponent()) + len(digits) - len(trimmed)
	digits = trimmed

	e := len(digits) - 1 + exp
	if e < sciPositiveExponent && e > sciNegativeExponent {
		return r.String()
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte(digits[0])
	if len(digits) > 1 {
		b.WriteByte('.')
		b.WriteString(digits[1:])
	}
	b.WriteByte('e')
	if e >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(e))
	return b.String()
}

// Display is Format with a decimal comma, the way results are shown to the user.
func Display(d decimal.Decimal, significant int) string {
	return strings.Replace(Format(d, significant), ".", ",", 1)
}
