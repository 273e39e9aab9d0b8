package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// Precision is the number of significant digits carried through arithmetic.
	Precision = 50

	// maxMagnitude caps the decimal exponent of any intermediate value.
	maxMagnitude = 100000

	maxFactorial = 20000
)

var (
	decimalOne  = decimal.NewFromInt(1)
	decimalTwo  = decimal.NewFromInt(2)
	decimal180  = decimal.NewFromInt(180)
	constantPi  = decimal.RequireFromString("3.1415926535897932384626433832795028841971693993751058209749445923")
	constantE   = decimal.RequireFromString("2.7182818284590452353602874713526624977572470936999595749669676277")
	halfPi      = constantPi.DivRound(decimalTwo, Precision+2)
	radDegRatio = decimal180.DivRound(constantPi, Precision+2)

	// tanPrecision is how close tan's argument may get to pi/2 + n*pi, measured in
	// multiples of pi.
	tanPrecision = decimal.New(1, -9)

	maxIntegerExponent = decimal.New(1, 15)
)

// magnitude returns the number of digits before the decimal point, or a non-positive
// number counting the leading fractional zeros for values below one.
func magnitude(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	return d.Abs().NumDigits() + int(d.Exponent())
}

func roundSig(d decimal.Decimal, digits int) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	n := d.Abs().NumDigits()
	if n <= digits {
		return d
	}
	return d.Round(int32(digits - (n + int(d.Exponent()))))
}

func checked(d decimal.Decimal) (decimal.Decimal, *Error) {
	if m := magnitude(d); m > maxMagnitude || m < -maxMagnitude {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}
	return roundSig(d, Precision), nil
}

func add(a, b decimal.Decimal) (decimal.Decimal, *Error) {
	return checked(a.Add(b))
}

func sub(a, b decimal.Decimal) (decimal.Decimal, *Error) {
	return checked(a.Sub(b))
}

func mul(a, b decimal.Decimal) (decimal.Decimal, *Error) {
	if magnitude(a)+magnitude(b) > maxMagnitude+1 {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}
	return checked(a.Mul(b))
}

func quo(a, b decimal.Decimal) (decimal.Decimal, *Error) {
	if b.IsZero() {
		if a.IsZero() {
			return decimal.Zero, newError(KindNotANumber)
		}
		return decimal.Zero, newError(KindInfinity)
	}
	if a.IsZero() {
		return decimal.Zero, nil
	}
	places := Precision + 2 - (magnitude(a) - magnitude(b))
	if places > maxMagnitude || places < -maxMagnitude {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}
	return checked(a.DivRound(b, int32(places)))
}

func pow(base, exponent decimal.Decimal) (decimal.Decimal, *Error) {
	if exponent.IsZero() {
		return decimalOne, nil
	}
	if base.IsZero() {
		if exponent.IsNegative() {
			return decimal.Zero, newError(KindInfinity)
		}
		return decimal.Zero, nil
	}

	if !exponent.IsInteger() {
		return fromFloat(math.Pow(toFloat(base), toFloat(exponent)))
	}

	if base.Abs().Equal(decimalOne) {
		if base.IsNegative() && !exponent.Mod(decimalTwo).IsZero() {
			return decimalOne.Neg(), nil
		}
		return decimalOne, nil
	}
	if exponent.Abs().GreaterThan(maxIntegerExponent) {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}

	// Estimate the size of the result before multiplying.
	lg := math.Log10(math.Abs(toFloat(base)))
	if math.IsInf(lg, 0) {
		lg = float64(magnitude(base))
	}
	if math.Abs(lg*toFloat(exponent)) > maxMagnitude {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}

	n := exponent.Abs().IntPart()
	result := decimalOne
	square := base
	for n > 0 {
		var err *Error
		if n&1 == 1 {
			if result, err = mul(result, square); err != nil {
				return decimal.Zero, err
			}
		}
		n >>= 1
		if n > 0 {
			if square, err = mul(square, square); err != nil {
				return decimal.Zero, err
			}
		}
	}

	if exponent.IsNegative() {
		return quo(decimalOne, result)
	}
	return result, nil
}

func factorial(n decimal.Decimal) (decimal.Decimal, *Error) {
	if n.IsNegative() || !n.IsInteger() {
		return decimal.Zero, newError(KindNotANumber)
	}
	if n.GreaterThan(decimal.NewFromInt(maxFactorial)) {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}

	result := decimalOne
	for i := int64(2); i <= n.IntPart(); i++ {
		var err *Error
		if result, err = mul(result, decimal.NewFromInt(i)); err != nil {
			return decimal.Zero, err
		}
	}
	return result, nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func fromFloat(f float64) (decimal.Decimal, *Error) {
	switch {
	case math.IsNaN(f):
		return decimal.Zero, newError(KindNotANumber)
	case math.IsInf(f, 0):
		return decimal.Zero, newError(KindInfinity)
	}
	return decimal.NewFromFloat(f), nil
}

// floatFunc lifts a float64 function into decimal space.
func floatFunc(fn func(float64) float64) func(decimal.Decimal) (decimal.Decimal, *Error) {
	return func(x decimal.Decimal) (decimal.Decimal, *Error) {
		return fromFloat(fn(toFloat(x)))
	}
}
