package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// builtin describes a function callable from expressions. A negative arity accepts
// any number of arguments.
type builtin struct {
	arity int
	call  func(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error)
}

// unary wraps a single argument function that ignores the angle unit.
func unary(fn func(decimal.Decimal) (decimal.Decimal, *Error)) builtin {
	return builtin{arity: 1, call: func(args []decimal.Decimal, _ AngleUnit) (decimal.Decimal, *Error) {
		return fn(args[0])
	}}
}

func binary(fn func(a, b decimal.Decimal) (decimal.Decimal, *Error)) builtin {
	return builtin{arity: 2, call: func(args []decimal.Decimal, _ AngleUnit) (decimal.Decimal, *Error) {
		return fn(args[0], args[1])
	}}
}

func variadic(fn func(args []decimal.Decimal) (decimal.Decimal, *Error)) builtin {
	return builtin{arity: -1, call: func(args []decimal.Decimal, _ AngleUnit) (decimal.Decimal, *Error) {
		return fn(args)
	}}
}

func exact(fn func(decimal.Decimal) decimal.Decimal) builtin {
	return unary(func(x decimal.Decimal) (decimal.Decimal, *Error) {
		return fn(x), nil
	})
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		// Trigonometry follows the angle unit.
		"sin":  {arity: 1, call: sine},
		"cos":  {arity: 1, call: cosine},
		"tan":  {arity: 1, call: tangent},
		"csc":  {arity: 1, call: cosecant},
		"cot":  {arity: 1, call: cotangent},
		"asin": {arity: 1, call: inverseTrig(math.Asin)},
		"acos": {arity: 1, call: inverseTrig(math.Acos)},
		"atan": {arity: 1, call: inverseTrig(math.Atan)},

		"sinh":  unary(floatFunc(math.Sinh)),
		"cosh":  unary(floatFunc(math.Cosh)),
		"tanh":  unary(floatFunc(math.Tanh)),
		"asinh": unary(floatFunc(math.Asinh)),
		"acosh": unary(floatFunc(math.Acosh)),
		"atanh": unary(floatFunc(math.Atanh)),

		"sqrt":  unary(squareRoot),
		"cbrt":  unary(floatFunc(math.Cbrt)),
		"exp":   unary(floatFunc(math.Exp)),
		"ln":    unary(naturalLog),
		"lg":    unary(commonLog),
		"gamma": unary(floatFunc(math.Gamma)),
		"erf":   unary(floatFunc(math.Erf)),
		"erfc":  unary(floatFunc(math.Erfc)),

		"floor": exact(decimal.Decimal.Floor),
		"ceil":  exact(decimal.Decimal.Ceil),
		"trunc": exact(func(x decimal.Decimal) decimal.Decimal { return x.Truncate(0) }),
		"round": exact(func(x decimal.Decimal) decimal.Decimal { return x.Round(0) }),
		"abs":   exact(decimal.Decimal.Abs),
		"frac":  exact(func(x decimal.Decimal) decimal.Decimal { return x.Sub(x.Truncate(0)) }),

		"degrees": unary(func(x decimal.Decimal) (decimal.Decimal, *Error) { return mul(x, radDegRatio) }),
		"radians": unary(func(x decimal.Decimal) (decimal.Decimal, *Error) { return quo(x, radDegRatio) }),

		"log":     binary(logBase),
		"ncr":     binary(combinations),
		"npr":     binary(permutations),
		"nthroot": binary(nthRoot),

		"average": variadic(average),
		"sum":     variadic(sum),
		"min":     variadic(minimum),
		"max":     variadic(maximum),
	}
}

func toRadians(x decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	if unit == Degrees {
		return quo(x, radDegRatio)
	}
	return x, nil
}

// nearMultipleOfPi reports whether (x - offset) / pi is within tanPrecision of an integer.
func nearMultipleOfPi(x, offset decimal.Decimal) (bool, *Error) {
	shifted, err := sub(x, offset)
	if err != nil {
		return false, err
	}
	coefficient, err := quo(shifted, constantPi)
	if err != nil {
		return false, err
	}
	return coefficient.Sub(coefficient.Round(0)).Abs().LessThan(tanPrecision), nil
}

// snapZero drops float noise left where the exact result is zero, e.g. sin(180°).
func snapZero(f, arg float64) float64 {
	if math.Abs(f) < 1e-15 && math.Abs(arg) > 1e-15 {
		return 0
	}
	return f
}

func sine(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	r, err := toRadians(args[0], unit)
	if err != nil {
		return decimal.Zero, err
	}
	arg := toFloat(r)
	return fromFloat(snapZero(math.Sin(arg), arg))
}

func cosine(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	r, err := toRadians(args[0], unit)
	if err != nil {
		return decimal.Zero, err
	}
	arg := toFloat(r)
	return fromFloat(snapZero(math.Cos(arg), arg))
}

func tangent(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	r, err := toRadians(args[0], unit)
	if err != nil {
		return decimal.Zero, err
	}
	// Tangent is undefined at pi/2 + n*pi and pi is only approximated, so arguments
	// close enough to those points are rejected.
	critical, err := nearMultipleOfPi(r, halfPi)
	if err != nil {
		return decimal.Zero, err
	}
	if critical {
		return decimal.Zero, newError(KindTrigPrecision)
	}
	arg := toFloat(r)
	return fromFloat(snapZero(math.Tan(arg), arg))
}

func cosecant(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	r, err := toRadians(args[0], unit)
	if err != nil {
		return decimal.Zero, err
	}
	critical, err := nearMultipleOfPi(r, decimal.Zero)
	if err != nil {
		return decimal.Zero, err
	}
	if critical {
		return decimal.Zero, newError(KindTrigPrecision)
	}
	return fromFloat(1 / math.Sin(toFloat(r)))
}

func cotangent(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
	r, err := toRadians(args[0], unit)
	if err != nil {
		return decimal.Zero, err
	}
	critical, err := nearMultipleOfPi(r, decimal.Zero)
	if err != nil {
		return decimal.Zero, err
	}
	if critical {
		return decimal.Zero, newError(KindTrigPrecision)
	}
	arg := toFloat(r)
	return fromFloat(snapZero(math.Cos(arg)/math.Sin(arg), arg))
}

func inverseTrig(fn func(float64) float64) func([]decimal.Decimal, AngleUnit) (decimal.Decimal, *Error) {
	return func(args []decimal.Decimal, unit AngleUnit) (decimal.Decimal, *Error) {
		r, err := fromFloat(fn(toFloat(args[0])))
		if err != nil || unit != Degrees {
			return r, err
		}
		return mul(r, radDegRatio)
	}
}

// squareRoot refines the float estimate with Newton's method so the result carries
// full precision.
func squareRoot(x decimal.Decimal) (decimal.Decimal, *Error) {
	if x.IsNegative() {
		return decimal.Zero, newError(KindNotANumber)
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}

	guess, err := fromFloat(math.Sqrt(toFloat(x)))
	if err != nil || guess.IsZero() {
		guess = decimal.New(1, int32(magnitude(x)/2))
	}
	for i := 0; i < 12; i++ {
		q, err := quo(x, guess)
		if err != nil {
			return decimal.Zero, err
		}
		next, err := quo(guess.Add(q), decimalTwo)
		if err != nil {
			return decimal.Zero, err
		}
		if next.Equal(guess) {
			break
		}
		guess = next
	}
	return guess, nil
}

// log10Of splits x into mantissa and decimal exponent so values outside the float64
// range still have a logarithm.
func log10Of(x decimal.Decimal) (float64, *Error) {
	if x.IsZero() {
		return 0, newError(KindInfinity)
	}
	if x.IsNegative() {
		return 0, newError(KindNotANumber)
	}
	k := magnitude(x) - 1
	mantissa := x.Shift(int32(-k))
	return math.Log10(toFloat(mantissa)) + float64(k), nil
}

func commonLog(x decimal.Decimal) (decimal.Decimal, *Error) {
	lg, err := log10Of(x)
	if err != nil {
		return decimal.Zero, err
	}
	return fromFloat(lg)
}

func naturalLog(x decimal.Decimal) (decimal.Decimal, *Error) {
	lg, err := log10Of(x)
	if err != nil {
		return decimal.Zero, err
	}
	return fromFloat(lg * math.Ln10)
}

// logBase takes the base first, as SpeedCrunch does.
func logBase(base, x decimal.Decimal) (decimal.Decimal, *Error) {
	lx, err := log10Of(x)
	if err != nil {
		return decimal.Zero, err
	}
	lb, err := log10Of(base)
	if err != nil {
		return decimal.Zero, err
	}
	if lb == 0 {
		return decimal.Zero, newError(KindInfinity)
	}
	return fromFloat(lx / lb)
}

func permutations(n, r decimal.Decimal) (decimal.Decimal, *Error) {
	if !n.IsInteger() || !r.IsInteger() || n.IsNegative() || r.IsNegative() {
		return decimal.Zero, newError(KindNotANumber)
	}
	if r.GreaterThan(n) {
		return decimal.Zero, nil
	}
	if r.GreaterThan(decimal.NewFromInt(maxFactorial)) {
		return decimal.Zero, newError(KindPrecisionOverflow)
	}

	result := decimalOne
	for i := int64(0); i < r.IntPart(); i++ {
		var err *Error
		if result, err = mul(result, n.Sub(decimal.NewFromInt(i))); err != nil {
			return decimal.Zero, err
		}
	}
	return result, nil
}

func combinations(n, r decimal.Decimal) (decimal.Decimal, *Error) {
	if !n.IsInteger() || !r.IsInteger() || n.IsNegative() || r.IsNegative() {
		return decimal.Zero, newError(KindNotANumber)
	}
	if r.GreaterThan(n) {
		return decimal.Zero, nil
	}
	// C(n, r) == C(n, n-r); the smaller side keeps the loop short.
	if other := n.Sub(r); other.LessThan(r) {
		r = other
	}
	p, err := permutations(n, r)
	if err != nil {
		return decimal.Zero, err
	}
	f, err := factorial(r)
	if err != nil {
		return decimal.Zero, err
	}
	result, err := quo(p, f)
	if err != nil {
		return decimal.Zero, err
	}
	return result.Round(0), nil
}

// nthRoot takes the degree first: nthroot(3; 27) is 3.
func nthRoot(n, x decimal.Decimal) (decimal.Decimal, *Error) {
	if n.IsZero() {
		return decimal.Zero, newError(KindNotANumber)
	}
	if x.IsNegative() {
		if !n.IsInteger() || n.Mod(decimalTwo).IsZero() {
			return decimal.Zero, newError(KindNotANumber)
		}
		root, err := fromFloat(math.Pow(toFloat(x.Abs()), 1/toFloat(n)))
		return root.Neg(), err
	}
	return fromFloat(math.Pow(toFloat(x), 1/toFloat(n)))
}

func sum(args []decimal.Decimal) (decimal.Decimal, *Error) {
	total := decimal.Zero
	for _, a := range args {
		var err *Error
		if total, err = add(total, a); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}

func average(args []decimal.Decimal) (decimal.Decimal, *Error) {
	if len(args) == 0 {
		return decimal.Zero, nil
	}
	total, err := sum(args)
	if err != nil {
		return decimal.Zero, err
	}
	return quo(total, decimal.NewFromInt(int64(len(args))))
}

func minimum(args []decimal.Decimal) (decimal.Decimal, *Error) {
	if len(args) == 0 {
		return decimal.Zero, newError(KindInvalidArgCount)
	}
	return decimal.Min(args[0], args[1:]...), nil
}

func maximum(args []decimal.Decimal) (decimal.Decimal, *Error) {
	if len(args) == 0 {
		return decimal.Zero, newError(KindInvalidArgCount)
	}
	return decimal.Max(args[0], args[1:]...), nil
}
