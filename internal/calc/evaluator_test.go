package calc

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustCalculate(t *testing.T, expression string, env Env) Result {
	t.Helper()
	res, err := Calculate(context.Background(), expression, env)
	if err != nil {
		t.Fatalf("Calculate(%q) returned error: %v", expression, err)
	}
	return res
}

func errorKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	return cerr.Kind
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		expression string
		unit       AngleUnit
		want       string
	}{
		{"1+2*3", Radians, "7"},
		{"(1+2)*3", Radians, "9"},
		{"3-2-1", Radians, "0"},
		{"2^3^2", Radians, "512"},
		{"-2^2", Radians, "-4"},
		{"2^-1", Radians, "0.5"},
		{"10/4", Radians, "2.5"},
		{"0.1+0.2", Radians, "0.3"},
		{"1,5*2", Radians, "3"},
		{"5!", Radians, "120"},
		{"2*3!", Radians, "12"},
		{"2pi", Radians, "6.2831853"},
		{"2(3+4)", Radians, "14"},
		{"(2)(3)", Radians, "6"},
		{"sqrt(16)", Radians, "4"},
		{"abs(-3)", Radians, "3"},
		{"max(1;5;3)", Radians, "5"},
		{"ncr(5;2)", Radians, "10"},
		{"npr(5;2)", Radians, "20"},
		{"log(2;8)", Radians, "3"},
		{"lg(1000)", Radians, "3"},
		{"sin(pi)", Radians, "0"},
		{"sin(30)", Degrees, "0.5"},
		{"cos(60)", Degrees, "0.5"},
		{"tan(45)", Degrees, "1"},
		{"asin(1)", Degrees, "90"},
	}

	for _, tt := range tests {
		res := mustCalculate(t, tt.expression, Env{AngleUnit: tt.unit})
		if !res.HasValue {
			t.Fatalf("Calculate(%q) produced no value", tt.expression)
		}
		if got := Format(res.Value, 8); got != tt.want {
			t.Errorf("Calculate(%q) = %s, want %s", tt.expression, got, tt.want)
		}
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		expression string
		want       ErrorKind
	}{
		{"1/0", KindInfinity},
		{"0/0", KindNotANumber},
		{"sqrt(-1)", KindNotANumber},
		{"(-1)!", KindNotANumber},
		{"(1+2", KindNoRHSBracket},
		{"1+2)", KindNoLHSBracket},
		{"1+", KindUnexpectedEOF},
		{"", KindUnexpectedEOF},
		{"1 2", KindUnexpectedToken},
		{"foo", KindUnknownName},
		{"foo(1)", KindUnknownName},
		{"sin(1;2)", KindInvalidArgCount},
		{"10^100001", KindPrecisionOverflow},
		{"tan(pi/2)", KindTrigPrecision},
		{"1 $", KindUnknownToken},
		{"sin=3", KindReservedName},
		{"pi=3", KindReservedName},
		{"f(x)=x+", KindUnexpectedEOF},
		{"f(x;)=x", KindUnexpectedToken},
		{"f(pi)=pi", KindReservedName},
	}

	for _, tt := range tests {
		_, err := Calculate(context.Background(), tt.expression, Env{})
		if err == nil {
			t.Errorf("Calculate(%q) succeeded, want %s", tt.expression, tt.want)
			continue
		}
		if got := errorKind(t, err); got != tt.want {
			t.Errorf("Calculate(%q) error = %s, want %s", tt.expression, got, tt.want)
		}
	}
}

func TestUnknownNameCarriesName(t *testing.T) {
	_, err := Calculate(context.Background(), "foo+1", Env{})
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Name != "foo" {
		t.Fatalf("error = %v, want UNKNOWN_NAME for foo", err)
	}
}

func TestVariableAssignment(t *testing.T) {
	env := Env{}
	res := mustCalculate(t, "x=5", env)
	if !res.HasValue || !res.Value.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("x=5 returned %v", res.Value)
	}
	if len(env.UserSpace) != 0 {
		t.Fatal("assignment mutated the caller's user space")
	}

	env.UserSpace = res.UserSpace
	res = mustCalculate(t, "2x", env)
	if got := Format(res.Value, 8); got != "10" {
		t.Errorf("2x = %s, want 10", got)
	}
}

func TestFunctionDefinition(t *testing.T) {
	res := mustCalculate(t, "f(a;b)=a+b", Env{})
	if res.HasValue {
		t.Fatal("function definition should not produce a value")
	}
	obj, ok := res.UserSpace["f"]
	if !ok || obj.Kind != ObjectFunction || len(obj.Parameters) != 2 {
		t.Fatalf("user space = %+v, want function f(a;b)", res.UserSpace)
	}

	env := Env{UserSpace: res.UserSpace}
	res = mustCalculate(t, "f(2;3)*2", env)
	if got := Format(res.Value, 8); got != "10" {
		t.Errorf("f(2;3)*2 = %s, want 10", got)
	}

	if _, err := Calculate(context.Background(), "f(1)", env); errorKind(t, err) != KindInvalidArgCount {
		t.Errorf("f(1) error = %v, want %s", err, KindInvalidArgCount)
	}
}

func TestFunctionDefinitionAllowsValueErrors(t *testing.T) {
	res := mustCalculate(t, "g(x)=1/(x-1)", Env{})
	env := Env{UserSpace: res.UserSpace}

	res = mustCalculate(t, "g(3)", env)
	if got := Format(res.Value, 8); got != "0.5" {
		t.Errorf("g(3) = %s, want 0.5", got)
	}
}

func TestRecursionLimit(t *testing.T) {
	res := mustCalculate(t, "f(x)=f(x)", Env{})
	_, err := Calculate(context.Background(), "f(1)", Env{UserSpace: res.UserSpace})
	if got := errorKind(t, err); got != KindRecursion {
		t.Errorf("f(1) error = %s, want %s", got, KindRecursion)
	}
}

func TestAnswerVariable(t *testing.T) {
	res := mustCalculate(t, "ans*2", Env{Ans: decimal.NewFromInt(21)})
	if got := Format(res.Value, 8); got != "42" {
		t.Errorf("ans*2 = %s, want 42", got)
	}
}

func TestCalculateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Calculate(ctx, "1+1", Env{})
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != KindTimeout {
		t.Fatalf("error = %v, want %s", err, KindTimeout)
	}
	if cerr.Expression != "1+1" {
		t.Errorf("timeout expression = %q, want %q", cerr.Expression, "1+1")
	}
}

func TestParseAngleUnit(t *testing.T) {
	if u, ok := ParseAngleUnit("deg"); !ok || u != Degrees {
		t.Errorf("ParseAngleUnit(deg) = %q, %v", u, ok)
	}
	if _, ok := ParseAngleUnit("grad"); ok {
		t.Error("ParseAngleUnit(grad) should fail")
	}
}
