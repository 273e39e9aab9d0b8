package calc

import (
	"errors"
	"testing"
)

func TestTokenise(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2", "litr:1 oper:+ litr:2"},
		{"sin(x)", "func:sin lbrk var:x rbrk"},
		{"2,5", "litr:2.5"},
		{"√(4)", "func:sqrt lbrk litr:4 rbrk"},
		{"π×2−1", "var:pi oper:* litr:2 oper:- litr:1"},
		{"ANS", "var:ans"},
		{"arcsin(1)", "func:asin lbrk litr:1 rbrk"},
		{"log(2;8)", "func:log lbrk litr:2 nextparam litr:8 rbrk"},
		{"  ", ""},
	}

	for _, tt := range tests {
		tokens, err := Tokenise(tt.input)
		if err != nil {
			t.Fatalf("Tokenise(%q) returned error: %v", tt.input, err)
		}
		if got := describe(tokens); got != tt.want {
			t.Errorf("Tokenise(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokeniseUnknownToken(t *testing.T) {
	tests := []struct {
		input string
		index int
	}{
		{"1 $ 2", 2},
		{"ää $", 3},
		{"#", 0},
	}

	for _, tt := range tests {
		_, err := Tokenise(tt.input)
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("Tokenise(%q) error = %v, want *Error", tt.input, err)
		}
		if cerr.Kind != KindUnknownToken || cerr.Index != tt.index {
			t.Errorf("Tokenise(%q) = %s at %d, want %s at %d", tt.input, cerr.Kind, cerr.Index, KindUnknownToken, tt.index)
		}
	}
}

func TestSourceRoundTrip(t *testing.T) {
	for _, input := range []string{"1+2*(cos(2)/sqrt(pi))", "f(a;b)", "2x^2-1", "max(1,5;2)!"} {
		tokens, err := Tokenise(input)
		if err != nil {
			t.Fatalf("Tokenise(%q) returned error: %v", input, err)
		}
		again, err := Tokenise(Source(tokens))
		if err != nil {
			t.Fatalf("Tokenise(Source(%q)) returned error: %v", input, err)
		}
		if describe(again) != describe(tokens) {
			t.Errorf("round trip of %q: got %q, want %q", input, describe(again), describe(tokens))
		}
	}
}

func describe(tokens []Token) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		switch tok.Type {
		case TokenLiteral:
			out += "litr:" + tok.Value.String()
		case TokenLeftBracket, TokenRightBracket, TokenNextParam:
			out += string(tok.Type)
		default:
			out += string(tok.Type) + ":" + tok.Name
		}
	}
	return out
}
