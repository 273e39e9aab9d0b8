package calc

import "testing"

func TestLatexToExpression(t *testing.T) {
	tests := []struct {
		latex string
		want  string
	}{
		{`\frac{1}{2}`, "(1)/(2)"},
		{`2\cdot3`, "2*3"},
		{`\left(1+2\right)^{2}`, "(1+2)^(2)"},
		{`\sin(30)`, "sin(30)"},
		{`\log_{2}(8)`, "log(2; 8)"},
		{`\log(100)`, "lg(100)"},
		{`\sqrt{4}`, "sqrt(4)"},
		{`2\pi`, "2pi"},
	}

	for _, tt := range tests {
		if got := LatexToExpression(tt.latex); got != tt.want {
			t.Errorf("LatexToExpression(%q) = %q, want %q", tt.latex, got, tt.want)
		}
	}
}
