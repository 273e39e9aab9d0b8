package calc

import (
	"regexp"
	"strings"
)

type latexRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order; later rules rely on the bracket forms produced by earlier ones.
var latexRules = []latexRule{
	{regexp.MustCompile(`\\left\(`), "("},
	{regexp.MustCompile(`\\right\)`), ")"},
	{regexp.MustCompile(`\\frac\{([^}]*)\}\{([^}]*)\}`), "($1)/($2)"},
	{regexp.MustCompile(`\(([^)]+)\)\^\{([^}]+)\}`), "($1)^($2)"},
	{regexp.MustCompile(`\^\{([^}]+)\}`), "^($1)"},
	{regexp.MustCompile(`\\cdot`), "*"},
	{regexp.MustCompile(`\\times`), "*"},
	{regexp.MustCompile(`\\sin\s*\(?([^\s)]+)\)?`), "sin($1)"},
	{regexp.MustCompile(`\\cos\s*\(?([^\s)]+)\)?`), "cos($1)"},
	{regexp.MustCompile(`\\tan\s*\(?([^\s)]+)\)?`), "tan($1)"},
	{regexp.MustCompile(`Â?°`), ""},
	{regexp.MustCompile(`\\log\s*_\{?([^}]*?)\}?\s*\(([^)]+)\)`), "log($1; $2)"},
	{regexp.MustCompile(`\\log\s*\(([^)]+)\)`), "lg($1)"},
	{regexp.MustCompile(`\\sqrt\{([^}]*)\}`), "sqrt($1)"},
	{regexp.MustCompile(`\\pi`), "pi"},
}

// LatexToExpression converts the LaTeX produced by math input widgets into an
// expression the tokeniser understands, e.g. \frac{1}{2}^{5} becomes (1)/(2)^(5).
func LatexToExpression(latex string) string {
	for _, rule := range latexRules {
		latex = rule.pattern.ReplaceAllString(latex, rule.replacement)
	}
	return stripBackslashes(latex)
}

// stripBackslashes drops leftover command backslashes but keeps the first of an
// escaped pair.
func stripBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && (i+1 >= len(s) || s[i+1] != '\\') {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
