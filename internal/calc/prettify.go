package calc

import "strings"

var prettyFunctionNames = map[string]string{
	"sqrt":  "√",
	"asin":  "arcsin",
	"acos":  "arccos",
	"atan":  "arctan",
	"asinh": "arsinh",
	"acosh": "arcosh",
	"atanh": "artanh",
}

// Prettify rewrites an expression into its display form, for example
// "1+2*(cos(2)/sqrt(pi))" becomes "1 + 2 × (cos(2) / √(π))". Input that cannot be
// tokenised is returned unchanged.
func Prettify(expression string) string {
	tokens, err := Tokenise(expression)
	if err != nil {
		return expression
	}
	return PrettifyTokens(tokens)
}

// PrettifyTokens renders tokens in display form. The result tokenises back to the same
// sequence, apart from explicit multiplications inserted between implicit factors.
func PrettifyTokens(tokens []Token) string {
	var b strings.Builder
	for i, cur := range tokens {
		var lhs, rhs *Token
		if i > 0 {
			lhs = &tokens[i-1]
		}
		if i+1 < len(tokens) {
			rhs = &tokens[i+1]
		}

		b.WriteString(prettyToken(cur))
		if rhs == nil {
			continue
		}

		switch {
		case impliesProduct(cur, *rhs):
			b.WriteString(" × ")
		case spaced(lhs, cur, *rhs):
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func prettyToken(t Token) string {
	switch t.Type {
	case TokenLiteral:
		return strings.Replace(t.Value.String(), ".", ",", 1)
	case TokenVariable:
		switch t.Name {
		case "ans":
			return "ANS"
		case "pi":
			return "π"
		}
	case TokenOperator:
		switch t.Name {
		case "*":
			return "×"
		case "-":
			return "−"
		}
	case TokenFunction:
		if name, ok := prettyFunctionNames[t.Name]; ok {
			return name
		}
	}
	return t.String()
}

// impliesProduct reports whether cur and rhs multiply implicitly in a way that reads
// better with an explicit sign: (10)(10) and 2cos(x).
func impliesProduct(cur, rhs Token) bool {
	switch cur.Type {
	case TokenRightBracket:
		switch rhs.Type {
		case TokenLiteral, TokenVariable, TokenFunction, TokenLeftBracket:
			return true
		}
	case TokenLiteral:
		return rhs.Type == TokenFunction
	}
	return false
}

func spaced(lhs *Token, cur, rhs Token) bool {
	switch {
	case cur.Type == TokenLeftBracket, rhs.Type == TokenRightBracket:
		return false
	case cur.Type == TokenFunction && rhs.Type == TokenLeftBracket:
		return false
	case cur.Type == TokenLiteral && (rhs.Type == TokenVariable || rhs.Type == TokenLeftBracket):
		return false
	case rhs.is(TokenOperator, "!"), rhs.Type == TokenNextParam:
		return false
	case cur.is(TokenOperator, "-") && !endsOperand(lhs):
		// Unary minus sticks to its operand: "-5 + 5".
		return false
	}
	return true
}

func endsOperand(t *Token) bool {
	if t == nil {
		return false
	}
	switch t.Type {
	case TokenLiteral, TokenVariable, TokenRightBracket:
		return true
	}
	return t.is(TokenOperator, "!")
}
