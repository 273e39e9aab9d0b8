package calc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TokenType classifies a Token.
type TokenType string

const (
	TokenLiteral      TokenType = "litr"
	TokenOperator     TokenType = "oper"
	TokenLeftBracket  TokenType = "lbrk"
	TokenRightBracket TokenType = "rbrk"
	TokenNextParam    TokenType = "nextparam"
	TokenFunction     TokenType = "func"
	TokenVariable     TokenType = "var"
)

// Token is a single lexical unit of an expression. Name is used by operators,
// functions and variables, Value by literals.
type Token struct {
	Type  TokenType
	Name  string
	Value decimal.Decimal
}

// String renders the token back into input syntax that tokenises to the same token.
func (t Token) String() string {
	switch t.Type {
	case TokenLiteral:
		return t.Value.String()
	case TokenLeftBracket:
		return "("
	case TokenRightBracket:
		return ")"
	case TokenNextParam:
		return ";"
	default:
		return t.Name
	}
}

func (t Token) is(typ TokenType, name string) bool {
	return t.Type == typ && t.Name == name
}

var (
	literalPattern    = regexp.MustCompile(`^((\d+[,.]\d+)|([1-9]\d*)|0)`)
	identifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}_0-9]*`)
)

var operatorAliases = map[rune]string{
	'-': "-",
	'=': "=",
	'+': "+",
	'/': "/",
	'*': "*",
	'^': "^",
	'!': "!",
	'−': "-",
	'×': "*",
}

var functionAliases = map[string]string{
	"log10":  "log",
	"√":      "sqrt",
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
	"arsinh": "asinh",
	"arcosh": "acosh",
	"artanh": "atanh",
}

var variableAliases = map[string]string{
	"π": "pi",
	"ℇ": "e",
	"𝑒": "e",
	"ℯ": "e",
}

// Tokenise splits an expression into tokens. It stops at the first input it cannot
// recognise and returns an UNKNOWN_TOKEN error pointing at it.
func Tokenise(expression string) ([]Token, error) {
	tokens := make([]Token, 0, len(expression)/2)
	idx := 0

	for idx < len(expression) {
		rest := expression[idx:]

		r, size := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(r) {
			idx += size
			continue
		}

		if m := literalPattern.FindString(rest); m != "" {
			value, err := decimal.NewFromString(strings.Replace(m, ",", ".", 1))
			if err != nil {
				return nil, unknownTokenAt(expression, idx)
			}
			tokens = append(tokens, Token{Type: TokenLiteral, Value: value})
			idx += len(m)
			continue
		}

		if name, ok := operatorAliases[r]; ok {
			tokens = append(tokens, Token{Type: TokenOperator, Name: name})
			idx += size
			continue
		}

		switch r {
		case '(':
			tokens = append(tokens, Token{Type: TokenLeftBracket})
			idx += size
			continue
		case ')':
			tokens = append(tokens, Token{Type: TokenRightBracket})
			idx += size
			continue
		case ';':
			tokens = append(tokens, Token{Type: TokenNextParam})
			idx += size
			continue
		}

		ident := identifierPattern.FindString(rest)
		if ident == "" && r == '√' {
			ident = "√"
		}
		if ident != "" {
			idx += len(ident)
			name := strings.ToLower(ident)
			if strings.HasPrefix(expression[idx:], "(") {
				if alias, ok := functionAliases[name]; ok {
					name = alias
				}
				tokens = append(tokens, Token{Type: TokenFunction, Name: name})
			} else {
				if alias, ok := variableAliases[name]; ok {
					name = alias
				}
				tokens = append(tokens, Token{Type: TokenVariable, Name: name})
			}
			continue
		}

		return nil, unknownTokenAt(expression, idx)
	}

	return tokens, nil
}

func unknownTokenAt(expression string, byteIdx int) *Error {
	return &Error{Kind: KindUnknownToken, Index: utf8.RuneCountInString(expression[:byteIdx])}
}

// Source renders tokens as an expression that tokenises back to the same sequence.
func Source(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		// A function name must stay glued to its bracket.
		if i > 0 && tokens[i-1].Type != TokenFunction {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
