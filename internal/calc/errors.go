package calc

import "fmt"

// ErrorKind identifies why an expression could not be tokenised or evaluated.
// The string values are shared with the front-end.
type ErrorKind string

const (
	KindUnknownToken      ErrorKind = "UNKNOWN_TOKEN"
	KindUnexpectedEOF     ErrorKind = "UNEXPECTED_EOF"
	KindUnexpectedToken   ErrorKind = "UNEXPECTED_TOKEN"
	KindInvalidArgCount   ErrorKind = "INVALID_ARG_COUNT"
	KindNotANumber        ErrorKind = "NOT_A_NUMBER"
	KindInfinity          ErrorKind = "INFINITY"
	KindNoLHSBracket      ErrorKind = "NO_LHS_BRACKET"
	KindNoRHSBracket      ErrorKind = "NO_RHS_BRACKET"
	KindTrigPrecision     ErrorKind = "TRIG_PRECISION"
	KindPrecisionOverflow ErrorKind = "PRECISION_OVERFLOW"
	KindRecursion         ErrorKind = "RECURSION"
	KindTimeout           ErrorKind = "TIMEOUT"
	KindUnknownName       ErrorKind = "UNKNOWN_NAME"
	KindReservedName      ErrorKind = "RESERVED_NAME"
)

// Error is returned by Tokenise and Evaluate.
type Error struct {
	Kind ErrorKind
	// Name is set for UNKNOWN_NAME and RESERVED_NAME.
	Name string
	// Index is the rune offset of the first unrecognised input for UNKNOWN_TOKEN.
	Index int
	// Expression is set for TIMEOUT.
	Expression string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownToken:
		return fmt.Sprintf("%s at %d", e.Kind, e.Index)
	case KindUnknownName, KindReservedName:
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	case KindTimeout:
		return fmt.Sprintf("%s: %s", e.Kind, e.Expression)
	default:
		return string(e.Kind)
	}
}

// IsSyntax reports whether the error is caused by the shape of the input rather than
// by the values flowing through it.
func (e *Error) IsSyntax() bool {
	switch e.Kind {
	case KindUnexpectedEOF, KindUnexpectedToken, KindNoLHSBracket, KindNoRHSBracket:
		return true
	}
	return false
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

func nameError(kind ErrorKind, name string) *Error {
	return &Error{Kind: kind, Name: name}
}
