package calc

import (
	"context"

	"github.com/shopspring/decimal"
)

// AngleUnit selects how trigonometric functions interpret their arguments.
type AngleUnit string

const (
	Degrees AngleUnit = "deg"
	Radians AngleUnit = "rad"
)

// ParseAngleUnit accepts "deg" and "rad".
func ParseAngleUnit(s string) (AngleUnit, bool) {
	switch AngleUnit(s) {
	case Degrees, Radians:
		return AngleUnit(s), true
	}
	return "", false
}

// maxCallDepth bounds nested user function calls.
const maxCallDepth = 64

// Env is the state an expression is evaluated against.
type Env struct {
	Ans       decimal.Decimal
	UserSpace UserSpace
	AngleUnit AngleUnit
}

// Result is the outcome of a successful evaluation. Function definitions produce no
// value. UserSpace is non-nil only when the expression defined something; it is a new
// map and the Env's space is left untouched.
type Result struct {
	Value     decimal.Decimal
	HasValue  bool
	UserSpace UserSpace
}

// Calculate tokenises and evaluates an expression.
func Calculate(ctx context.Context, expression string, env Env) (Result, error) {
	tokens, err := Tokenise(expression)
	if err != nil {
		return Result{}, err
	}
	return evaluate(ctx, expression, tokens, env)
}

// Evaluate evaluates already tokenised input.
func Evaluate(ctx context.Context, tokens []Token, env Env) (Result, error) {
	return evaluate(ctx, Source(tokens), tokens, env)
}

func evaluate(ctx context.Context, expression string, tokens []Token, env Env) (Result, error) {
	if env.AngleUnit == "" {
		env.AngleUnit = Radians
	}
	ev := &evaluator{
		ctx:        ctx,
		expression: expression,
		tokens:     tokens,
		env:        env,
		space:      env.UserSpace,
	}
	res, err := ev.run()
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// evaluator is a Pratt parser that evaluates sub-expressions as soon as they are
// parsed instead of building a syntax tree.
type evaluator struct {
	ctx        context.Context
	expression string
	tokens     []Token
	pos        int
	env        Env
	space      UserSpace
	depth      int
}

func (ev *evaluator) next() (Token, bool) {
	if ev.pos >= len(ev.tokens) {
		return Token{}, false
	}
	t := ev.tokens[ev.pos]
	ev.pos++
	return t, true
}

func (ev *evaluator) peek() (Token, bool) {
	if ev.pos >= len(ev.tokens) {
		return Token{}, false
	}
	return ev.tokens[ev.pos], true
}

// lbp is the left binding power of a token.
func lbp(t Token) int {
	switch t.Type {
	case TokenLiteral, TokenVariable:
		return 1
	case TokenFunction:
		return 6
	case TokenOperator:
		switch t.Name {
		case "+", "-":
			return 2
		case "*", "/":
			return 3
		case "^":
			return 4
		case "!":
			return 5
		}
	}
	return 0
}

func (ev *evaluator) run() (Result, *Error) {
	for i, t := range ev.tokens {
		if t.is(TokenOperator, "=") {
			return ev.define(i)
		}
	}

	value, err := ev.value()
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, HasValue: true}, nil
}

// value evaluates the remaining tokens as one complete expression.
func (ev *evaluator) value() (decimal.Decimal, *Error) {
	v, err := ev.expr(0)
	if err != nil {
		return decimal.Zero, err
	}
	if t, ok := ev.peek(); ok {
		if t.Type == TokenRightBracket {
			return decimal.Zero, newError(KindNoLHSBracket)
		}
		return decimal.Zero, newError(KindUnexpectedToken)
	}
	return v, nil
}

func (ev *evaluator) expr(rbp int) (decimal.Decimal, *Error) {
	left, err := ev.nud()
	for err == nil {
		t, ok := ev.peek()
		if !ok || lbp(t) <= rbp {
			break
		}
		ev.pos++
		left, err = ev.led(t, left)
	}
	return left, err
}

// startsOperand reports whether the next token begins an operand that multiplies the
// preceding value implicitly, as in 5pi or (2)(3).
func (ev *evaluator) startsOperand(types ...TokenType) bool {
	t, ok := ev.peek()
	if !ok {
		return false
	}
	for _, typ := range types {
		if t.Type == typ {
			return true
		}
	}
	return false
}

func (ev *evaluator) implicitProduct(left decimal.Decimal) (decimal.Decimal, *Error) {
	right, err := ev.expr(3)
	if err != nil {
		return decimal.Zero, err
	}
	return mul(right, left)
}

// nud handles a token that starts an expression.
func (ev *evaluator) nud() (decimal.Decimal, *Error) {
	if ev.ctx.Err() != nil {
		return decimal.Zero, &Error{Kind: KindTimeout, Expression: ev.expression}
	}

	t, ok := ev.next()
	if !ok {
		return decimal.Zero, newError(KindUnexpectedEOF)
	}

	switch t.Type {
	case TokenLiteral:
		if ev.startsOperand(TokenFunction, TokenVariable, TokenLeftBracket) {
			return ev.implicitProduct(t.Value)
		}
		return t.Value, nil

	case TokenVariable:
		switch t.Name {
		case "pi":
			return constantPi, nil
		case "e":
			return constantE, nil
		case "ans":
			return ev.env.Ans, nil
		}
		obj, ok := ev.space[t.Name]
		if !ok || obj.Kind != ObjectVariable {
			return decimal.Zero, nameError(KindUnknownName, t.Name)
		}
		return obj.Value, nil

	case TokenOperator:
		if t.Name == "-" {
			right, err := ev.expr(3)
			if err != nil {
				return decimal.Zero, err
			}
			return right.Neg(), nil
		}
		return decimal.Zero, newError(KindUnexpectedToken)

	case TokenLeftBracket:
		value, err := ev.expr(0)
		if err != nil {
			return decimal.Zero, err
		}
		if closing, ok := ev.next(); !ok || closing.Type != TokenRightBracket {
			return decimal.Zero, newError(KindNoRHSBracket)
		}
		if ev.startsOperand(TokenFunction, TokenVariable, TokenLeftBracket, TokenLiteral) {
			return ev.implicitProduct(value)
		}
		return value, nil

	case TokenFunction:
		return ev.call(t.Name)
	}

	return decimal.Zero, newError(KindUnexpectedToken)
}

// led handles a token that continues an expression whose left side is already known.
func (ev *evaluator) led(t Token, left decimal.Decimal) (decimal.Decimal, *Error) {
	if t.Type != TokenOperator {
		return decimal.Zero, newError(KindUnexpectedToken)
	}

	var (
		op  func(a, b decimal.Decimal) (decimal.Decimal, *Error)
		rbp int
	)
	switch t.Name {
	case "+":
		op, rbp = add, 2
	case "-":
		op, rbp = sub, 2
	case "*":
		op, rbp = mul, 3
	case "/":
		op, rbp = quo, 3
	case "^":
		// A right binding power below ^'s own makes it right associative.
		op, rbp = pow, 3
	case "!":
		return factorial(left)
	default:
		return decimal.Zero, newError(KindUnexpectedToken)
	}

	right, err := ev.expr(rbp)
	if err != nil {
		return decimal.Zero, err
	}
	return op(left, right)
}

// arguments parses a bracketed, semicolon separated argument list.
func (ev *evaluator) arguments() ([]decimal.Decimal, *Error) {
	if t, ok := ev.next(); !ok || t.Type != TokenLeftBracket {
		return nil, newError(KindUnexpectedToken)
	}

	t, ok := ev.peek()
	if !ok {
		return nil, newError(KindUnexpectedEOF)
	}
	if t.Type == TokenRightBracket {
		ev.pos++
		return nil, nil
	}

	var args []decimal.Decimal
	for {
		v, err := ev.expr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, v)

		t, ok := ev.next()
		if !ok {
			return nil, newError(KindUnexpectedEOF)
		}
		switch t.Type {
		case TokenRightBracket:
			return args, nil
		case TokenNextParam:
			continue
		default:
			return nil, newError(KindUnexpectedToken)
		}
	}
}

func (ev *evaluator) call(name string) (decimal.Decimal, *Error) {
	if fn, ok := builtins[name]; ok {
		args, err := ev.arguments()
		if err != nil {
			return decimal.Zero, err
		}
		if fn.arity >= 0 && len(args) != fn.arity {
			return decimal.Zero, newError(KindInvalidArgCount)
		}
		return fn.call(args, ev.env.AngleUnit)
	}

	obj, ok := ev.space[name]
	if !ok || obj.Kind != ObjectFunction {
		return decimal.Zero, nameError(KindUnknownName, name)
	}
	args, err := ev.arguments()
	if err != nil {
		return decimal.Zero, err
	}
	if len(args) != len(obj.Parameters) {
		return decimal.Zero, newError(KindInvalidArgCount)
	}
	if ev.depth+1 > maxCallDepth {
		return decimal.Zero, newError(KindRecursion)
	}

	scope := ev.space.Clone()
	for i, param := range obj.Parameters {
		scope[param] = UserObject{Kind: ObjectVariable, Value: args[i]}
	}
	inner := &evaluator{
		ctx:        ev.ctx,
		expression: ev.expression,
		tokens:     obj.Body,
		env:        ev.env,
		space:      scope,
		depth:      ev.depth + 1,
	}
	return inner.value()
}

// define handles "name = expr" and "name(a; b) = expr". assign is the index of the
// first equals sign.
func (ev *evaluator) define(assign int) (Result, *Error) {
	lhs := ev.tokens[:assign]
	body := ev.tokens[assign+1:]

	if len(lhs) == 1 && lhs[0].Type == TokenVariable {
		name := lhs[0].Name
		if IsReserved(name) {
			return Result{}, nameError(KindReservedName, name)
		}

		sub := ev.derive(body, ev.space)
		value, err := sub.value()
		if err != nil {
			return Result{}, err
		}
		space := ev.space.Clone()
		space[name] = UserObject{Kind: ObjectVariable, Value: value}
		return Result{Value: value, HasValue: true, UserSpace: space}, nil
	}

	if len(lhs) >= 3 && lhs[0].Type == TokenFunction {
		name := lhs[0].Name
		if IsReserved(name) {
			return Result{}, nameError(KindReservedName, name)
		}
		if lhs[1].Type != TokenLeftBracket {
			return Result{}, newError(KindNoLHSBracket)
		}
		if lhs[len(lhs)-1].Type != TokenRightBracket {
			return Result{}, newError(KindNoRHSBracket)
		}

		params, err := parameters(lhs[2 : len(lhs)-1])
		if err != nil {
			return Result{}, err
		}

		// Dry run with every parameter bound to one to reject malformed bodies. Value
		// errors such as division by zero are allowed here.
		probe := ev.space.Clone()
		for _, p := range params {
			probe[p] = UserObject{Kind: ObjectVariable, Value: decimalOne}
		}
		if _, err := ev.derive(body, probe).value(); err != nil && (err.IsSyntax() || err.Kind == KindTimeout) {
			return Result{}, err
		}

		space := ev.space.Clone()
		space[name] = UserObject{
			Kind:       ObjectFunction,
			Parameters: params,
			Body:       append([]Token(nil), body...),
		}
		return Result{UserSpace: space}, nil
	}

	return Result{}, newError(KindUnexpectedToken)
}

func (ev *evaluator) derive(tokens []Token, space UserSpace) *evaluator {
	return &evaluator{
		ctx:        ev.ctx,
		expression: ev.expression,
		tokens:     tokens,
		env:        ev.env,
		space:      space,
		depth:      ev.depth,
	}
}

// parameters validates a "a; b; c" parameter list.
func parameters(tokens []Token) ([]string, *Error) {
	var params []string
	for i, t := range tokens {
		if i%2 == 0 {
			if t.Type != TokenVariable {
				return nil, newError(KindUnexpectedToken)
			}
			if IsReserved(t.Name) {
				return nil, nameError(KindReservedName, t.Name)
			}
			params = append(params, t.Name)
			continue
		}
		if t.Type != TokenNextParam {
			return nil, newError(KindUnexpectedToken)
		}
	}
	if len(tokens) > 0 && len(tokens)%2 == 0 {
		// Dangling separator.
		return nil, newError(KindUnexpectedToken)
	}
	return params, nil
}
