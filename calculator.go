package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

// ErrEmptyExpression is returned when Calculate is called with blank input
var ErrEmptyExpression = errors.New("expression is empty")

// CalculationResult is returned to the frontend for every calculation. Failed
// calculations carry the localized error and are not added to the history.
type CalculationResult struct {
	HistoryEntry
	Ok        bool           `json:"ok"`
	Error     string         `json:"error,omitempty"`
	ErrorKind calc.ErrorKind `json:"errorKind,omitempty"`
}

// Preview is the live result shown under the input while typing
type Preview struct {
	Value       string         `json:"value,omitempty"`
	Error       string         `json:"error,omitempty"`
	ErrorKind   calc.ErrorKind `json:"errorKind,omitempty"`
	Usage       string         `json:"usage,omitempty"`
	Description string         `json:"description,omitempty"`
}

// sourceExpression converts LaTeX input from the math field to calculator syntax.
func sourceExpression(input string) (string, bool) {
	if strings.Contains(input, `\`) {
		return calc.LatexToExpression(input), true
	}
	return input, false
}

// evaluationEnv returns the state a new calculation is evaluated against.
func (a *App) evaluationEnv() calc.Env {
	opts := a.GetOptions()
	a.session.mutex.RLock()
	defer a.session.mutex.RUnlock()
	return calc.Env{
		Ans:       a.session.answer,
		UserSpace: a.session.userSpace,
		AngleUnit: opts.angleUnit(),
	}
}

// localizeError renders an evaluation error in the configured language.
func (a *App) localizeError(err error) (string, calc.ErrorKind) {
	var calcErr *calc.Error
	if errors.As(err, &calcErr) {
		return calcErr.Localize(a.GetOptions().Language), calcErr.Kind
	}
	return err.Error(), ""
}

// Calculate evaluates an expression against the session and records it in the
// history when it succeeds.
func (a *App) Calculate(expression string) (*CalculationResult, error) {
	input := strings.TrimSpace(expression)
	if input == "" {
		return nil, ErrEmptyExpression
	}
	source, latex := sourceExpression(input)

	a.session.evalMutex.Lock()
	defer a.session.evalMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), EvaluationTimeout)
	defer cancel()

	started := time.Now()
	res, err := calc.Calculate(ctx, source, a.evaluationEnv())
	if err != nil {
		msg, kind := a.localizeError(err)
		a.log.Debug().Str("expression", source).Str("kind", string(kind)).Msg("Calculation failed")
		return &CalculationResult{
			HistoryEntry: HistoryEntry{
				Input:      input,
				Expression: calc.Prettify(source),
				Latex:      latex,
				Timestamp:  started,
			},
			Error:     msg,
			ErrorKind: kind,
		}, nil
	}

	entry := HistoryEntry{
		ID:         uuid.NewString(),
		Input:      input,
		Expression: calc.Prettify(source),
		Latex:      latex,
		Timestamp:  started,
	}

	accuracy := a.GetOptions().ResultAccuracy
	a.session.mutex.Lock()
	if res.HasValue {
		a.session.answer = res.Value
		entry.Answer = res.Value.String()
		entry.Display = calc.Display(res.Value, accuracy)
	}
	if res.UserSpace != nil {
		a.session.userSpace = res.UserSpace
	}
	a.session.mutex.Unlock()

	a.session.history.Add(entry)
	a.session.inputs.Add(input)
	a.markSessionDirty()

	a.log.Debug().
		Str("expression", source).
		Str("answer", entry.Answer).
		Dur("elapsed", time.Since(started)).
		Msg("Calculation done")

	return &CalculationResult{HistoryEntry: entry, Ok: true}, nil
}

// Preview evaluates the input without touching the session. While the input ends in
// an open function call the function's help is returned instead.
func (a *App) Preview(expression string) Preview {
	input := strings.TrimSpace(expression)
	if input == "" {
		return Preview{}
	}

	lang := a.GetOptions().Language
	if name := calc.OpenFunction(input); name != "" {
		if doc, ok := calc.Documentation(name, lang); ok {
			return Preview{Usage: doc.Usage, Description: doc.Description}
		}
	}

	source, _ := sourceExpression(input)
	ctx, cancel := context.WithTimeout(context.Background(), EvaluationTimeout)
	defer cancel()

	res, err := calc.Calculate(ctx, source, a.evaluationEnv())
	if err != nil {
		msg, kind := a.localizeError(err)
		return Preview{Error: msg, ErrorKind: kind}
	}
	if !res.HasValue {
		return Preview{}
	}
	return Preview{Value: calc.Display(res.Value, a.GetOptions().ResultAccuracy)}
}

// Prettify returns the display form of an expression
func (a *App) Prettify(expression string) string {
	return calc.Prettify(expression)
}

// LatexToExpression converts math field LaTeX to calculator syntax
func (a *App) LatexToExpression(latex string) string {
	return calc.LatexToExpression(latex)
}
