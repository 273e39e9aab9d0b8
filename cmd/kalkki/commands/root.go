package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

const evaluationTimeout = 10 * time.Second

var (
	angle  string
	digits int
	lang   string
)

// session carries ans and user definitions from one expression to the next.
type session struct {
	env  calc.Env
	lang string
}

func newSession() (*session, error) {
	unit, ok := calc.ParseAngleUnit(angle)
	if !ok {
		return nil, fmt.Errorf("invalid angle unit %q, expected %q or %q", angle, calc.Degrees, calc.Radians)
	}
	if digits < 1 || digits > 100 {
		return nil, fmt.Errorf("digits %d is out of range (1-100)", digits)
	}
	if !calc.IsSupportedLanguage(lang) {
		return nil, fmt.Errorf("unsupported language %q, supported: %v", lang, calc.Languages)
	}
	return &session{
		env: calc.Env{
			Ans:       decimal.Zero,
			UserSpace: calc.UserSpace{},
			AngleUnit: unit,
		},
		lang: lang,
	}, nil
}

// eval runs one expression. It returns "" for definitions, which have no value.
func (s *session) eval(expression string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), evaluationTimeout)
	defer cancel()

	res, err := calc.Calculate(ctx, expression, s.env)
	if err != nil {
		var calcErr *calc.Error
		if errors.As(err, &calcErr) {
			return "", errors.New(calcErr.Localize(s.lang))
		}
		return "", err
	}
	if res.UserSpace != nil {
		s.env.UserSpace = res.UserSpace
	}
	if !res.HasValue {
		return "", nil
	}
	s.env.Ans = res.Value
	return calc.Format(res.Value, digits), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kalkki",
		Short:         "Scientific calculator",
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&angle, "angle", string(calc.Degrees), "angle unit for trigonometry (deg or rad)")
	root.PersistentFlags().IntVar(&digits, "digits", 8, "significant digits in results")
	root.PersistentFlags().StringVar(&lang, "lang", "fi", "language of error messages")

	root.AddCommand(evalCmd(), replCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
