package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate expressions and print the results",
		Long: "Evaluate expressions and print the results. Arguments are joined with spaces\n" +
			"and split on newlines, so each line is a separate expression.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			for _, line := range strings.Split(strings.Join(args, " "), "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				out, err := s.eval(line)
				if err != nil {
					return fmt.Errorf("%s: %w", line, err)
				}
				if out != "" {
					fmt.Fprintln(cmd.OutOrStdout(), out)
				}
			}
			return nil
		},
	}
	return cmd
}
