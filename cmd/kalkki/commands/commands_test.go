package commands

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"arithmetic", []string{"eval", "1+2*3"}, "7\n"},
		{"joined arguments", []string{"eval", "2", "*", "(3+4)"}, "14\n"},
		{"degrees by default", []string{"eval", "sin(30)"}, "0.5\n"},
		{"radians", []string{"--angle", "rad", "eval", "sin(pi)"}, "0\n"},
		{"digits", []string{"--digits", "3", "eval", "2pi"}, "6.28\n"},
		{"definitions carry over", []string{"eval", "x = 5\nx*2\nans+1"}, "5\n10\n11\n"},
		{"functions carry over", []string{"eval", "f(a) = a^2\nf(3)"}, "9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("Execute(%v) returned error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("Execute(%v) printed %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"syntax error", []string{"eval", "1+"}},
		{"bad angle unit", []string{"--angle", "grad", "eval", "1"}},
		{"bad digits", []string{"--digits", "0", "eval", "1"}},
		{"bad language", []string{"--lang", "xx", "eval", "1"}},
		{"no expression", []string{"eval"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, "", tt.args...); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestRepl(t *testing.T) {
	out, errOut, err := run(t, "1+1\n\n1+\nans*10\nquit\n2+2\n", "repl")
	if err != nil {
		t.Fatalf("repl returned error: %v", err)
	}
	if out != "2\n20\n" {
		t.Errorf("repl printed %q, want %q", out, "2\n20\n")
	}
	if !strings.HasPrefix(errOut, "error: ") {
		t.Errorf("repl error output = %q, want an error line", errOut)
	}
}
