package main

import "testing"

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"fi_FI.UTF-8", "fi"},
		{"en_US.UTF-8", "en"},
		{"en_GB", "en"},
		{"sv_SE.UTF-8", "sv"},
		{"de_DE@euro", "de"},
		{"nl_BE.UTF-8", "nl"},
		{"C", FallbackLanguage},
		{"POSIX", FallbackLanguage},
		{"C.UTF-8", FallbackLanguage},
		{"ja_JP.UTF-8", FallbackLanguage},
		{"not a locale!", FallbackLanguage},
	}

	for _, tt := range tests {
		if got := matchLanguage(tt.locale); got != tt.want {
			t.Errorf("matchLanguage(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "sv_SE.UTF-8")
	t.Setenv("LANG", "de_DE.UTF-8")
	if got := detectLanguage(); got != "sv" {
		t.Errorf("detectLanguage() = %q, want %q", got, "sv")
	}

	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	if got := detectLanguage(); got != FallbackLanguage {
		t.Errorf("detectLanguage() without locale = %q, want %q", got, FallbackLanguage)
	}
}
