package main

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

// localeVariables are consulted in POSIX precedence order.
var localeVariables = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

var languageMatcher = newLanguageMatcher()

func newLanguageMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(calc.Languages))
	for _, lang := range calc.Languages {
		tags = append(tags, language.Make(lang))
	}
	return language.NewMatcher(tags)
}

// detectLanguage picks the UI language from the process locale.
func detectLanguage() string {
	for _, name := range localeVariables {
		if value := os.Getenv(name); value != "" {
			return matchLanguage(value)
		}
	}
	return FallbackLanguage
}

// matchLanguage maps a POSIX locale such as fi_FI.UTF-8 to a supported language.
func matchLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return FallbackLanguage
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return FallbackLanguage
	}
	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return FallbackLanguage
	}
	return calc.Languages[index]
}
