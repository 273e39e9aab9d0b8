package main

import (
	"fmt"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

const (
	DefaultWindowWidth    = 480
	DefaultWindowHeight   = 720
	DefaultAngleUnit      = string(calc.Degrees)
	DefaultResultAccuracy = 8
	DefaultTheme          = ThemeDefault
	FallbackLanguage      = "fi"

	MinWindowWidth    = 320
	MinWindowHeight   = 400
	MaxWindowWidth    = 10000 // Arbitrary large value for upper bound
	MaxWindowHeight   = 10000 // Arbitrary large value for upper bound
	MinResultAccuracy = 1
	MaxResultAccuracy = 100
)

// Theme names understood by the frontend stylesheet.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
	ThemeLight   = "light"
)

// AllowedThemes lists the valid theme names.
var AllowedThemes = []string{ThemeDefault, ThemeDark, ThemeLight}

// Options holds the user facing settings and the saved window geometry
type Options struct {
	WindowWidth      int    `yaml:"window_width" json:"windowWidth"`
	WindowHeight     int    `yaml:"window_height" json:"windowHeight"`
	WindowMaximized  bool   `yaml:"window_maximized" json:"windowMaximized"`
	AngleUnit        string `yaml:"angle_unit" json:"angleUnit"`
	ResultAccuracy   int    `yaml:"result_accuracy" json:"resultAccuracy"` // Significant digits shown for answers
	Language         string `yaml:"language" json:"language"`
	PreserveSessions bool   `yaml:"preserve_sessions" json:"preserveSessions"` // Keep history and variables across restarts
	FullScreen       bool   `yaml:"full_screen" json:"fullScreen"`
	Theme            string `yaml:"theme" json:"theme"`
}

// DefaultOptions returns a new Options with default values
func DefaultOptions() *Options {
	return &Options{
		WindowWidth:      DefaultWindowWidth,
		WindowHeight:     DefaultWindowHeight,
		WindowMaximized:  false,
		AngleUnit:        DefaultAngleUnit,
		ResultAccuracy:   DefaultResultAccuracy,
		Language:         detectLanguage(),
		PreserveSessions: true,
		FullScreen:       true,
		Theme:            DefaultTheme,
	}
}

// Validate checks the options for basic validity.
func (o *Options) Validate() error {
	if o.WindowWidth < MinWindowWidth || o.WindowWidth > MaxWindowWidth {
		return fmt.Errorf("window width %d is out of range (%d-%d)", o.WindowWidth, MinWindowWidth, MaxWindowWidth)
	}
	if o.WindowHeight < MinWindowHeight || o.WindowHeight > MaxWindowHeight {
		return fmt.Errorf("window height %d is out of range (%d-%d)", o.WindowHeight, MinWindowHeight, MaxWindowHeight)
	}
	if _, ok := calc.ParseAngleUnit(o.AngleUnit); !ok {
		return fmt.Errorf("invalid angle unit '%s', expected '%s' or '%s'", o.AngleUnit, calc.Degrees, calc.Radians)
	}
	if o.ResultAccuracy < MinResultAccuracy || o.ResultAccuracy > MaxResultAccuracy {
		return fmt.Errorf("result accuracy %d is out of range (%d-%d)", o.ResultAccuracy, MinResultAccuracy, MaxResultAccuracy)
	}
	if !calc.IsSupportedLanguage(o.Language) {
		return fmt.Errorf("unsupported language '%s'. Supported languages are: %v", o.Language, calc.Languages)
	}

	validTheme := false
	for _, t := range AllowedThemes {
		if o.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme specified: '%s'. Allowed themes are: %v", o.Theme, AllowedThemes)
	}

	return nil
}

// angleUnit returns the parsed angle unit, defaulting to degrees.
func (o *Options) angleUnit() calc.AngleUnit {
	if u, ok := calc.ParseAngleUnit(o.AngleUnit); ok {
		return u
	}
	return calc.Degrees
}
