package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/browser"
)

// ErrInvalidURL is returned for URLs the opener refuses to hand to the system
var ErrInvalidURL = errors.New("invalid url")

// allowedSchemes are the URL schemes OpenURL will pass to the system.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Opener opens links and files with the default system applications. It is bound to
// the frontend next to App.
type Opener struct {
	app *App
	// openFile is browser.OpenFile; tests replace it.
	openFile func(path string) error
}

// NewOpener creates the opener service for app
func NewOpener(app *App) *Opener {
	return &Opener{
		app:      app,
		openFile: browser.OpenFile,
	}
}

// OpenURL opens an http, https or mailto link in the default browser or mail client.
func (o *Opener) OpenURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("%w: scheme %q is not allowed", ErrInvalidURL, u.Scheme)
	}
	if u.Scheme != "mailto" && u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	ctx, ok := o.app.windowContext()
	if !ok {
		return ErrWindowUnavailable
	}
	o.app.frontend.BrowserOpenURL(ctx, u.String())
	o.app.log.Info().Str("url", u.String()).Msg("Opened URL")
	return nil
}

// OpenPath opens an existing file or directory with its default application.
func (o *Opener) OpenPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	if err := o.openFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	o.app.log.Info().Str("path", path).Msg("Opened path")
	return nil
}
