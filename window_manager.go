package main

import (
	"context"
	"errors"
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrWindowUnavailable is returned when the main window cannot be reached, either
// because startup has not run yet or because the app is shutting down.
var ErrWindowUnavailable = errors.New("kalkki window is not available")

// frontendRuntime is the part of the Wails runtime the backend drives. The Wails
// functions exit the process when called with a context that has no frontend attached,
// so everything goes through this interface and tests substitute a fake.
type frontendRuntime interface {
	WindowShow(ctx context.Context)
	WindowSetSize(ctx context.Context, width, height int)
	WindowGetSize(ctx context.Context) (int, int)
	WindowMaximise(ctx context.Context)
	WindowIsMaximised(ctx context.Context) bool
	EventsEmit(ctx context.Context, name string, data ...interface{})
	EventsOn(ctx context.Context, name string, callback func(optionalData ...interface{})) func()
	BrowserOpenURL(ctx context.Context, url string)
}

// wailsFrontend forwards to the real Wails runtime
type wailsFrontend struct{}

func (wailsFrontend) WindowShow(ctx context.Context) { wailsRuntime.WindowShow(ctx) }

func (wailsFrontend) WindowSetSize(ctx context.Context, width, height int) {
	wailsRuntime.WindowSetSize(ctx, width, height)
}

func (wailsFrontend) WindowGetSize(ctx context.Context) (int, int) {
	return wailsRuntime.WindowGetSize(ctx)
}

func (wailsFrontend) WindowMaximise(ctx context.Context) { wailsRuntime.WindowMaximise(ctx) }

func (wailsFrontend) WindowIsMaximised(ctx context.Context) bool {
	return wailsRuntime.WindowIsMaximised(ctx)
}

func (wailsFrontend) EventsEmit(ctx context.Context, name string, data ...interface{}) {
	wailsRuntime.EventsEmit(ctx, name, data...)
}

func (wailsFrontend) EventsOn(ctx context.Context, name string, callback func(optionalData ...interface{})) func() {
	return wailsRuntime.EventsOn(ctx, name, callback)
}

func (wailsFrontend) BrowserOpenURL(ctx context.Context, url string) {
	wailsRuntime.BrowserOpenURL(ctx, url)
}

// windowContext returns the runtime context while the window exists.
func (a *App) windowContext() (context.Context, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	if a.ctx == nil || a.closed {
		return nil, false
	}
	return a.ctx, true
}

// ShowKalkkiWindow makes the main window visible. The window starts hidden and the
// frontend calls this once it has rendered, so users never see an empty webview.
func (a *App) ShowKalkkiWindow() (err error) {
	ctx, ok := a.windowContext()
	if !ok {
		a.log.Warn().Msg("Show window requested without a window")
		return ErrWindowUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("Recovered from panic while showing window")
			err = fmt.Errorf("show kalkki window: %v: %w", r, ErrWindowUnavailable)
		}
	}()

	a.frontend.WindowShow(ctx)
	a.log.Info().Msg("Kalkki window shown")
	return nil
}

// restoreWindowState applies the saved geometry to the window.
func (a *App) restoreWindowState() {
	ctx, ok := a.windowContext()
	if !ok {
		return
	}

	opts := a.GetOptions()
	a.frontend.WindowSetSize(ctx, opts.WindowWidth, opts.WindowHeight)
	a.log.Info().Int("width", opts.WindowWidth).Int("height", opts.WindowHeight).Msg("Initial window size set")

	if opts.WindowMaximized {
		a.frontend.WindowMaximise(ctx)
		a.log.Info().Msg("Window restored to maximized state")
	}
}

// updateWindowState copies the current window geometry into the options and reports
// whether anything changed.
func (a *App) updateWindowState() bool {
	ctx, ok := a.windowContext()
	if !ok {
		return false
	}

	width, height := a.frontend.WindowGetSize(ctx)
	isMaximized := a.frontend.WindowIsMaximised(ctx)

	a.config.mutex.Lock()
	defer a.config.mutex.Unlock()

	opts := a.config.options
	configChanged := false

	// A maximised or minimised window reports sizes that should not replace the
	// restored geometry.
	if !isMaximized && width >= MinWindowWidth && height >= MinWindowHeight &&
		(opts.WindowWidth != width || opts.WindowHeight != height) {
		opts.WindowWidth = width
		opts.WindowHeight = height
		a.log.Info().Int("width", width).Int("height", height).Msg("Window dimensions updated")
		configChanged = true
	}

	if opts.WindowMaximized != isMaximized {
		opts.WindowMaximized = isMaximized
		a.log.Info().Bool("maximized", isMaximized).Msg("Window maximized state updated")
		configChanged = true
	}

	return configChanged
}

// handleFrontendResizeEvent is called when the frontend signals that window resizing has finished.
func (a *App) handleFrontendResizeEvent(optionalData ...interface{}) {
	if a.updateWindowState() {
		a.markConfigDirty()
	}
}
