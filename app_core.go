package main

import (
	"context"
)

// FrontendResizedEvent is emitted by the frontend once a window resize settles
const FrontendResizedEvent = "frontend:window:resized"

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.mutex.Lock()
	a.ctx = ctx
	a.closed = false
	a.mutex.Unlock()

	if err := a.loadConfig(); err != nil {
		a.log.Error().Err(err).Msg("Error loading config")
	}

	if err := a.loadSession(); err != nil {
		a.log.Warn().Err(err).Msg("Starting with an empty session")
	}

	// Set initial window size and state using loaded/default config
	a.restoreWindowState()

	a.frontend.EventsOn(ctx, FrontendResizedEvent, a.handleFrontendResizeEvent)
	a.log.Info().Msg("Registered listener for window resize events")

	if err := a.StartConfigWatcher(); err != nil {
		a.log.Warn().Err(err).Msg("External config edits will not be picked up")
	}
}

// shutdown is called during application shutdown
func (a *App) shutdown(ctx context.Context) {
	a.log.Info().Msg("Shutdown initiated")

	a.stopConfigTimer()
	a.stopSessionTimer()

	// Final update of the window state. The window may already be half torn down.
	func() {
		defer func() {
			if r := recover(); r != nil {
				a.log.Warn().Interface("panic", r).Msg("Recovered from panic during window state update")
			}
		}()
		if a.updateWindowState() {
			a.config.mutex.Lock()
			a.config.configDirty = true
			a.config.mutex.Unlock()
		}
	}()

	a.mutex.Lock()
	a.closed = true
	a.mutex.Unlock()

	// Force save any pending changes
	a.saveConfigIfDirty()
	a.saveSessionIfDirty()

	a.StopConfigWatcher()

	a.log.Info().Msg("Shutdown completed")

	// The log plugin is one of the resources, so report on the release logger.
	if err := a.resourceManager.Cleanup(); err != nil {
		log := newReleaseLogger()
		log.Error().Err(err).Msg("Error releasing resources")
	}
}
