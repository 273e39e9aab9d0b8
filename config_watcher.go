package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher constants
const (
	WatcherDebounce     = 300 * time.Millisecond
	OptionsChangedEvent = "options:changed"
)

// ConfigWatcher follows edits made to the options file outside the app
type ConfigWatcher struct {
	watchDir      string
	stopChan      chan struct{}
	doneChan      chan struct{}
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
}

// StartConfigWatcher starts monitoring the config directory. The directory rather
// than the file is watched because editors usually replace files on save.
func (a *App) StartConfigWatcher() error {
	configDir, err := a.configDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	// Stop existing watcher if running
	if a.watcher != nil {
		a.StopConfigWatcher()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	cw := &ConfigWatcher{
		watchDir: configDir,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	a.watcher = cw

	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.log.Error().Interface("panic", r).Msg("Config watcher panic recovered")
			}
			watcher.Close()
			close(cw.doneChan)
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				a.handleConfigFileEvent(cw, event)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Warn().Err(err).Msg("Config watcher error")

			case <-cw.stopChan:
				return
			}
		}
	}()

	a.log.Info().Str("dir", configDir).Msg("Config file watcher started")
	return nil
}

// StopConfigWatcher stops the watcher and waits for it to exit
func (a *App) StopConfigWatcher() {
	cw := a.watcher
	if cw == nil {
		return
	}

	cw.debounceMutex.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
		cw.debounceTimer = nil
	}
	cw.debounceMutex.Unlock()

	close(cw.stopChan)

	select {
	case <-cw.doneChan:
	case <-time.After(2 * time.Second):
		a.log.Warn().Msg("Config watcher goroutine did not exit in time")
	}

	a.watcher = nil
	a.log.Info().Msg("Config file watcher stopped")
}

// handleConfigFileEvent coalesces bursts of events on the options file into a
// single reload.
func (a *App) handleConfigFileEvent(cw *ConfigWatcher, event fsnotify.Event) {
	if filepath.Base(event.Name) != ConfigFileName {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cw.debounceMutex.Lock()
	defer cw.debounceMutex.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(WatcherDebounce, a.reloadOptionsFromDisk)
}

// reloadOptionsFromDisk applies an externally edited options file and tells the
// frontend. Our own saves and invalid files are ignored.
func (a *App) reloadOptionsFromDisk() {
	configPath, err := a.getConfigPath()
	if err != nil {
		return
	}

	info, err := os.Stat(configPath)
	if err != nil {
		return
	}
	a.config.mutex.RLock()
	ownWrite := info.ModTime().Equal(a.config.lastWrite)
	a.config.mutex.RUnlock()
	if ownWrite {
		return
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read edited config file")
		return
	}
	opts, err := parseOptions(data)
	if err != nil {
		a.log.Warn().Err(err).Msg("Ignoring invalid edit to config file")
		return
	}

	a.applyExternalOptions(opts)
	a.log.Info().Str("path", configPath).Msg("Options reloaded from disk")

	if ctx, ok := a.windowContext(); ok {
		a.frontend.EventsEmit(ctx, OptionsChangedEvent, a.GetOptions())
	}
}
