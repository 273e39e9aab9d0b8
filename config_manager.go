package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// configDir returns the directory holding the options and session files
func (a *App) configDir() (string, error) {
	if a.dataDir != "" {
		return a.dataDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, ConfigDirName), nil
}

// getConfigPath returns the full path to the config file
func (a *App) getConfigPath() (string, error) {
	dir, err := a.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// ensureConfigDir creates the config directory if it doesn't exist
func (a *App) ensureConfigDir() error {
	configDir, err := a.configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, ConfigDirMode); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// loadConfig loads the options from file or creates the file with defaults
func (a *App) loadConfig() error {
	configPath, err := a.getConfigPath()
	if err != nil {
		a.log.Warn().Err(err).Msg("Using default options")
		return nil // Continue with default options
	}

	if err := a.ensureConfigDir(); err != nil {
		a.log.Warn().Err(err).Msg("Using default options")
		return nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		a.log.Info().Str("path", configPath).Msg("Config file not found, creating with default values")
		a.config.mutex.Lock()
		defer a.config.mutex.Unlock()
		return a.saveConfigLocked()
	}
	if err != nil {
		a.log.Warn().Err(err).Str("path", configPath).Msg("Failed to read config file, using default options")
		return nil
	}

	opts, err := parseOptions(data)
	if err != nil {
		a.log.Warn().Err(err).Str("path", configPath).Msg("Invalid config file, using default options")
		opts = DefaultOptions()
	}

	a.config.mutex.Lock()
	a.config.options = opts
	a.config.mutex.Unlock()

	a.log.Info().Str("path", configPath).Msg("Config loaded successfully")
	return nil
}

// parseOptions decodes options on top of the defaults, so keys missing from the file
// keep their default values.
func parseOptions(data []byte) (*Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// saveConfigLocked writes the options to disk. The caller holds a.config.mutex.
func (a *App) saveConfigLocked() error {
	if a.config.options == nil {
		return fmt.Errorf("options are nil, cannot save")
	}

	configPath, err := a.getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := a.ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	data, err := yaml.Marshal(a.config.options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := os.WriteFile(configPath, data, ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	if info, err := os.Stat(configPath); err == nil {
		a.config.lastWrite = info.ModTime()
	}
	return nil
}

// markConfigDirty flags the options as needing a save and resets the debounce timer.
func (a *App) markConfigDirty() {
	a.config.mutex.Lock()
	defer a.config.mutex.Unlock()

	a.config.configDirty = true
	if a.config.debounceTimer != nil {
		a.config.debounceTimer.Stop()
	}

	a.config.debounceTimer = time.AfterFunc(DebounceDelay, func() {
		a.log.Debug().Msg("Debounce timer fired, attempting to save config")
		a.saveConfigIfDirty()
	})
}

// saveConfigIfDirty checks the dirty flag and saves the options if it's set.
func (a *App) saveConfigIfDirty() {
	a.config.mutex.Lock()
	defer a.config.mutex.Unlock()

	if !a.config.configDirty {
		return // Nothing to save
	}

	if err := a.saveConfigLocked(); err != nil {
		a.log.Error().Err(err).Msg("Error saving config")
		// Keep config dirty so it will be retried later
		return
	}

	a.log.Info().Msg("Config saved successfully")
	a.config.configDirty = false
}

// stopConfigTimer cancels a pending debounced save
func (a *App) stopConfigTimer() {
	a.config.mutex.Lock()
	defer a.config.mutex.Unlock()
	if a.config.debounceTimer != nil {
		a.config.debounceTimer.Stop()
		a.config.debounceTimer = nil
	}
}

// GetOptions returns a copy of the current options
func (a *App) GetOptions() Options {
	a.config.mutex.RLock()
	defer a.config.mutex.RUnlock()
	return *a.config.options
}

// SetOptions validates and stores new options. Window geometry is owned by the
// backend and is not taken from the frontend.
func (a *App) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	a.config.mutex.Lock()
	current := a.config.options
	opts.WindowWidth = current.WindowWidth
	opts.WindowHeight = current.WindowHeight
	opts.WindowMaximized = current.WindowMaximized
	changed := opts != *current
	dropSession := current.PreserveSessions && !opts.PreserveSessions
	a.config.options = &opts
	a.config.mutex.Unlock()

	if !changed {
		return nil
	}

	a.log.Info().
		Str("angleUnit", opts.AngleUnit).
		Int("resultAccuracy", opts.ResultAccuracy).
		Str("language", opts.Language).
		Bool("preserveSessions", opts.PreserveSessions).
		Msg("Options updated")
	a.markConfigDirty()

	if dropSession {
		if err := a.removeSessionFile(); err != nil {
			return err
		}
	}
	return nil
}

// applyExternalOptions replaces the options with values edited outside the app,
// keeping the live window geometry.
func (a *App) applyExternalOptions(opts *Options) {
	a.config.mutex.Lock()
	current := a.config.options
	opts.WindowWidth = current.WindowWidth
	opts.WindowHeight = current.WindowHeight
	opts.WindowMaximized = current.WindowMaximized
	dropSession := current.PreserveSessions && !opts.PreserveSessions
	a.config.options = opts
	a.config.mutex.Unlock()

	if dropSession {
		if err := a.removeSessionFile(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to remove session file")
		}
	}
}
