package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

// SessionClearedEvent tells the frontend that history and variables were dropped.
const SessionClearedEvent = "session:cleared"

// HistoryEntry is one successful calculation
type HistoryEntry struct {
	ID string `yaml:"id" json:"id"`
	// Input is the text as typed, used to recall the calculation.
	Input string `yaml:"input" json:"input"`
	// Expression is the prettified input shown in the history list.
	Expression string `yaml:"expression" json:"expression"`
	// Answer keeps every digit; Display is rounded to the configured accuracy.
	Answer    string    `yaml:"answer,omitempty" json:"answer,omitempty"`
	Display   string    `yaml:"display,omitempty" json:"display,omitempty"`
	Latex     bool      `yaml:"latex,omitempty" json:"latex,omitempty"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
}

// SessionState is the on-disk form of a session
type SessionState struct {
	Answer    string                       `yaml:"answer"`
	Inputs    []string                     `yaml:"inputs"`
	History   []HistoryEntry               `yaml:"history"`
	UserSpace map[string]calc.StoredObject `yaml:"user_space"`
}

// SessionSnapshot is what the frontend needs to rebuild its views
type SessionSnapshot struct {
	Answer    string                       `json:"answer"`
	Inputs    []string                     `json:"inputs"`
	History   []HistoryEntry               `json:"history"`
	UserSpace map[string]calc.StoredObject `json:"userSpace"`
}

func newSessionManager() *SessionManager {
	return &SessionManager{
		answer:    decimal.Zero,
		userSpace: calc.UserSpace{},
		history:   NewBoundedSlice[HistoryEntry](MaxHistoryEntries),
		inputs:    NewBoundedSlice[string](MaxInputHistory),
	}
}

// getSessionPath returns the full path to the session file
func (a *App) getSessionPath() (string, error) {
	dir, err := a.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SessionFileName), nil
}

// loadSession restores the previous session when sessions are preserved. A corrupt
// file is removed so the next save starts clean.
func (a *App) loadSession() error {
	sessionPath, err := a.getSessionPath()
	if err != nil {
		return err
	}

	if !a.GetOptions().PreserveSessions {
		return a.removeSessionFile()
	}

	data, err := os.ReadFile(sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file %s: %w", sessionPath, err)
	}

	state, answer, space, err := parseSession(data)
	if err != nil {
		a.log.Warn().Err(err).Str("path", sessionPath).Msg("Discarding corrupt session file")
		return a.removeSessionFile()
	}

	a.session.mutex.Lock()
	a.session.answer = answer
	a.session.userSpace = space
	a.session.mutex.Unlock()
	a.session.history.Replace(state.History)
	a.session.inputs.Replace(state.Inputs)

	a.log.Info().
		Str("path", sessionPath).
		Int("history", len(state.History)).
		Int("userObjects", len(space)).
		Msg("Session restored")
	return nil
}

func parseSession(data []byte) (*SessionState, decimal.Decimal, calc.UserSpace, error) {
	var state SessionState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, decimal.Zero, nil, fmt.Errorf("failed to parse session: %w", err)
	}

	answer := decimal.Zero
	if state.Answer != "" {
		var err error
		if answer, err = decimal.NewFromString(state.Answer); err != nil {
			return nil, decimal.Zero, nil, fmt.Errorf("invalid answer %q: %w", state.Answer, err)
		}
	}

	space, err := calc.ImportUserSpace(state.UserSpace)
	if err != nil {
		return nil, decimal.Zero, nil, err
	}
	return &state, answer, space, nil
}

// snapshotLocked builds the current state. The caller holds a.session.mutex.
func (a *App) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		Answer:    a.session.answer.String(),
		Inputs:    a.session.inputs.Get(),
		History:   a.session.history.Get(),
		UserSpace: a.session.userSpace.Export(),
	}
}

// saveSessionLocked writes the session to disk. The caller holds a.session.mutex.
func (a *App) saveSessionLocked() error {
	sessionPath, err := a.getSessionPath()
	if err != nil {
		return fmt.Errorf("failed to get session path: %w", err)
	}
	if err := a.ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	snap := a.snapshotLocked()
	data, err := yaml.Marshal(&SessionState{
		Answer:    snap.Answer,
		Inputs:    snap.Inputs,
		History:   snap.History,
		UserSpace: snap.UserSpace,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sessionPath, data, ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", sessionPath, err)
	}
	return nil
}

// markSessionDirty schedules a debounced save when sessions are preserved.
func (a *App) markSessionDirty() {
	if !a.GetOptions().PreserveSessions {
		return
	}

	a.session.mutex.Lock()
	defer a.session.mutex.Unlock()

	a.session.sessionDirty = true
	if a.session.debounceTimer != nil {
		a.session.debounceTimer.Stop()
	}
	a.session.debounceTimer = time.AfterFunc(DebounceDelay, a.saveSessionIfDirty)
}

// saveSessionIfDirty saves the session if it changed since the last save.
func (a *App) saveSessionIfDirty() {
	if !a.GetOptions().PreserveSessions {
		return
	}

	a.session.mutex.Lock()
	defer a.session.mutex.Unlock()

	if !a.session.sessionDirty {
		return
	}
	if err := a.saveSessionLocked(); err != nil {
		a.log.Error().Err(err).Msg("Error saving session")
		return
	}
	a.session.sessionDirty = false
	a.log.Debug().Msg("Session saved")
}

// stopSessionTimer cancels a pending debounced save
func (a *App) stopSessionTimer() {
	a.session.mutex.Lock()
	defer a.session.mutex.Unlock()
	if a.session.debounceTimer != nil {
		a.session.debounceTimer.Stop()
		a.session.debounceTimer = nil
	}
}

// removeSessionFile deletes the session file; a missing file is not an error.
func (a *App) removeSessionFile() error {
	sessionPath, err := a.getSessionPath()
	if err != nil {
		return err
	}

	a.session.mutex.Lock()
	a.session.sessionDirty = false
	if a.session.debounceTimer != nil {
		a.session.debounceTimer.Stop()
		a.session.debounceTimer = nil
	}
	a.session.mutex.Unlock()

	if err := os.Remove(sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", sessionPath, err)
	}
	return nil
}

// GetSession returns the answer, input history, calculation history and user
// defined objects.
func (a *App) GetSession() SessionSnapshot {
	a.session.mutex.RLock()
	defer a.session.mutex.RUnlock()
	return a.snapshotLocked()
}

// ClearSession forgets history, variables, functions and the last answer.
func (a *App) ClearSession() error {
	a.session.evalMutex.Lock()
	defer a.session.evalMutex.Unlock()

	a.session.mutex.Lock()
	a.session.answer = decimal.Zero
	a.session.userSpace = calc.UserSpace{}
	a.session.mutex.Unlock()
	a.session.history.Clear()
	a.session.inputs.Clear()

	if err := a.removeSessionFile(); err != nil {
		return err
	}

	a.log.Info().Msg("Session cleared")
	if ctx, ok := a.windowContext(); ok {
		a.frontend.EventsEmit(ctx, SessionClearedEvent)
	}
	return nil
}

// ResetAll deletes the options and session files and returns to a fresh install.
func (a *App) ResetAll() error {
	if err := a.ClearSession(); err != nil {
		return err
	}

	a.stopConfigTimer()
	configPath, err := a.getConfigPath()
	if err != nil {
		return err
	}

	a.config.mutex.Lock()
	current := a.config.options
	opts := DefaultOptions()
	opts.WindowWidth = current.WindowWidth
	opts.WindowHeight = current.WindowHeight
	opts.WindowMaximized = current.WindowMaximized
	a.config.options = opts
	a.config.configDirty = false
	removeErr := os.Remove(configPath)
	a.config.mutex.Unlock()

	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("failed to remove config file %s: %w", configPath, removeErr)
	}

	a.log.Info().Msg("Options and session reset to defaults")
	if ctx, ok := a.windowContext(); ok {
		a.frontend.EventsEmit(ctx, OptionsChangedEvent, a.GetOptions())
	}
	return nil
}
