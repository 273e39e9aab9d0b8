package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// Log plugin constants
const (
	LogDirName  = "logs"
	LogFileName = "kalkki.log"
	LogFileMode = 0644
	LogDirMode  = 0750
)

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// newReleaseLogger is used until the log plugin replaces it, and for the whole run in
// release builds.
func newReleaseLogger() zerolog.Logger {
	return newLogger(os.Stderr, zerolog.WarnLevel)
}

// logPlugin is the debug build log sink. Lines go to the console in readable form and
// to a JSON log file.
type logPlugin struct {
	logger zerolog.Logger
	file   *os.File
	path   string
}

// defaultLogDir returns <user cache dir>/kalkki/logs
func defaultLogDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, ConfigDirName, LogDirName), nil
}

// newLogPlugin opens the log file in dir, or in the default log directory when dir is
// empty, and logs at info level.
func newLogPlugin(console io.Writer, dir string) (*logPlugin, error) {
	if dir == "" {
		var err error
		if dir, err = defaultLogDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, LogDirMode); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, LogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	writer := zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: console}, file)
	return &logPlugin{
		logger: newLogger(writer, zerolog.InfoLevel),
		file:   file,
		path:   path,
	}, nil
}

// Close flushes and closes the log file
func (p *logPlugin) Close() error {
	if p.file == nil {
		return nil
	}
	if err := p.file.Sync(); err != nil {
		p.file.Close()
		return err
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// wailsLogger routes framework log messages into zerolog
type wailsLogger struct {
	log zerolog.Logger
}

var _ logger.Logger = wailsLogger{}

func (w wailsLogger) Print(message string)   { w.log.Log().Msg(message) }
func (w wailsLogger) Trace(message string)   { w.log.Trace().Msg(message) }
func (w wailsLogger) Debug(message string)   { w.log.Debug().Msg(message) }
func (w wailsLogger) Info(message string)    { w.log.Info().Msg(message) }
func (w wailsLogger) Warning(message string) { w.log.Warn().Msg(message) }
func (w wailsLogger) Error(message string)   { w.log.Error().Msg(message) }
func (w wailsLogger) Fatal(message string)   { w.log.Fatal().Msg(message) }
