package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

// Plugin names, in registration order
const (
	PluginOpener = "opener"
	PluginLog    = "log"
)

// buildSettings are decided at compile time, see build_debug.go and build_release.go
type buildSettings struct {
	Debug bool
	// LogDir overrides the log plugin's directory.
	LogDir string
	// Console receives the log plugin's readable output.
	Console io.Writer
}

func defaultBuildSettings() buildSettings {
	return buildSettings{Debug: debugBuild, Console: os.Stdout}
}

// Shell is the configured application, ready for wails.Run
type Shell struct {
	Options *options.App
	Plugins []string

	app *App
}

// Close releases what bootstrap set up. Shutdown does the same, so this is only
// needed when the event loop never started.
func (s *Shell) Close() error {
	return s.app.resourceManager.Cleanup()
}

// bootstrap builds the application options. The opener is always registered, the log
// plugin only in debug builds and before the event loop starts.
func bootstrap(app *App, assets fs.FS, settings buildSettings) (*Shell, error) {
	shell := &Shell{
		Options: createAppOptions(app, assets),
		app:     app,
	}

	shell.Options.Bind = append(shell.Options.Bind, app.opener)
	shell.Plugins = append(shell.Plugins, PluginOpener)

	if settings.Debug {
		console := settings.Console
		if console == nil {
			console = os.Stdout
		}
		plugin, err := newLogPlugin(console, settings.LogDir)
		if err != nil {
			return nil, fmt.Errorf("failed to set up log plugin: %w", err)
		}
		app.resourceManager.Register(plugin)
		app.log = plugin.logger

		shell.Options.Logger = wailsLogger{log: plugin.logger}
		shell.Options.LogLevel = logger.INFO
		shell.Options.LogLevelProduction = logger.INFO
		shell.Plugins = append(shell.Plugins, PluginLog)

		app.log.Info().Str("path", plugin.path).Msg("Log plugin registered")
	}

	return shell, nil
}

// linuxGpuPolicy returns the GPU policy for the current display server. XWayland
// fails to allocate GBM buffers with GPU compositing, so Wayland sessions render in
// software.
func linuxGpuPolicy() linux.WebviewGpuPolicy {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return linux.WebviewGpuPolicyNever
	}
	return linux.WebviewGpuPolicyOnDemand
}

// createAppOptions creates the Wails application options. The window starts hidden
// and is shown by ShowKalkkiWindow.
func createAppOptions(app *App, assets fs.FS) *options.App {
	return &options.App{
		Title:       "Kalkki",
		Width:       DefaultWindowWidth,
		Height:      DefaultWindowHeight,
		MinWidth:    MinWindowWidth,
		MinHeight:   MinWindowHeight,
		StartHidden: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			About: &mac.AboutInfo{
				Title:   "Kalkki",
				Message: "Scientific calculator",
			},
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Linux: &linux.Options{
			ProgramName:      "Kalkki",
			WebviewGpuPolicy: linuxGpuPolicy(),
		},
	}
}
