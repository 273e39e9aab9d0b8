package main

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeFrontend stands in for the Wails runtime, which exits the process when it is
// called without a real window.
type fakeFrontend struct {
	mu          sync.Mutex
	shown       bool
	width       int
	height      int
	maximised   bool
	panicOnShow bool
	emitted     []string
	listeners   map[string]func(...interface{})
	openedURLs  []string
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{listeners: make(map[string]func(...interface{}))}
}

func (f *fakeFrontend) WindowShow(ctx context.Context) {
	if f.panicOnShow {
		panic("window destroyed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = true
}

func (f *fakeFrontend) WindowSetSize(ctx context.Context, width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

func (f *fakeFrontend) WindowGetSize(ctx context.Context) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeFrontend) WindowMaximise(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maximised = true
}

func (f *fakeFrontend) WindowIsMaximised(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maximised
}

func (f *fakeFrontend) EventsEmit(ctx context.Context, name string, data ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, name)
}

func (f *fakeFrontend) EventsOn(ctx context.Context, name string, callback func(optionalData ...interface{})) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners[name] = callback
	return func() {}
}

func (f *fakeFrontend) BrowserOpenURL(ctx context.Context, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openedURLs = append(f.openedURLs, url)
}

func (f *fakeFrontend) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.emitted...)
}

// newTestApp returns an app that keeps its files in a temporary directory and talks
// to a fake frontend. The window does not exist until the test attaches a context.
func newTestApp(t *testing.T, dir string) (*App, *fakeFrontend) {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	t.Setenv("LC_ALL", "en_US.UTF-8")

	frontend := newFakeFrontend()
	app := NewApp()
	app.frontend = frontend
	app.log = zerolog.Nop()
	app.dataDir = dir
	app.config.options = DefaultOptions()

	// Runs before the temporary directory is removed.
	t.Cleanup(func() {
		app.StopConfigWatcher()
		app.stopConfigTimer()
		app.stopSessionTimer()
	})
	return app, frontend
}

// attachWindow simulates Wails handing the app a live window.
func attachWindow(app *App) {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	app.ctx = context.Background()
	app.closed = false
}

func TestNewApp(t *testing.T) {
	app := NewApp()
	if app == nil {
		t.Fatal("NewApp() returned nil")
	}
	if app.config.options == nil {
		t.Fatal("NewApp() did not initialize options")
	}
	if app.session.history == nil || app.session.inputs == nil {
		t.Fatal("NewApp() did not initialize session history")
	}
	if app.opener == nil {
		t.Fatal("NewApp() did not create the opener")
	}
}

func TestStartupAndShutdown(t *testing.T) {
	dir := t.TempDir()
	app, frontend := newTestApp(t, dir)

	app.startup(context.Background())

	if frontend.width != DefaultWindowWidth || frontend.height != DefaultWindowHeight {
		t.Errorf("startup set size %dx%d, want %dx%d", frontend.width, frontend.height, DefaultWindowWidth, DefaultWindowHeight)
	}
	if _, ok := frontend.listeners[FrontendResizedEvent]; !ok {
		t.Errorf("startup did not listen for %s", FrontendResizedEvent)
	}
	if app.watcher == nil {
		t.Error("startup did not start the config watcher")
	}
	if err := app.ShowKalkkiWindow(); err != nil {
		t.Fatalf("ShowKalkkiWindow() after startup returned %v", err)
	}

	if _, err := app.Calculate("6*7"); err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	frontend.WindowSetSize(context.Background(), 600, 800)

	app.shutdown(context.Background())

	if app.watcher != nil {
		t.Error("shutdown did not stop the config watcher")
	}
	if err := app.ShowKalkkiWindow(); err == nil {
		t.Error("ShowKalkkiWindow() after shutdown succeeded, want error")
	}

	restarted, _ := newTestApp(t, dir)
	if err := restarted.loadConfig(); err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	opts := restarted.GetOptions()
	if opts.WindowWidth != 600 || opts.WindowHeight != 800 {
		t.Errorf("restored size %dx%d, want 600x800", opts.WindowWidth, opts.WindowHeight)
	}
	if err := restarted.loadSession(); err != nil {
		t.Fatalf("loadSession returned error: %v", err)
	}
	if got := restarted.GetSession().Answer; got != "42" {
		t.Errorf("restored answer = %q, want %q", got, "42")
	}
}
