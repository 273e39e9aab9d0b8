package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReloadOptionsFromDisk(t *testing.T) {
	app, frontend := newTestApp(t, "")
	attachWindow(app)
	if err := app.loadConfig(); err != nil {
		t.Fatal(err)
	}
	path, _ := app.getConfigPath()

	// Our own write is ignored even though memory has moved on.
	app.config.options.ResultAccuracy = 20
	app.reloadOptionsFromDisk()
	if got := app.GetOptions().ResultAccuracy; got != 20 {
		t.Errorf("own write reloaded: ResultAccuracy = %d, want 20", got)
	}

	// Make sure the external edit gets a different modification time.
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(path, []byte("result_accuracy: 5\nwindow_width: 999\n"), 0600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Second)
	os.Chtimes(path, future, future)

	app.reloadOptionsFromDisk()
	opts := app.GetOptions()
	if opts.ResultAccuracy != 5 {
		t.Errorf("ResultAccuracy = %d, want 5", opts.ResultAccuracy)
	}
	if opts.WindowWidth != DefaultWindowWidth {
		t.Errorf("WindowWidth = %d, external edits must not move the window", opts.WindowWidth)
	}
	events := frontend.events()
	if len(events) != 1 || events[0] != OptionsChangedEvent {
		t.Errorf("events = %v, want [%s]", events, OptionsChangedEvent)
	}

	// Invalid edits are ignored.
	if err := os.WriteFile(path, []byte("angle_unit: grad\n"), 0600); err != nil {
		t.Fatal(err)
	}
	later := future.Add(time.Second)
	os.Chtimes(path, later, later)
	app.reloadOptionsFromDisk()
	if got := app.GetOptions().AngleUnit; got != "deg" {
		t.Errorf("invalid edit applied: AngleUnit = %q", got)
	}
}

func TestConfigWatcherPicksUpEdits(t *testing.T) {
	app, frontend := newTestApp(t, "")
	attachWindow(app)
	if err := app.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if err := app.StartConfigWatcher(); err != nil {
		t.Fatalf("StartConfigWatcher returned error: %v", err)
	}
	defer app.StopConfigWatcher()

	time.Sleep(20 * time.Millisecond)
	dir, _ := app.configDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("angle_unit: rad\n"), 0600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if app.GetOptions().AngleUnit == "rad" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if got := app.GetOptions().AngleUnit; got != "rad" {
		t.Fatalf("AngleUnit = %q after external edit, want rad", got)
	}
	if len(frontend.events()) == 0 {
		t.Error("frontend was not told about the new options")
	}
}

func TestStopConfigWatcherWithoutStart(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.StopConfigWatcher()
}
