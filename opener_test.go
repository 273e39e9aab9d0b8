package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenURL(t *testing.T) {
	app, frontend := newTestApp(t, "")
	attachWindow(app)

	valid := []string{
		"https://github.com/kalkki/kalkki-desktop/releases",
		"http://example.com",
		"mailto:feedback@example.com",
	}
	for _, u := range valid {
		if err := app.opener.OpenURL(u); err != nil {
			t.Errorf("OpenURL(%q) returned error: %v", u, err)
		}
	}
	if len(frontend.openedURLs) != len(valid) {
		t.Errorf("opened %v, want %d URLs", frontend.openedURLs, len(valid))
	}

	invalid := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"https://",
		"",
		"://bad",
	}
	for _, u := range invalid {
		if err := app.opener.OpenURL(u); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("OpenURL(%q) = %v, want ErrInvalidURL", u, err)
		}
	}
}

func TestOpenURLWithoutWindow(t *testing.T) {
	app, _ := newTestApp(t, "")
	if err := app.opener.OpenURL("https://example.com"); !errors.Is(err, ErrWindowUnavailable) {
		t.Errorf("OpenURL before startup = %v, want ErrWindowUnavailable", err)
	}
}

func TestOpenPath(t *testing.T) {
	app, _ := newTestApp(t, "")
	var opened []string
	app.opener.openFile = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	existing := filepath.Join(t.TempDir(), "history.txt")
	if err := os.WriteFile(existing, []byte("1 + 1 = 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := app.opener.OpenPath(existing); err != nil {
		t.Fatalf("OpenPath(existing) returned error: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.txt")
	if err := app.opener.OpenPath(missing); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenPath(missing) = %v, want ErrNotExist", err)
	}

	if len(opened) != 1 || opened[0] != existing {
		t.Errorf("opened %v, want only %s", opened, existing)
	}
}
