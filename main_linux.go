//go:build linux

package main

import (
	"fmt"
	"os"
)

// configurePlatform runs before GTK initializes. WebKit2GTK misbehaves on non-GNOME
// Wayland compositors, so Wayland sessions fall back to XWayland unless the user chose
// a backend.
func configurePlatform() {
	if os.Getenv("WAYLAND_DISPLAY") != "" && os.Getenv("GDK_BACKEND") == "" {
		os.Setenv("GDK_BACKEND", "x11")
		fmt.Println("Wayland detected: using XWayland (GDK_BACKEND=x11) for WebKit2GTK compatibility")
	}
}
