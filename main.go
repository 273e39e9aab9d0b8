package main

import (
	"embed"
	"io/fs"
	"log"

	"github.com/wailsapp/wails/v2"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configurePlatform()

	app := NewApp()

	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		log.Fatalf("error while running kalkki application: %v", err)
	}

	shell, err := bootstrap(app, dist, defaultBuildSettings())
	if err != nil {
		log.Fatalf("error while running kalkki application: %v", err)
	}

	if err := wails.Run(shell.Options); err != nil {
		shell.Close()
		log.Fatalf("error while running kalkki application: %v", err)
	}
}
