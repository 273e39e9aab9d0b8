package main

import (
	"os"

	"github.com/kalkki/kalkki-desktop/cmd/kalkki/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
