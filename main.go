package main

import (
	"embed"
	"os"

	"github.com/amethyst-mc/amethyst/cmd"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

//go:embed configs
var files embed.FS

func main() {
	if err := cmd.Execute(files, version); err != nil {
		os.Exit(1)
	}
}
