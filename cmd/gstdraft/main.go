package main

import (
	"os"

	"github.com/gstdraft-dev/gstdraft/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
