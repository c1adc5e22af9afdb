package main

import (
	"os"

	"github.com/tripallow/tripallow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
