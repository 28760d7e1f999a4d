package main

import (
	"os"

	"github.com/plotwise/plotwise/cmd/plotwise/commands"
)

// main is the entry point for the Plotwise CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
