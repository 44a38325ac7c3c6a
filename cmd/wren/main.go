package main

import (
	"os"

	"github.com/wrenframe/wren/internal/commands"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
