package main

import (
	"os"

	"github.com/soypat/acgeom/cmd/acgeom/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
