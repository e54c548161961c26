package main

import (
	"os"

	"github.com/tickerlens/backend/cmd/tickerlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
