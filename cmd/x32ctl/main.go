package main

import (
	"os"

	"github.com/x32kit/x32kit/cmd/x32ctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
