package main

import (
	"os"

	"github.com/numerics/economize/cmd/economize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
