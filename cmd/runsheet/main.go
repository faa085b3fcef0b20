package main

import (
	"os"

	"github.com/eventer/runsheet-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
