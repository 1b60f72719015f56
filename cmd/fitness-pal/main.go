package main

import (
	"os"

	"github.com/parisaaghdam/fitness-pal-agent/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
