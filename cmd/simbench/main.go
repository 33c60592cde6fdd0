package main

import (
	"os"

	"github.com/meshfoundry/wsn-simbench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
