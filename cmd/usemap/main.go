// Package main provides the usemap command-line tool.
package main

import (
	"os"

	"github.com/usemap-dev/usemap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
