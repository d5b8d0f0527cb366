// Package main is the entry point for the smoke CLI.
package main

import (
	"os"

	"github.com/mlkit/smoke/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
