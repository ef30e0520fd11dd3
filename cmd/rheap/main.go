// ABOUTME: Entry point for the rheap CLI binary

package main

import (
	"os"

	"github.com/prateek/rheap/cmd/rheap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
