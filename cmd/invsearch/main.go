// Package main provides the entry point for the invsearch CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/invsearch/cmd/invsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
