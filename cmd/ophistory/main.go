// Package main is the command-line client of the parcel operation-history service.
package main

import (
	"os"

	"operation-history/cmd/ophistory/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
