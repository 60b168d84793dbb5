package main

import (
	"os"
)

// main executes the root command, any returned error exits with status 1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
