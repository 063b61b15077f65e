// Command flagctl inspects and serves the easytrade feature flag catalog.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
