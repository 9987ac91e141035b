// Command ramseyc compiles Ramsey source files to native executables.
package main

import (
	"os"

	"github.com/rgeorge/ramseyc/cmd/ramseyc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
