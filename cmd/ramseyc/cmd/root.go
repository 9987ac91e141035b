package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ramseyc",
	Short: "Ramsey language compiler",
	Long: `ramseyc is a batch, ahead-of-time compiler for the Ramsey language:
it lexes, parses, and type-checks a .ram source file, lowers it to
32-bit x86 AT&T assembly, and hands that assembly to the system gcc
toolchain alongside a companion C driver file to produce a native
executable.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
