package cmd

import (
	"fmt"
	"os"

	"github.com/rgeorge/ramseyc/internal/codegen"
	"github.com/rgeorge/ramseyc/internal/driver"
	"github.com/rgeorge/ramseyc/internal/errors"
	"github.com/rgeorge/ramseyc/internal/lexer"
	"github.com/rgeorge/ramseyc/internal/parser"
	"github.com/rgeorge/ramseyc/internal/semantic"
	"github.com/spf13/cobra"
)

var windowsTarget bool

var buildCmd = &cobra.Command{
	Use:   "build <file.ram> <file.c>",
	Short: "Compile a Ramsey program and link it with its C driver",
	Long: `build lexes, parses, type-checks, and generates x86 assembly for a
Ramsey source file, then streams that assembly to gcc alongside a
companion C driver file to produce a native executable named after the
.ram source file.

Example:
  ramseyc build program.ram driver.c`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&windowsTarget, "windows", false,
		"target the Windows/MinGW symbol-naming convention instead of POSIX")
}

func runBuild(_ *cobra.Command, args []string) error {
	ramFile, cFile, err := driver.ResolveFiles(args)
	if err != nil {
		return report(asCompileError(err), "", "")
	}

	src, ioErr := os.ReadFile(ramFile)
	if ioErr != nil {
		return report(errors.IO(ioErr, "cannot read %s", ramFile), "", ramFile)
	}
	source := string(src)

	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		return report(asCompileError(err), source, ramFile)
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return report(asCompileError(err), source, ramFile)
	}

	if err := semantic.Analyze(prog); err != nil {
		return report(asCompileError(err), source, ramFile)
	}

	drvPlatform, genPlatform := driver.Posix, codegen.Posix
	if windowsTarget {
		drvPlatform, genPlatform = driver.Windows, codegen.Windows
	}

	d, err := driver.Start(ramFile, cFile, drvPlatform)
	if err != nil {
		return report(asCompileError(err), "", "")
	}

	if err := codegen.WriteTo(d.Writer(), prog, genPlatform); err != nil {
		return report(asCompileError(err), "", "")
	}

	if err := d.Wait(); err != nil {
		return report(asCompileError(err), "", "")
	}

	return nil
}

// asCompileError recovers the structured diagnostic every pass boundary
// of this compiler is documented to return; any other error shape would
// indicate an internal bug rather than a user-facing failure.
func asCompileError(err error) *errors.CompileError {
	if ce, ok := err.(*errors.CompileError); ok {
		return ce
	}
	return errors.IO(err, "%v", err)
}

// report prints a diagnostic to stderr in the program's own voice and
// returns a sentinel error so cobra exits nonzero without printing its
// own duplicate error line (SilenceErrors is set on the root command).
func report(ce *errors.CompileError, source, file string) error {
	fmt.Fprintf(os.Stderr, "%s: %s", rootCmd.Name(), errors.Format(ce, source, file, true))
	return ce
}
