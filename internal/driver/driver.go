// Package driver spawns the system C toolchain (gcc) to assemble and
// link a generated Ramsey program against its companion driver file.
// Code generation streams directly into gcc's standard input rather
// than buffering the whole assembly listing in memory: the pipe is
// open and ready before a single instruction has been emitted.
package driver

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rgeorge/ramseyc/internal/errors"
)

// Platform selects the gcc symbol-naming convention the generated
// assembly was written for. POSIX and Windows only differ in how the
// child process and symbol prefix are set up, a difference os/exec
// already abstracts away; the gcc command line itself does not change
// between platforms.
type Platform int

const (
	Posix Platform = iota
	Windows
)

// ResolveFiles scans args for exactly one .ram source file and exactly
// one .c driver file, rejecting any other extension, by walking argv
// and classifying each argument on the rightmost '.' in its name.
func ResolveFiles(args []string) (ramFile, cFile string, err error) {
	for _, arg := range args {
		dot := strings.LastIndexByte(arg, '.')
		if dot < 0 {
			return "", "", errors.IO(nil, "bad argument %q", arg)
		}
		switch arg[dot:] {
		case ".ram":
			if ramFile != "" {
				return "", "", errors.IO(nil, "too many .ram files")
			}
			ramFile = arg
		case ".c":
			if cFile != "" {
				return "", "", errors.IO(nil, "too many .c files")
			}
			cFile = arg
		default:
			return "", "", errors.IO(nil, "unrecognized file argument %q", arg)
		}
	}
	if ramFile == "" {
		return "", "", errors.IO(nil, "no .ram file provided")
	}
	if cFile == "" {
		return "", "", errors.IO(nil, "no .c file provided")
	}
	return ramFile, cFile, nil
}

// outputName derives the executable name from the .ram source file by
// stripping its extension.
func outputName(ramFile string) string {
	return strings.TrimSuffix(ramFile, ".ram")
}

// Driver wraps a running gcc child process whose standard input is
// connected to a pipe that code generation writes assembly into.
type Driver struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Start spawns gcc against ramFile/cFile and returns a Driver whose
// Writer is ready to receive assembly text before code generation has
// produced a single instruction.
func Start(ramFile, cFile string, platform Platform) (*Driver, error) {
	args := []string{
		"-m32", "-O0",
		"-o", outputName(ramFile),
		"-x", "assembler", "-",
		"-x", "c", cFile,
	}

	cmd := exec.Command("gcc", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.IO(err, "cannot create pipe to gcc")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.IO(err, "cannot execute 'gcc'; is it installed in the system PATH?")
	}

	return &Driver{cmd: cmd, stdin: stdin}, nil
}

// Writer returns the stream that generated assembly must be written to.
func (d *Driver) Writer() io.Writer {
	return d.stdin
}

// Wait closes the pipe to gcc (signaling end of assembly input) and
// blocks until the child process exits, mapping a nonzero exit status
// to an IoError.
func (d *Driver) Wait() error {
	if err := d.stdin.Close(); err != nil {
		return errors.IO(err, "failed to close pipe to gcc")
	}
	if err := d.cmd.Wait(); err != nil {
		return errors.IO(err, "gcc exited with an error")
	}
	return nil
}
