// Package maincmd implements the command-line driver: it parses flags,
// opens the source and input streams, loads the program, runs it, and maps
// the outcome to a process exit code.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/loader"
	"github.com/xsmahel/ippcode22/lang/machine"
)

const binName = "ippcode22"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [--source=FILE] [--input=FILE]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [--source=FILE] [--input=FILE]
       %[1]s -h|--help

Interpreter for the IPPcode22 assembly language.

Valid flag options are:
       -h --help                 Show this help and exit.
       --source=FILE             Path to the XML program (defaults to
                                 standard input).
       --input=FILE              Path to the program's input stream
                                 (defaults to standard input).

At least one of --source or --input must be supplied.
`, binName)
)

// Cmd is the interpreter's single CLI command.
type Cmd struct {
	Help   bool   `flag:"h,help"`
	Source string `flag:"source"`
	Input  string `flag:"input"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

// Validate enforces the CLI rules that mainer's flag parser alone cannot
// express: --help must stand alone, and at least one of --source/--input
// must be given.
func (c *Cmd) Validate() error {
	if c.flags["h"] || c.flags["help"] {
		if len(c.flags) > 1 || len(c.args) > 0 {
			return errors.New("--help must be the only argument")
		}
		return nil
	}

	if !c.flags["source"] && !c.flags["input"] {
		return errors.New("at least one of --source or --input must be supplied")
	}
	if len(c.args) > 0 {
		return fmt.Errorf("unexpected argument: %s", c.args[0])
	}
	return nil
}

// Main parses flags, then loads and runs the program, returning the exit
// code the process should terminate with.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return BadCLIArgs
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	return c.interpret(ctx, stdio)
}

// openOrStdin opens path for reading, or falls back to stdin when path is
// empty. The returned closer is a no-op for stdin.
func openOrStdin(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "" {
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (c *Cmd) interpret(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	src, closeSrc, err := openOrStdin(c.Source, stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "cannot open source: %s\n", err)
		return InputFileError
	}
	defer closeSrc()

	prog, ierr := loader.Load(src)
	if ierr != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", ierr)
		return exitCodeFor(ierr.Code)
	}

	input, closeInput, err := openOrStdin(c.Input, stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "cannot open input: %s\n", err)
		return InputFileError
	}
	defer closeInput()

	exec := machine.New(prog, machine.Config{
		Stdout: stdio.Stdout,
		Stderr: stdio.Stderr,
		Stdin:  input,
	})

	exitVal, ierr := exec.Run(ctx)
	if ierr != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", ierr)
		return exitCodeFor(ierr.Code)
	}
	return mainer.ExitCode(exitVal)
}
