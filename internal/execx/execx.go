// Package execx runs external tools with discrete argument vectors.
//
// Nothing in this program ever hands a command line to a shell: every
// invocation passes the program name and its arguments as a vector, so
// untrusted strings (package names in particular) can never be interpreted
// as shell syntax.
package execx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one external command per call.
//
// Run inherits the caller's stdio so interactive steps (sudo prompts inside
// makepkg, pacman progress) behave as they would in a terminal. RunQuiet
// discards all output; it is for yes/no probes and chatty steps whose output
// is noise (git clone). Output captures stdout for commands whose output is
// the result.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
	RunQuiet(ctx context.Context, dir string, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// System is the Runner backed by os/exec.
type System struct {
	// Trace, when non-nil, receives one line per executed command (verbose mode).
	Trace io.Writer
}

func (s System) trace(name string, args []string) {
	if s.Trace == nil {
		return
	}
	_, _ = fmt.Fprintf(s.Trace, "[verbose] exec: %s %s\n", name, strings.Join(args, " "))
}

func (s System) Run(ctx context.Context, dir string, name string, args ...string) error {
	s.trace(name, args)
	cmd := command(ctx, dir, name, args)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (s System) RunQuiet(ctx context.Context, dir string, name string, args ...string) error {
	s.trace(name, args)
	cmd := command(ctx, dir, name, args)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

func (s System) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.trace(name, args)
	cmd := command(ctx, "", name, args)
	return cmd.Output()
}

func command(ctx context.Context, dir string, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd
}
