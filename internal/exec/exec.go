// Package exec runs external processes for the build pipeline and is the
// seam through which a hosting runtime supplies its own launcher.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	osexec "os/exec"
)

// ErrCanceled reports that an in-flight process was terminated because
// the enclosing run was cancelled. Callers distinguish it from ordinary
// step failure.
var ErrCanceled = errors.New("run canceled")

// Backend launches a process and blocks until it exits.
//
// A nonzero exit is not a Backend error: it comes back as the exit code.
// Errors are reserved for launch faults (missing binary, bad working
// directory) and cancellation, which is reported as ErrCanceled.
type Backend interface {
	Run(ctx context.Context, argv []string, dir string, env []string, out io.Writer) (int, error)
}

// Local runs processes on the controller's own machine.
type Local struct{}

func (Local) Run(ctx context.Context, argv []string, dir string, env []string, out io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}
	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if ctx.Err() != nil {
		return -1, fmt.Errorf("%s: %w", argv[0], ErrCanceled)
	}
	if err == nil {
		return 0, nil
	}
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("launch %s: %w", argv[0], err)
}
