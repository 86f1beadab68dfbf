// Package build runs a bundle's external build command in its project
// directory using an embedded POSIX shell interpreter.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

// DefaultCommand is the build command used when none is configured.
const DefaultCommand = "npm run build"

// Error is returned when a build command exits with a non-zero status.
type Error struct {
	Dir     string
	Command string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("build %q in %s exited with status %d", e.Command, e.Dir, e.Code)
}

// Unwrap lets errors.Is match ErrBuild.
func (e *Error) Unwrap() error {
	return oerrors.ErrBuild
}

// Runner executes build commands.
type Runner struct {
	// Stdout and Stderr receive the command output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Env is the command environment; nil inherits the current process's.
	Env []string
}

// NewRunner returns a Runner writing to the given streams.
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr}
}

// Run executes command in dir. An empty command is a no-op.
func (r *Runner) Run(ctx context.Context, dir, command string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "build")
	if err != nil {
		return fmt.Errorf("parsing build command %q: %w", command, err)
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, writerOrDiscard(r.Stdout), writerOrDiscard(r.Stderr)),
	)
	if err != nil {
		return fmt.Errorf("creating interpreter for %s: %w", dir, err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &Error{Dir: dir, Command: command, Code: int(status)}
		}
		return oerrors.WrapCause(oerrors.ErrBuild, fmt.Sprintf("running %q in %s", command, dir), err)
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
