package cmdutil

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/build"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// Builder runs bundle builds for the merge command. In verbose mode the
// build output streams to the terminal; otherwise it is buffered behind a
// spinner and only printed when the build fails.
type Builder struct {
	Verbose bool

	// Out receives build output; nil means stderr.
	Out io.Writer
}

// Run implements merger.Builder.
func (b *Builder) Run(ctx context.Context, dir, command string) error {
	out := b.Out
	if out == nil {
		out = os.Stderr
	}

	if b.Verbose {
		return build.NewRunner(out, out).Run(ctx, dir, command)
	}

	buf := &lockedBuffer{}
	runner := build.NewRunner(buf, buf)
	err := output.RunWithSpinner(ctx, "Building "+dir, func(ctx context.Context) error {
		return runner.Run(ctx, dir, command)
	})
	if err != nil {
		_, _ = buf.WriteTo(out)
	}
	return err
}

// lockedBuffer lets stdout and stderr of one build share a buffer.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.WriteTo(w)
}
