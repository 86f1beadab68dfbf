package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Status is the user-facing status sink: one line per finished step,
// marked as succeeded, failed or skipped. It never affects control flow.
type Status struct {
	mu       sync.Mutex
	w        io.Writer
	failures int
}

// NewStatus returns a Status writing to w; nil means stderr.
func NewStatus(w io.Writer) *Status {
	if w == nil {
		w = os.Stderr
	}
	return &Status{w: w}
}

// Succeed reports a finished step.
func (s *Status) Succeed(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, FormatCheckmark(msg))
	logger.Debug("step succeeded", "msg", msg)
}

// Fail reports a failed step with its cause.
func (s *Status) Fail(msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	line := msg
	if err != nil {
		line = fmt.Sprintf("%s: %v", msg, err)
	}
	fmt.Fprintln(s.w, FormatCross(line))
	logger.Debug("step failed", "msg", msg, "error", err)
}

// Skip reports a step that was not run.
func (s *Status) Skip(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, FormatSkip(msg))
}

// Failures returns the number of failures reported so far.
func (s *Status) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}
