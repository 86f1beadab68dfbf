// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "mpmerge-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteBundle writes files, keyed by slash path relative to root, onto fs.
// Files are written in sorted order so failures are reproducible.
func WriteBundle(t *testing.T, fs billy.Filesystem, root string, files map[string]string) {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create parent dirs for %s: %v", path, err)
		}
		if err := util.WriteFile(fs, path, []byte(files[name]), 0o644); err != nil {
			t.Fatalf("failed to write file %s: %v", path, err)
		}
	}
}

// ReadFile returns the content of path on fs, failing the test on error.
func ReadFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists on fs.
func Exists(fs billy.Filesystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// Report is one line received by a Reporter.
type Report struct {
	Kind string // "succeed", "fail" or "skip"
	Msg  string
	Err  error
}

// Reporter records status lines instead of printing them.
type Reporter struct {
	Reports []Report
}

func (r *Reporter) Succeed(msg string) {
	r.Reports = append(r.Reports, Report{Kind: "succeed", Msg: msg})
}

func (r *Reporter) Fail(msg string, err error) {
	r.Reports = append(r.Reports, Report{Kind: "fail", Msg: msg, Err: err})
}

func (r *Reporter) Skip(msg string) {
	r.Reports = append(r.Reports, Report{Kind: "skip", Msg: msg})
}

// Messages returns the messages of the given kind, in order.
func (r *Reporter) Messages(kind string) []string {
	var out []string
	for _, rep := range r.Reports {
		if rep.Kind == kind {
			out = append(out, rep.Msg)
		}
	}
	return out
}
