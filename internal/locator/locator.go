// Package locator finds the nearest ancestor module of a page inside a
// compiled bundle and computes the relative reference used to load it.
package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

// Result is the outcome of an upward search.
type Result struct {
	// Found reports whether the target file was found within the boundary.
	Found bool

	// Path is the location of the found file, in the same form as the start file.
	Path string

	// RelativePath is the load reference from the start file's directory.
	// Always begins with "./" or "../" and uses forward slashes.
	RelativePath string

	// Steps is the number of directories inspected.
	Steps int
}

// Locate searches upward from the directory containing startFile for a file
// named targetName, inspecting boundary itself but never anything above it.
//
// startFile and boundary must be expressed in the same form (both absolute or
// both relative to the same base). A start directory outside boundary is a
// miss. A miss is reported as Found=false with a nil error; only unexpected
// stat failures return an error.
func Locate(fs billy.Basic, startFile, targetName, boundary string) (Result, error) {
	startDir := filepath.Dir(filepath.Clean(startFile))
	boundary = filepath.Clean(boundary)

	depth, ok := depthBelow(boundary, startDir)
	if !ok {
		return Result{}, nil
	}

	var res Result
	dir := startDir
	// One inspection per directory from startDir up to and including boundary.
	for step := 0; step <= depth; step++ {
		res.Steps++

		candidate := filepath.Join(dir, targetName)
		info, err := fs.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			ref, err := Reference(startDir, candidate)
			if err != nil {
				return res, err
			}
			res.Found = true
			res.Path = candidate
			res.RelativePath = ref
			return res, nil
		case err != nil && !os.IsNotExist(err):
			return res, oerrors.WrapCause(oerrors.ErrFilesystem, "checking "+candidate, err)
		}

		if dir == boundary {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return res, nil
}

// Reference returns the relative load reference from fromDir to target.
// The result always carries an explicit "./" or "../" prefix. Both paths
// must have the same form; mixing an absolute and a relative path is an
// error.
func Reference(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", fmt.Errorf("referencing %s from %s: %w", target, fromDir, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return rel, nil
	}
	return "./" + rel, nil
}

// depthBelow returns how many path segments dir lies below boundary.
// ok is false when dir is not boundary or one of its descendants.
func depthBelow(boundary, dir string) (int, bool) {
	rel, err := filepath.Rel(boundary, dir)
	if err != nil {
		return 0, false
	}
	if rel == "." {
		return 0, true
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return 0, false
	}
	return len(strings.Split(rel, "/")), true
}
