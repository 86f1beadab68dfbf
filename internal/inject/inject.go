// Package inject patches a compiled page module so that it loads the
// bundle's bootstrap module before anything else runs.
package inject

import (
	"os"
	"regexp"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

// strictMode matches a leading "use strict" directive. Only position zero is
// considered; leading whitespace or comments disable the match.
var strictMode = regexp.MustCompile(`^['"]use strict['"];`)

// Statement returns the load statement for ref.
func Statement(ref string) string {
	return `require("` + ref + `");`
}

// Inject inserts the load statement for ref after a leading strict-mode
// directive, or at the very start of src when there is none.
func Inject(src, ref string) string {
	stmt := Statement(ref)
	if loc := strictMode.FindStringIndex(src); loc != nil {
		return src[:loc[1]] + stmt + src[loc[1]:]
	}
	return stmt + src
}

// File injects the load statement into the module at path, replacing its
// content entirely.
func File(fs billy.Basic, path, ref string) error {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return oerrors.WrapCause(oerrors.ErrFilesystem, "reading "+path, err)
	}

	perm := filePerm(fs, path)
	if err := util.WriteFile(fs, path, []byte(Inject(string(data), ref)), perm); err != nil {
		return oerrors.WrapCause(oerrors.ErrFilesystem, "writing "+path, err)
	}
	return nil
}

func filePerm(fs billy.Basic, path string) os.FileMode {
	if info, err := fs.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
