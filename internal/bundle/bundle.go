// Package bundle provides file operations on a compiled mini-program bundle:
// its manifest, page modules, and the directory tree itself.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
)

const (
	// ManifestFile is the bundle's application manifest.
	ManifestFile = "app.json"

	// BootstrapFile is the bundle's top-level initialization module.
	BootstrapFile = "app.js"

	// PageExt is appended to a manifest page path to get its module file.
	PageExt = ".js"
)

// StripFiles are removed from a bundle before it becomes a subpackage;
// a subpackage carries neither its own manifest nor global styles.
var StripFiles = []string{"app.wxss", ManifestFile}

// Bundle is a compiled bundle rooted at a directory.
type Bundle struct {
	fs   billy.Filesystem
	root string
}

// New returns a Bundle rooted at root on fs.
func New(fs billy.Filesystem, root string) *Bundle {
	return &Bundle{fs: fs, root: filepath.Clean(root)}
}

// Root returns the bundle directory.
func (b *Bundle) Root() string {
	return b.root
}

// ManifestPath returns the path of the bundle's app.json.
func (b *Bundle) ManifestPath() string {
	return filepath.Join(b.root, ManifestFile)
}

// PagePath returns the module file backing a manifest page entry.
func (b *Bundle) PagePath(page string) string {
	return filepath.Join(b.root, filepath.FromSlash(page)) + PageExt
}

// SubpackageRoot returns the root this bundle gets when merged as a subpackage.
func (b *Bundle) SubpackageRoot() string {
	return manifest.SubpackageRoot(b.root)
}

// ReadManifest returns the raw content of app.json.
func (b *Bundle) ReadManifest() ([]byte, error) {
	data, err := util.ReadFile(b.fs, b.ManifestPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.WrapCause(oerrors.ErrNotFound, "reading "+b.ManifestPath(), err)
		}
		return nil, oerrors.WrapCause(oerrors.ErrFilesystem, "reading "+b.ManifestPath(), err)
	}
	return data, nil
}

// WriteManifest replaces app.json with data.
func (b *Bundle) WriteManifest(data []byte) error {
	if err := util.WriteFile(b.fs, b.ManifestPath(), data, 0o644); err != nil {
		return oerrors.WrapCause(oerrors.ErrFilesystem, "writing "+b.ManifestPath(), err)
	}
	return nil
}

// EntryPage resolves the module file of the subpackage entry page: the
// explicit page when given, otherwise the first manifest page.
func (b *Bundle) EntryPage(explicit string, pages []string) (string, error) {
	if explicit != "" {
		return b.PagePath(explicit), nil
	}
	if len(pages) == 0 {
		return "", oerrors.Wrap(oerrors.ErrNotFound, "no enter page given and manifest lists no pages")
	}
	return b.PagePath(pages[0]), nil
}

// Exists reports whether the bundle directory exists.
func (b *Bundle) Exists() bool {
	info, err := b.fs.Stat(b.root)
	return err == nil && info.IsDir()
}

// Strip removes StripFiles from the bundle root. Missing files are ignored.
// It returns the files actually removed.
func (b *Bundle) Strip() ([]string, error) {
	var removed []string
	var errs []error
	for _, name := range StripFiles {
		p := filepath.Join(b.root, name)
		err := b.fs.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case os.IsNotExist(err):
		default:
			errs = append(errs, fmt.Errorf("removing %s: %w", p, err))
		}
	}
	if len(errs) > 0 {
		return removed, oerrors.WrapCause(oerrors.ErrFilesystem, "stripping bundle", errors.Join(errs...))
	}
	return removed, nil
}

// Clean deletes the bundle directory. Deleting a directory that does not
// exist is reported as a failure.
func (b *Bundle) Clean() error {
	if !b.Exists() {
		return oerrors.Wrap(oerrors.ErrFilesystem, fmt.Sprintf("directory %s does not exist", b.root))
	}
	if err := util.RemoveAll(b.fs, b.root); err != nil {
		return oerrors.WrapCause(oerrors.ErrFilesystem, "removing "+b.root, err)
	}
	return nil
}

// CopyInto copies the bundle directory into dstDir, producing
// dstDir/<bundle name>. Existing files at the destination are overwritten.
// It returns the destination directory.
func (b *Bundle) CopyInto(dstDir string) (string, error) {
	if !b.Exists() {
		return "", oerrors.Wrap(oerrors.ErrFilesystem, fmt.Sprintf("directory %s does not exist", b.root))
	}
	dst := filepath.Join(filepath.Clean(dstDir), filepath.Base(b.root))
	if within(b.root, dst) {
		return "", oerrors.Wrap(oerrors.ErrFilesystem, fmt.Sprintf("cannot copy %s into itself", b.root))
	}

	err := util.Walk(b.fs, b.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return b.fs.MkdirAll(target, dirPerm(info))
		}
		return copyFile(b.fs, path, target, info.Mode().Perm())
	})
	if err != nil {
		return "", oerrors.WrapCause(oerrors.ErrFilesystem, fmt.Sprintf("copying %s to %s", b.root, dst), err)
	}
	return dst, nil
}

// Files lists the regular files of the bundle as sorted slash paths
// relative to the bundle root.
func (b *Bundle) Files() ([]string, error) {
	var files []string
	err := util.Walk(b.fs, b.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrFilesystem, "listing "+b.root, err)
	}
	sort.Strings(files)
	return files, nil
}

func copyFile(fs billy.Filesystem, src, dst string, perm os.FileMode) error {
	data, err := util.ReadFile(fs, src)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return util.WriteFile(fs, dst, data, perm)
}

func dirPerm(info os.FileInfo) os.FileMode {
	if perm := info.Mode().Perm(); perm != 0 {
		return perm
	}
	return 0o755
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
