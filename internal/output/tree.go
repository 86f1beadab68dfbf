package output

import (
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
)

// BundleTree lists the files of a bundle for display.
type BundleTree struct {
	// Name is the bundle directory name, shown as the root.
	Name string

	// Files are slash paths relative to the bundle.
	Files []string

	// Entry is the entry page module, marked in the tree.
	Entry string

	// Stripped are files removed before the copy. They are shown dimmed.
	Stripped []string
}

// String renders the bundle as a tree. Directories come before files at
// every level. An empty bundle renders as "".
func (b BundleTree) String() string {
	paths := append(slices.Clone(b.Files), b.Stripped...)
	if len(paths) == 0 {
		return ""
	}

	root := tree.Root(StyleNoun.Render(b.Name + "/"))
	b.addDir(root, "", paths)
	return root.String() + "\n"
}

func (b BundleTree) addDir(t *tree.Tree, dir string, paths []string) {
	var dirs, files []string
	nested := make(map[string][]string)

	for _, p := range paths {
		head, rest, ok := strings.Cut(p, "/")
		if !ok {
			files = append(files, head)
			continue
		}
		if _, seen := nested[head]; !seen {
			dirs = append(dirs, head)
		}
		nested[head] = append(nested[head], rest)
	}
	slices.Sort(dirs)
	slices.Sort(files)

	for _, d := range dirs {
		sub := tree.Root(d + "/")
		b.addDir(sub, path.Join(dir, d), nested[d])
		t.Child(sub)
	}
	for _, f := range files {
		t.Child(b.label(path.Join(dir, f), f))
	}
}

func (b BundleTree) label(full, name string) string {
	switch {
	case full == b.Entry:
		return name + "  " + StyleDim.Render("entry page")
	case slices.Contains(b.Stripped, full):
		return StyleDim.Render(name + "  stripped")
	}
	return name
}
