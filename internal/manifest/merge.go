package manifest

import (
	"encoding/json"
	"errors"
	"strings"
)

// MergeInput describes the source bundle being merged into a target manifest.
type MergeInput struct {
	// SourcePages is the source manifest's page list, copied verbatim.
	SourcePages []string

	// SourcePreloadRule is the source manifest's preloadRule; nil when absent.
	SourcePreloadRule json.RawMessage

	// Root is the subpackage root, e.g. "sourceBundle/".
	Root string

	// Independent marks the subpackage as independent.
	Independent bool

	// PropagatePreload replaces the target's preloadRule with the source's.
	PropagatePreload bool
}

// ErrEmptyRoot is returned when the subpackage root is empty.
var ErrEmptyRoot = errors.New("subpackage root must not be empty")

// Merge appends a subpackage for the source bundle to target and, when
// requested, replaces target's preloadRule. target is modified in place and
// returned along with the appended descriptor. Keys other than subPackages
// and preloadRule are left untouched.
func Merge(target *Manifest, in MergeInput) (*Manifest, SubPackage, error) {
	if strings.TrimSpace(in.Root) == "" {
		return target, SubPackage{}, ErrEmptyRoot
	}

	subs := target.SubPackages()

	root := in.Root
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	pages := make([]string, len(in.SourcePages))
	copy(pages, in.SourcePages)

	entry := SubPackage{
		Root:        root,
		Pages:       pages,
		Independent: in.Independent,
	}
	subs = append(subs, entry)

	if err := target.SetSubPackages(subs); err != nil {
		return target, SubPackage{}, err
	}

	if in.PropagatePreload {
		target.SetPreloadRule(in.SourcePreloadRule)
	}

	return target, entry, nil
}
