package merger

import (
	"path/filepath"
	"slices"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/bundle"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/locator"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
)

// Plan previews a merge without building, copying or writing anything.
// Both bundles must already be built. Unlike Run, any failure is returned.
func (m *Merger) Plan(opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	source := bundle.New(m.fs, opts.SourceOutput)
	target := bundle.New(m.fs, opts.TargetOutput)

	src, err := readManifest(source, manifest.KindSource)
	if err != nil {
		return nil, err
	}
	pages, err := src.Pages()
	if err != nil {
		return nil, err
	}

	plan := &Plan{SubpackageRoot: source.SubpackageRoot()}

	plan.EntryPage, err = source.EntryPage(opts.EnterPage, pages)
	if err != nil {
		return nil, err
	}
	if rel, relErr := filepath.Rel(source.Root(), plan.EntryPage); relErr == nil {
		plan.EntryFile = filepath.ToSlash(rel)
	}
	plan.Locate, err = locator.Locate(m.fs, plan.EntryPage, bundle.BootstrapFile, source.Root())
	if err != nil {
		return nil, err
	}

	files, err := source.Files()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if slices.Contains(bundle.StripFiles, f) {
			plan.Stripped = append(plan.Stripped, f)
			continue
		}
		plan.Files = append(plan.Files, f)
	}

	plan.Before, err = target.ReadManifest()
	if err != nil {
		return nil, err
	}
	merged, sub, err := mergeInto(target, source, src, pages, opts)
	if err != nil {
		return nil, err
	}
	plan.SubPackage = sub
	plan.After, err = merged.MarshalIndent(opts.Indent)
	if err != nil {
		return nil, err
	}
	return plan, nil
}
