package merger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/bundle"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/inject"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/locator"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// Merger runs merges against a filesystem.
type Merger struct {
	fs       billy.Filesystem
	builder  Builder
	reporter Reporter
}

// New creates a Merger. Bundle paths passed in Options are interpreted on fs.
func New(fs billy.Filesystem, builder Builder, reporter Reporter) *Merger {
	return &Merger{fs: fs, builder: builder, reporter: reporter}
}

// run carries the state of a single merge.
type run struct {
	*Merger
	opts   Options
	source *bundle.Bundle
	target *bundle.Bundle
	res    *Result

	// sourceManifest is nil when the source app.json could not be read.
	sourceManifest *manifest.Manifest
	sourcePages    []string
}

// Run merges the source bundle into the target bundle.
//
// The run follows these phases:
//  1. Validate options (fatal, nothing is touched)
//  2. Clean source and target outputs when requested
//  3. Build the source bundle
//  4. Read the source manifest
//  5. Strip app.wxss and app.json from the source output
//  6. Inject the bootstrap reference into the entry page
//  7. Build the target bundle
//  8. Copy the source output into the target output
//  9. Merge the source into the target manifest and write it back
//
// Only invalid options return an error. Every other failure is reported,
// recorded in the Result, and the run continues with the phases whose
// inputs are still available. Nothing is rolled back.
func (m *Merger) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		m.reporter.Fail("invalid merge options", err)
		return nil, err
	}

	r := &run{
		Merger: m,
		opts:   opts,
		source: bundle.New(m.fs, opts.SourceOutput),
		target: bundle.New(m.fs, opts.TargetOutput),
		res:    &Result{},
	}

	output.Debug("merging bundles", "source", r.source.Root(), "target", r.target.Root())

	if opts.CleanSource {
		r.clean(StepCleanSource, r.source)
	}
	if opts.CleanTarget {
		r.clean(StepCleanTarget, r.target)
	}

	r.build(ctx, StepBuildSource, "source", r.source, opts.SourceCmd)
	r.readSource()
	r.strip()
	r.inject()
	r.build(ctx, StepBuildTarget, "target", r.target, opts.TargetCmd)
	r.copy()
	r.merge()

	m.reporter.Succeed("merge finished")
	return r.res, nil
}

func (r *run) clean(step Step, b *bundle.Bundle) {
	err := b.Clean()
	r.res.record(step, err)
	if err != nil {
		r.reporter.Fail(fmt.Sprintf("delete directory %s", b.Root()), err)
		return
	}
	r.reporter.Succeed(fmt.Sprintf("deleted directory %s", b.Root()))
}

func (r *run) build(ctx context.Context, step Step, name string, b *bundle.Bundle, command string) {
	dir := filepath.Dir(b.Root())
	if command == "" {
		r.res.skip(step)
		r.reporter.Skip(fmt.Sprintf("no build command for %s", dir))
		return
	}

	output.BundleLogger(name).Debug("running build", "dir", dir, "command", command)
	err := r.builder.Run(ctx, dir, command)
	r.res.record(step, err)
	if err != nil {
		r.reporter.Fail(fmt.Sprintf("build %s", dir), err)
		return
	}
	r.reporter.Succeed(fmt.Sprintf("built %s", dir))
}

func (r *run) readSource() {
	m, err := readManifest(r.source, manifest.KindSource)
	if err == nil {
		r.sourcePages, err = m.Pages()
	}
	r.res.record(StepReadSource, err)
	if err != nil {
		r.reporter.Fail("read source manifest", err)
		return
	}
	r.sourceManifest = m
	output.Debug("source manifest read", "pages", len(r.sourcePages), "keys", m.Keys())
}

func (r *run) strip() {
	removed, err := r.source.Strip()
	r.res.record(StepStrip, err)
	logger := output.BundleLogger("source")
	for _, p := range removed {
		logger.Debug("removed from output", "path", p)
	}
	if err != nil {
		r.reporter.Fail("strip source output", err)
	}
}

func (r *run) inject() {
	page, err := r.source.EntryPage(r.opts.EnterPage, r.sourcePages)
	if err != nil {
		r.res.record(StepInject, err)
		r.reporter.Fail("resolve enter page", err)
		return
	}
	r.res.EntryPage = page
	r.reporter.Succeed(fmt.Sprintf("enter page %s", page))

	found, err := locator.Locate(r.fs, page, bundle.BootstrapFile, r.source.Root())
	if err == nil && !found.Found {
		err = oerrors.Wrap(oerrors.ErrLocatorMiss,
			fmt.Sprintf("no %s between %s and %s", bundle.BootstrapFile, filepath.Dir(page), r.source.Root()))
	}
	if err == nil {
		output.Debug("bootstrap module found", "path", found.Path, "ref", found.RelativePath, "steps", found.Steps)
		err = inject.File(r.fs, page, found.RelativePath)
	}
	r.res.record(StepInject, err)
	if err != nil {
		r.reporter.Fail("inject bootstrap reference", err)
		return
	}
	r.res.BootstrapRef = found.RelativePath
	r.reporter.Succeed(fmt.Sprintf("injected %s into %s", inject.Statement(found.RelativePath), page))
}

func (r *run) copy() {
	dst, err := r.source.CopyInto(r.target.Root())
	r.res.record(StepCopy, err)
	if err != nil {
		r.reporter.Fail(fmt.Sprintf("copy %s to %s", r.source.Root(), r.target.Root()), err)
		return
	}
	r.res.CopiedTo = dst
	r.reporter.Succeed(fmt.Sprintf("copied %s to %s", r.source.Root(), r.target.Root()))
}

func (r *run) merge() {
	if r.sourceManifest == nil {
		err := oerrors.Wrap(oerrors.ErrManifestParse, "source manifest unavailable")
		r.res.record(StepMerge, err)
		r.reporter.Fail("merge target manifest", err)
		return
	}

	target, sub, err := mergeInto(r.target, r.source, r.sourceManifest, r.sourcePages, r.opts)
	if err == nil {
		var data []byte
		data, err = target.MarshalIndent(r.opts.Indent)
		if err == nil {
			err = r.target.WriteManifest(data)
		}
	}
	r.res.record(StepMerge, err)
	if err != nil {
		r.reporter.Fail("merge target manifest", err)
		return
	}

	r.res.SubPackage = sub
	r.res.ManifestWritten = true
	if r.opts.PreloadSubpackages {
		rule, _ := r.sourceManifest.PreloadRule()
		r.reporter.Succeed(fmt.Sprintf("copied preloadRule: %s", preloadString(rule)))
	}
	for _, p := range sub.Pages {
		r.reporter.Succeed("registered page " + sub.Root + p)
	}
}

// readManifest reads and parses a bundle's app.json. Only a document that
// does not parse is an error; a schema mismatch is logged and the parsed
// manifest is still used.
func readManifest(b *bundle.Bundle, kind manifest.Kind) (*manifest.Manifest, error) {
	data, err := b.ReadManifest()
	if err != nil {
		return nil, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrManifestParse, "parsing "+b.ManifestPath(), err)
	}
	if err := manifest.Validate(kind, data); err != nil {
		output.Warn("manifest does not match schema", "path", b.ManifestPath(), "error", err)
	}
	return m, nil
}

// mergeInto reads the target manifest and merges the source into it.
func mergeInto(target, source *bundle.Bundle, src *manifest.Manifest, pages []string, opts Options) (*manifest.Manifest, manifest.SubPackage, error) {
	tm, err := readManifest(target, manifest.KindTarget)
	if err != nil {
		return nil, manifest.SubPackage{}, err
	}
	rule, _ := src.PreloadRule()
	return manifest.Merge(tm, manifest.MergeInput{
		SourcePages:       pages,
		SourcePreloadRule: rule,
		Root:              source.SubpackageRoot(),
		Independent:       opts.Independent,
		PropagatePreload:  opts.PreloadSubpackages,
	})
}

func preloadString(rule []byte) string {
	if rule == nil {
		return "none"
	}
	return string(rule)
}
