// Package merger merges a compiled mini-program bundle into another one as a
// subpackage: it builds both bundles, patches the source entry page to load
// the source bootstrap module, copies the source into the target and
// registers it in the target manifest.
package merger

import (
	"context"
	"errors"
	"strings"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/locator"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
)

// Builder runs a bundle build command in a directory.
type Builder interface {
	Run(ctx context.Context, dir, command string) error
}

// Reporter receives one status line per finished step. It is purely
// observational.
type Reporter interface {
	Succeed(msg string)
	Fail(msg string, err error)
	Skip(msg string)
}

// Options configures a merge.
type Options struct {
	// SourceOutput is the compiled source bundle directory. Required.
	SourceOutput string

	// TargetOutput is the compiled target bundle directory. Required.
	TargetOutput string

	// SourceCmd builds the source bundle in the parent of SourceOutput.
	// Empty skips the build.
	SourceCmd string

	// TargetCmd builds the target bundle in the parent of TargetOutput.
	// Empty skips the build.
	TargetCmd string

	// EnterPage is the source page (relative, without extension) that loads
	// the bootstrap module. Defaults to the first source manifest page.
	EnterPage string

	// CleanSource deletes SourceOutput before building.
	CleanSource bool

	// CleanTarget deletes TargetOutput before building.
	CleanTarget bool

	// Independent marks the new subpackage as independent.
	Independent bool

	// PreloadSubpackages replaces the target preloadRule with the source's.
	PreloadSubpackages bool

	// Indent indents the written manifest. Empty writes compact JSON.
	Indent string
}

// Validate checks that both bundle locations are set.
func (o Options) Validate() error {
	var missing []string
	if strings.TrimSpace(o.SourceOutput) == "" {
		missing = append(missing, "source output (-o)")
	}
	if strings.TrimSpace(o.TargetOutput) == "" {
		missing = append(missing, "target output (-O)")
	}
	if len(missing) > 0 {
		return oerrors.NewConfigurationError(
			"missing "+strings.Join(missing, " and "),
			"pass both -o <source output> and -O <target output>",
		)
	}
	return nil
}

// Step names a phase of a merge run.
type Step string

const (
	StepCleanSource Step = "clean-source"
	StepCleanTarget Step = "clean-target"
	StepBuildSource Step = "build-source"
	StepReadSource  Step = "read-source"
	StepStrip       Step = "strip"
	StepInject      Step = "inject"
	StepBuildTarget Step = "build-target"
	StepCopy        Step = "copy"
	StepMerge       Step = "merge"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Step    Step
	Skipped bool
	Err     error
}

// Result is the outcome of a merge run. Step failures never abort the run;
// they are collected here.
type Result struct {
	// Steps lists every step that ran or was skipped, in order.
	Steps []StepResult

	// EntryPage is the page module the bootstrap reference was injected into.
	EntryPage string

	// BootstrapRef is the injected load reference; empty on a locator miss.
	BootstrapRef string

	// CopiedTo is the directory the source bundle was copied to.
	CopiedTo string

	// SubPackage is the descriptor appended to the target manifest.
	SubPackage manifest.SubPackage

	// ManifestWritten reports whether the target manifest was rewritten.
	ManifestWritten bool
}

func (r *Result) record(step Step, err error) {
	r.Steps = append(r.Steps, StepResult{Step: step, Err: err})
}

func (r *Result) skip(step Step) {
	r.Steps = append(r.Steps, StepResult{Step: step, Skipped: true})
}

// Step returns the result of the named step.
func (r *Result) Step(step Step) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepResult{}, false
}

// HasErrors returns true if any step failed.
func (r *Result) HasErrors() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Err joins all step failures, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Plan is a read-only preview of the manifest change a merge would make.
type Plan struct {
	// SubpackageRoot is the root the source bundle would get.
	SubpackageRoot string

	// EntryPage is the page module that would be patched.
	EntryPage string

	// EntryFile is EntryPage relative to the source root, as a slash path.
	EntryFile string

	// Locate is the bootstrap search result for EntryPage.
	Locate locator.Result

	// SubPackage is the descriptor that would be appended.
	SubPackage manifest.SubPackage

	// Files are the source files that would be copied, relative to the
	// source root. Stripped files are left out.
	Files []string

	// Stripped are the source files that would be removed before the copy.
	Stripped []string

	// Before is the target manifest as read.
	Before []byte

	// After is the target manifest as it would be written.
	After []byte
}
