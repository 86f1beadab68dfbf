package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/bundle"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/merger"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// ShowMergeResult logs a summary of a finished merge. With strict set, any
// failed step turns into an *ExitError with ExitPartialFailure.
func ShowMergeResult(result *merger.Result, strict bool) error {
	if !result.HasErrors() {
		output.Info(output.StyleSummary.Render("subpackage merged"),
			"root", result.SubPackage.Root,
			"pages", len(result.SubPackage.Pages),
		)
		return nil
	}

	failed := 0
	for _, s := range result.Steps {
		if s.Err != nil {
			failed++
			output.Debug("step failed", "step", s.Step, "error", s.Err)
		}
	}
	output.Warn(fmt.Sprintf("merge finished with %d failed step(s)", failed),
		"manifest_written", result.ManifestWritten,
	)
	if !strict {
		return nil
	}
	return &oerrors.ExitError{
		Code:    oerrors.ExitPartialFailure,
		Err:     fmt.Errorf("%d merge step(s) failed: %w", failed, result.Err()),
		Printed: true,
	}
}

// PlanOutputOpts controls how WritePlan renders a plan.
type PlanOutputOpts struct {
	Format   output.Format
	UseColor bool
}

// WritePlan writes a plan preview: the bootstrap search result, the files
// that would be copied, the resulting subpackage list and the manifest
// change in the requested format.
func WritePlan(w io.Writer, plan *merger.Plan, opts PlanOutputOpts) error {
	if plan.Locate.Found {
		fmt.Fprintf(w, "%s %s\n", output.FormatCheckmark("entry page"),
			output.StyleNoun.Render(plan.EntryPage))
		fmt.Fprintf(w, "  would load %s\n", output.StyleNoun.Render(plan.Locate.RelativePath))
	} else {
		fmt.Fprintf(w, "%s %s\n", output.FormatCross("entry page"),
			output.StyleNoun.Render(plan.EntryPage))
		fmt.Fprintf(w, "  no %s found within the source output; injection would be skipped\n",
			bundle.BootstrapFile)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, output.BundleTree{
		Name:     strings.TrimSuffix(plan.SubpackageRoot, "/"),
		Files:    plan.Files,
		Entry:    plan.EntryFile,
		Stripped: plan.Stripped,
	})
	fmt.Fprintln(w)

	after, err := manifest.Parse(plan.After)
	if err != nil {
		return err
	}
	subs := after.SubPackages()
	fmt.Fprintln(w, output.SubpackageTable(subs, len(subs)-1))
	fmt.Fprintln(w)

	return writeManifestChange(w, plan, opts)
}

func writeManifestChange(w io.Writer, plan *merger.Plan, opts PlanOutputOpts) error {
	if opts.Format != output.FormatDiff {
		out, err := output.FormatManifest(plan.After, opts.Format)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}

	diff, err := output.DiffManifests(plan.Before, plan.After, opts.UseColor)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(w, output.StyleDim.Render("no manifest changes"))
		return nil
	}
	fmt.Fprint(w, diff)
	return nil
}
