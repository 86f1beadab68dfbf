package cmd

import (
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdutil"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/merger"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// NewMergeCmd creates the merge command.
func NewMergeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		bf     cmdutil.BundleFlags
		buildF cmdutil.BuildFlags
		sf     cmdutil.SubpackageFlags
		strict bool
	)

	c := &cobra.Command{
		Use:   "merge",
		Short: "Merge the source bundle into the target bundle as a subpackage",
		Long: `Merge the source bundle into the target bundle as a subpackage.

Steps:
  1. Delete the outputs when --clean-source / --clean-target are given
  2. Build the source project (in the parent of --source-output)
  3. Read the source app.json, then remove app.json and app.wxss
  4. Inject require("<path to app.js>") into the entry page
  5. Build the target project (in the parent of --target-output)
  6. Copy the source output into the target output
  7. Append the subpackage to the target app.json

A failed step is reported and the merge goes on with the steps that do not
depend on it. Use --strict to exit non-zero when any step failed.

Examples:
  # Merge dist of ./sub into dist of ./main
  mpmerge merge -o sub/dist -O main/dist

  # Skip both builds and copy the source preloadRule
  mpmerge merge -o sub/dist -O main/dist -c "" -C "" --preload-subpackages`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runMerge(c, cfg, &bf, &buildF, &sf, strict)
		},
	}

	bf.AddTo(c)
	buildF.AddTo(c)
	sf.AddTo(c)
	c.Flags().BoolVar(&strict, "strict", false, "Exit with code 3 when any merge step failed")

	return c
}

func runMerge(c *cobra.Command, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BundleFlags, buildF *cmdutil.BuildFlags, sf *cmdutil.SubpackageFlags, strict bool) error {
	resolved, err := cmdutil.ResolveMerge(c, buildF, sf, cfg.Config)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitConfigurationError, Err: err}
	}

	source, target, err := bf.Abs()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	opts := merger.Options{
		SourceOutput:       source,
		TargetOutput:       target,
		SourceCmd:          resolved.SourceCmd,
		TargetCmd:          resolved.TargetCmd,
		EnterPage:          bf.EnterPage,
		CleanSource:        buildF.CleanSource,
		CleanTarget:        buildF.CleanTarget,
		Independent:        resolved.Independent,
		PreloadSubpackages: resolved.PreloadSubpackages,
		Indent:             resolved.Indent,
	}

	status := output.NewStatus(c.ErrOrStderr())
	builder := &cmdutil.Builder{Verbose: cfg.Verbose, Out: c.ErrOrStderr()}

	result, err := merger.New(osfs.New("/"), builder, status).Run(c.Context(), opts)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	output.Debug("merge steps reported", "steps", len(result.Steps), "failures", status.Failures())

	return cmdutil.ShowMergeResult(result, strict)
}
