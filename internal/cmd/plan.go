package cmd

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdutil"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/merger"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		bf     cmdutil.BundleFlags
		sf     cmdutil.SubpackageFlags
		format string
	)

	c := &cobra.Command{
		Use:   "plan",
		Short: "Preview a merge of two built bundles without changing anything",
		Long: `Preview a merge of two already built bundles.

Nothing is built, copied or written. The preview shows the entry page and
the app.js it would load, the files that would be copied, the resulting
subpackage list and the change to the target app.json.

Examples:
  mpmerge plan -o sub/dist -O main/dist
  mpmerge plan -o sub/dist -O main/dist --independent --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runPlan(c, cfg, &bf, &sf, format)
		},
	}

	bf.AddTo(c)
	sf.AddTo(c)
	c.Flags().StringVar(&format, "format", "diff",
		fmt.Sprintf("Manifest output format: %s", strings.Join(output.ValidFormats(), ", ")))

	return c
}

func runPlan(c *cobra.Command, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BundleFlags, sf *cmdutil.SubpackageFlags, format string) error {
	outFormat, ok := output.ParseFormat(format)
	if !ok {
		return &oerrors.ExitError{
			Code: oerrors.ExitConfigurationError,
			Err: oerrors.NewConfigurationError(
				fmt.Sprintf("invalid format %q", format),
				"use one of: "+strings.Join(output.ValidFormats(), ", "),
			),
		}
	}

	resolved, err := cmdutil.ResolveMerge(c, nil, sf, cfg.Config)
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
		EnterPage:          bf.EnterPage,
		Independent:        resolved.Independent,
		PreloadSubpackages: resolved.PreloadSubpackages,
		Indent:             resolved.Indent,
	}

	plan, err := merger.New(osfs.New("/"), nil, nil).Plan(opts)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
	}

	return cmdutil.WritePlan(c.OutOrStdout(), plan, cmdutil.PlanOutputOpts{
		Format:   outFormat,
		UseColor: output.IsTTY(),
	})
}
