package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/bundle"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/inject"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/locator"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// locateOptions holds the flags for the locate command.
type locateOptions struct {
	root      string
	name      string
	statement bool
}

// NewLocateCmd creates the locate command.
func NewLocateCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &locateOptions{}

	c := &cobra.Command{
		Use:   "locate <page.js>",
		Short: "Find the nearest app.js above a page module",
		Long: `Search upward from the directory of a page module for app.js, never
above --root, and print the relative reference that loads it.

Examples:
  mpmerge locate dist/pages/a/a.js --root dist
  # ../../app.js

  mpmerge locate dist/pages/a/a.js --root dist --statement
  # require("../../app.js");`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLocate(c, args[0], opts)
		},
	}

	c.Flags().StringVar(&opts.root, "root", "", "Directory the search must not leave (required)")
	c.Flags().StringVar(&opts.name, "name", bundle.BootstrapFile, "File name to search for")
	c.Flags().BoolVar(&opts.statement, "statement", false, "Print the require statement instead of the bare reference")
	_ = c.MarkFlagRequired("root")

	return c
}

func runLocate(c *cobra.Command, page string, opts *locateOptions) error {
	pageAbs, err := filepath.Abs(page)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	rootAbs, err := filepath.Abs(opts.root)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	res, err := locator.Locate(osfs.New("/"), pageAbs, opts.name, rootAbs)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	output.Debug("search finished", "found", res.Found, "path", res.Path, "steps", res.Steps)

	if !res.Found {
		return &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err: oerrors.Wrap(oerrors.ErrLocatorMiss,
				fmt.Sprintf("no %s between %s and %s", opts.name, filepath.Dir(pageAbs), rootAbs)),
		}
	}

	ref := res.RelativePath
	if opts.statement {
		ref = inject.Statement(ref)
	}
	fmt.Fprintln(c.OutOrStdout(), ref)
	return nil
}
