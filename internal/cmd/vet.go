package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var source bool

	c := &cobra.Command{
		Use:   "vet <app.json>...",
		Short: "Validate bundle manifests",
		Long: `Validate app.json files against the structure a merge relies on.

Target manifests (the default) need an object whose pages, if present,
is a list of strings. Source manifests (--source) additionally need a
pages list. An empty list is accepted, but then merge needs --enter-page.
Duplicate keys resolve to the last value.

Comments and trailing commas are tolerated.

Examples:
  mpmerge vet main/dist/app.json
  mpmerge vet --source sub/dist/app.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			kind := manifest.KindTarget
			if source {
				kind = manifest.KindSource
			}
			return runVet(c, args, kind)
		},
	}

	c.Flags().BoolVar(&source, "source", false, "Validate as a source manifest")

	return c
}

func runVet(c *cobra.Command, paths []string, kind manifest.Kind) error {
	failed := 0
	for _, path := range paths {
		err := vetFile(path, kind)
		if err != nil {
			failed++
			fmt.Fprintln(c.OutOrStdout(), output.FormatCross(fmt.Sprintf("%s: %v", path, err)))
			continue
		}
		fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(path))
	}

	if failed > 0 {
		return &oerrors.ExitError{
			Code:    oerrors.ExitValidationError,
			Err:     oerrors.NewValidationError(fmt.Sprintf("%d of %d manifest(s) invalid", failed, len(paths)), "", ""),
			Printed: true,
		}
	}
	return nil
}

func vetFile(path string, kind manifest.Kind) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return oerrors.WrapCause(oerrors.ErrFilesystem, "reading manifest", err)
	}
	if _, err := manifest.Parse(data); err != nil {
		return oerrors.WrapCause(oerrors.ErrManifestParse, "parsing manifest", err)
	}
	return manifest.Validate(kind, data)
}
