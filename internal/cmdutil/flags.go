// Package cmdutil provides shared command utilities for the merge and plan
// commands. It centralizes flag group management, merge option resolution,
// build execution and result output helpers.
package cmdutil

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/config"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

// BundleFlags holds flags locating the two bundles (merge, plan).
type BundleFlags struct {
	SourceOutput string
	TargetOutput string
	EnterPage    string
}

// AddTo registers the bundle flags on the given cobra command.
func (f *BundleFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.SourceOutput, "source-output", "o", "",
		"Compiled output directory of the bundle merged as a subpackage")
	cmd.Flags().StringVarP(&f.TargetOutput, "target-output", "O", "",
		"Compiled output directory of the bundle receiving the subpackage")
	cmd.Flags().StringVarP(&f.EnterPage, "enter-page", "e", "",
		"Source page that loads app.js, relative and without extension (default: first page)")
}

// Abs returns both output directories as absolute paths. Empty values stay
// empty so that option validation can report them.
func (f *BundleFlags) Abs() (source, target string, err error) {
	if source, err = absOrEmpty(f.SourceOutput); err != nil {
		return "", "", fmt.Errorf("resolving --source-output: %w", err)
	}
	if target, err = absOrEmpty(f.TargetOutput); err != nil {
		return "", "", fmt.Errorf("resolving --target-output: %w", err)
	}
	return source, target, nil
}

func absOrEmpty(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	return filepath.Abs(p)
}

// BuildFlags holds flags controlling the bundle builds (merge).
type BuildFlags struct {
	SourceCmd   string
	TargetCmd   string
	CleanSource bool
	CleanTarget bool
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.SourceCmd, "source-cmd", "c", "",
		`Source build command, run next to the source output (default: "npm run build")`)
	cmd.Flags().StringVarP(&f.TargetCmd, "target-cmd", "C", "",
		`Target build command, run next to the target output (default: "npm run build")`)
	cmd.Flags().BoolVar(&f.CleanSource, "clean-source", false,
		"Delete the source output before building")
	cmd.Flags().BoolVar(&f.CleanTarget, "clean-target", false,
		"Delete the target output before building")
}

// SubpackageFlags holds flags shaping the merged manifest (merge, plan).
type SubpackageFlags struct {
	Independent        bool
	PreloadSubpackages bool
	Indent             string
}

// AddTo registers the subpackage flags on the given cobra command.
func (f *SubpackageFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Independent, "independent", false,
		"Mark the subpackage as independent")
	cmd.Flags().BoolVar(&f.PreloadSubpackages, "preload-subpackages", false,
		"Replace the target preloadRule with the source preloadRule")
	cmd.Flags().StringVar(&f.Indent, "indent", "",
		"Indentation of the written app.json (default: compact)")
}

// ResolveMerge resolves build and subpackage settings against env and config.
// Only flags the user actually set take part; build may be nil for commands
// that do not build.
func ResolveMerge(cmd *cobra.Command, build *BuildFlags, sub *SubpackageFlags, cfg *config.Config) (*config.ResolvedMergeConfig, error) {
	opts := config.ResolveMergeOptions{Config: cfg}

	if build != nil {
		opts.SourceCmdFlag = changedString(cmd, "source-cmd", build.SourceCmd)
		opts.TargetCmdFlag = changedString(cmd, "target-cmd", build.TargetCmd)
	}
	if sub != nil {
		opts.IndependentFlag = changedBool(cmd, "independent", sub.Independent)
		opts.PreloadSubpackagesFlag = changedBool(cmd, "preload-subpackages", sub.PreloadSubpackages)
		opts.IndentFlag = changedString(cmd, "indent", sub.Indent)
	}

	resolved, err := config.ResolveMerge(opts)
	if err != nil {
		return nil, err
	}
	config.LogResolvedValues(resolved.Values)

	if v := config.ValidateIndent(&resolved.Indent); v != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConfiguration, "invalid merge settings", v)
	}
	return resolved, nil
}

func changedString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func changedBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
