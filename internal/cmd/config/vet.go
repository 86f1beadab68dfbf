package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/config"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the mpmerge configuration file",
		Long: `Validate the mpmerge configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. merge.indent contains only spaces or tabs
  4. Build commands are not whitespace only

The config path is resolved using precedence:
  --config flag > MPMERGE_CONFIG env > ~/.mpmerge/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	pathResult, err := config.ResolveConfigPath(cfg.ConfigFlag)
	if err != nil {
		return oerrors.WrapCause(oerrors.ErrNotFound, "could not resolve config path", err)
	}

	expandedPath, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	output.Debug("validating config", "path", expandedPath, "source", pathResult.Source)

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.ExitError{
			Code: oerrors.ExitConfigurationError,
			Err: &oerrors.DetailError{
				Type:     "not found",
				Message:  "configuration file not found",
				Location: expandedPath,
				Hint:     "Run 'mpmerge config init' to create default configuration",
				Cause:    oerrors.ErrNotFound,
			},
		}
	}

	if _, err := config.ValidateFile(expandedPath); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", expandedPath)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return &oerrors.ExitError{
			Code: oerrors.ExitConfigurationError,
			Err:  oerrors.WrapCause(oerrors.ErrConfiguration, "loading "+expandedPath, err),
		}
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", expandedPath)
	return nil
}
