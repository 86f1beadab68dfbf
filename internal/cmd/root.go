// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmd/config"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/cmdtypes"
	mpconfig "github.com/Lisheri/all-mp-merge-test-cli/internal/config"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/version"
)

// NewRootCmd creates the root command for the mpmerge CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}

	var (
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "mpmerge",
		Short: "Merge a compiled mini-program into another as a subpackage",
		Long: `mpmerge merges a compiled mini-program bundle into another bundle as a
subpackage.

It builds both projects, patches the source entry page to load the source
app.js, copies the source output into the target output and registers it
in the target app.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			cfg.Verbose = verboseFlag
			return initializeGlobals(c, cfg, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFlag, "config", "", "Path to config file (env: MPMERGE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewMergeCmd(cfg),
		NewPlanCmd(cfg),
		NewLocateCmd(cfg),
		NewVetCmd(cfg),
		config.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, timestampsFlag bool) error {
	pathResult, err := mpconfig.ResolveConfigPath(cfg.ConfigFlag)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitConfigurationError, Err: err}
	}
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source

	loaded, err := mpconfig.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		// Reported once logging is set up; `config vet` reports it in full.
		loaded = &mpconfig.Config{}
	}
	cfg.Config = loaded

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("mpmerge started",
		"version", info.Version,
		"config", cfg.ConfigPath,
		"config_source", cfg.ConfigSource,
	)
	if err != nil {
		output.Warn("ignoring unreadable config file", "path", cfg.ConfigPath, "error", err)
	}

	return nil
}
