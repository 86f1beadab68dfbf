// Package config provides configuration loading and management.
package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/build"
)

// BuildConfig contains the bundle build commands.
type BuildConfig struct {
	// SourceCmd builds the source bundle; run in the parent of the source output.
	// Env: MPMERGE_SOURCE_CMD, Default: "npm run build"
	SourceCmd *string `mapstructure:"sourceCmd" yaml:"sourceCmd,omitempty"`

	// TargetCmd builds the target bundle; run in the parent of the target output.
	// Env: MPMERGE_TARGET_CMD, Default: "npm run build"
	TargetCmd *string `mapstructure:"targetCmd" yaml:"targetCmd,omitempty"`
}

// MergeConfig contains merge defaults.
type MergeConfig struct {
	// Independent marks merged subpackages as independent.
	// Env: MPMERGE_INDEPENDENT, Default: false
	Independent *bool `mapstructure:"independent" yaml:"independent,omitempty"`

	// PreloadSubpackages copies the source preloadRule into the target.
	// Env: MPMERGE_PRELOAD_SUBPACKAGES, Default: false
	PreloadSubpackages *bool `mapstructure:"preloadSubpackages" yaml:"preloadSubpackages,omitempty"`

	// Indent is the indentation of the written app.json; empty writes it compact.
	// Env: MPMERGE_INDENT, Default: ""
	Indent *string `mapstructure:"indent" yaml:"indent,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the mpmerge configuration file (~/.mpmerge/config.yaml).
type Config struct {
	Build BuildConfig `mapstructure:"build" yaml:"build"`
	Merge MergeConfig `mapstructure:"merge" yaml:"merge"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `mpmerge config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			SourceCmd: ptr(build.DefaultCommand),
			TargetCmd: ptr(build.DefaultCommand),
		},
		Merge: MergeConfig{
			Independent:        ptr(false),
			PreloadSubpackages: ptr(false),
			Indent:             ptr(""),
		},
		Log: LogConfig{
			Timestamps: ptr(true),
		},
	}
}

const configHeader = `# mpmerge configuration.
# Values here are overridden by MPMERGE_* environment variables and flags.
`

// RenderDefault returns the default configuration file content.
func RenderDefault() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ptr[T any](v T) *T {
	return &v
}
