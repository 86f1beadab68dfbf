package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/build"
	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables read by the resolver.
const (
	EnvSourceCmd          = envPrefix + "_SOURCE_CMD"
	EnvTargetCmd          = envPrefix + "_TARGET_CMD"
	EnvIndependent        = envPrefix + "_INDEPENDENT"
	EnvPreloadSubpackages = envPrefix + "_PRELOAD_SUBPACKAGES"
	EnvIndent             = envPrefix + "_INDENT"
)

// ResolvedValue records how a single configuration value was resolved.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// ResolveMergeOptions carries the flag values of a merge command. A nil
// pointer means the flag was not given.
type ResolveMergeOptions struct {
	SourceCmdFlag          *string
	TargetCmdFlag          *string
	IndependentFlag        *bool
	PreloadSubpackagesFlag *bool
	IndentFlag             *string

	// Config is the loaded config file; nil when none was loaded.
	Config *Config
}

// ResolvedMergeConfig is the effective merge configuration.
type ResolvedMergeConfig struct {
	SourceCmd          string
	TargetCmd          string
	Independent        bool
	PreloadSubpackages bool
	Indent             string

	// Values lists every resolution for debug logging.
	Values []ResolvedValue
}

type layer[T any] struct {
	source ConfigSource
	value  *T
}

// resolveValue picks the first set layer, recording lower set layers as shadowed.
func resolveValue[T any](key string, def T, layers ...layer[T]) (T, ResolvedValue) {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	var (
		result T
		found  bool
	)
	for _, l := range layers {
		if l.value == nil {
			continue
		}
		if found {
			rv.Shadowed[l.source] = *l.value
			continue
		}
		result = *l.value
		rv.Source = l.source
		found = true
	}
	if !found {
		result = def
		rv.Source = SourceDefault
	}
	rv.Value = result
	return result, rv
}

func envString(name string) *string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	return &v
}

func envBool(name string) (*bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConfiguration, fmt.Sprintf("invalid %s value %q", name, v), err)
	}
	return &b, nil
}

// ResolveMerge resolves merge settings using precedence:
// (1) flag, (2) MPMERGE_* env, (3) config file, (4) built-in default.
func ResolveMerge(opts ResolveMergeOptions) (*ResolvedMergeConfig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	independentEnv, err := envBool(EnvIndependent)
	if err != nil {
		return nil, err
	}
	preloadEnv, err := envBool(EnvPreloadSubpackages)
	if err != nil {
		return nil, err
	}

	res := &ResolvedMergeConfig{}
	var rv ResolvedValue

	res.SourceCmd, rv = resolveValue("build.sourceCmd", build.DefaultCommand,
		layer[string]{SourceFlag, opts.SourceCmdFlag},
		layer[string]{SourceEnv, envString(EnvSourceCmd)},
		layer[string]{SourceConfig, cfg.Build.SourceCmd},
	)
	res.Values = append(res.Values, rv)

	res.TargetCmd, rv = resolveValue("build.targetCmd", build.DefaultCommand,
		layer[string]{SourceFlag, opts.TargetCmdFlag},
		layer[string]{SourceEnv, envString(EnvTargetCmd)},
		layer[string]{SourceConfig, cfg.Build.TargetCmd},
	)
	res.Values = append(res.Values, rv)

	res.Independent, rv = resolveValue("merge.independent", false,
		layer[bool]{SourceFlag, opts.IndependentFlag},
		layer[bool]{SourceEnv, independentEnv},
		layer[bool]{SourceConfig, cfg.Merge.Independent},
	)
	res.Values = append(res.Values, rv)

	res.PreloadSubpackages, rv = resolveValue("merge.preloadSubpackages", false,
		layer[bool]{SourceFlag, opts.PreloadSubpackagesFlag},
		layer[bool]{SourceEnv, preloadEnv},
		layer[bool]{SourceConfig, cfg.Merge.PreloadSubpackages},
	)
	res.Values = append(res.Values, rv)

	res.Indent, rv = resolveValue("merge.indent", "",
		layer[string]{SourceFlag, opts.IndentFlag},
		layer[string]{SourceEnv, envString(EnvIndent)},
		layer[string]{SourceConfig, cfg.Merge.Indent},
	)
	res.Values = append(res.Values, rv)

	return res, nil
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) MPMERGE_CONFIG env, (3) ~/.mpmerge/config.yaml
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	if flagValue != "" {
		return ResolveConfigPathResult{ConfigPath: flagValue, Source: SourceFlag}, nil
	}
	if envValue := os.Getenv(EnvConfig); envValue != "" {
		return ResolveConfigPathResult{ConfigPath: envValue, Source: SourceEnv}, nil
	}

	path, err := DefaultConfigFile()
	if err != nil {
		return ResolveConfigPathResult{}, err
	}
	return ResolveConfigPathResult{ConfigPath: path, Source: SourceDefault}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
