package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

func clearMergeEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvSourceCmd, EnvTargetCmd, EnvIndependent, EnvPreloadSubpackages, EnvIndent} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func valueFor(t *testing.T, res *ResolvedMergeConfig, key string) ResolvedValue {
	t.Helper()
	for _, v := range res.Values {
		if v.Key == key {
			return v
		}
	}
	t.Fatalf("no resolved value for %s", key)
	return ResolvedValue{}
}

func TestResolveMerge_Defaults(t *testing.T) {
	clearMergeEnv(t)

	res, err := ResolveMerge(ResolveMergeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "npm run build", res.SourceCmd)
	assert.Equal(t, "npm run build", res.TargetCmd)
	assert.Equal(t, SourceDefault, valueFor(t, res, "build.sourceCmd").Source)
	assert.False(t, res.Independent)
	assert.False(t, res.PreloadSubpackages)
	assert.Empty(t, res.Indent)
	assert.Equal(t, SourceDefault, valueFor(t, res, "merge.independent").Source)
}

func TestResolveMerge_EmptyEnvCommandSkipsBuild(t *testing.T) {
	clearMergeEnv(t)
	t.Setenv(EnvSourceCmd, "")

	res, err := ResolveMerge(ResolveMergeOptions{})
	require.NoError(t, err)

	assert.Empty(t, res.SourceCmd)
	assert.Equal(t, SourceEnv, valueFor(t, res, "build.sourceCmd").Source)
}

func TestResolveMerge_FlagPrecedence(t *testing.T) {
	t.Setenv(EnvSourceCmd, "pnpm build")
	t.Setenv(EnvIndependent, "false")

	res, err := ResolveMerge(ResolveMergeOptions{
		SourceCmdFlag:   ptr("yarn build"),
		IndependentFlag: ptr(true),
		Config: &Config{
			Build: BuildConfig{SourceCmd: ptr("make")},
			Merge: MergeConfig{Independent: ptr(false)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "yarn build", res.SourceCmd)
	v := valueFor(t, res, "build.sourceCmd")
	assert.Equal(t, SourceFlag, v.Source)
	assert.Equal(t, "pnpm build", v.Shadowed[SourceEnv])
	assert.Equal(t, "make", v.Shadowed[SourceConfig])

	assert.True(t, res.Independent)
	assert.Equal(t, SourceFlag, valueFor(t, res, "merge.independent").Source)
}

func TestResolveMerge_EnvOverConfig(t *testing.T) {
	clearMergeEnv(t)
	t.Setenv(EnvPreloadSubpackages, "true")
	t.Setenv(EnvTargetCmd, "npm run build:mp")

	res, err := ResolveMerge(ResolveMergeOptions{
		Config: &Config{
			Build: BuildConfig{TargetCmd: ptr("make")},
			Merge: MergeConfig{PreloadSubpackages: ptr(false)},
		},
	})
	require.NoError(t, err)

	assert.True(t, res.PreloadSubpackages)
	assert.Equal(t, "npm run build:mp", res.TargetCmd)
	assert.Equal(t, SourceEnv, valueFor(t, res, "build.targetCmd").Source)
	assert.Equal(t, false, valueFor(t, res, "merge.preloadSubpackages").Shadowed[SourceConfig])
}

func TestResolveMerge_ConfigFallback(t *testing.T) {
	clearMergeEnv(t)

	res, err := ResolveMerge(ResolveMergeOptions{
		Config: &Config{Merge: MergeConfig{Independent: ptr(true), Indent: ptr("\t")}},
	})
	require.NoError(t, err)

	assert.True(t, res.Independent)
	assert.Equal(t, "\t", res.Indent)
	v := valueFor(t, res, "merge.independent")
	assert.Equal(t, SourceConfig, v.Source)
	assert.Empty(t, v.Shadowed)
}

func TestResolveMerge_InvalidEnvBool(t *testing.T) {
	clearMergeEnv(t)
	t.Setenv(EnvIndependent, "maybe")

	_, err := ResolveMerge(ResolveMergeOptions{})
	assert.ErrorIs(t, err, oerrors.ErrConfiguration)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("MPMERGE_CONFIG", "/env/config.yaml")

	res, err := ResolveConfigPath("/flag/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/flag/config.yaml", res.ConfigPath)
	assert.Equal(t, SourceFlag, res.Source)

	res, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config.yaml", res.ConfigPath)
	assert.Equal(t, SourceEnv, res.Source)

	t.Setenv("MPMERGE_CONFIG", "")
	res, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, res.Source)
}
