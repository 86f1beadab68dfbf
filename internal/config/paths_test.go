package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err, "should get home directory")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no tilde", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path without tilde", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{name: "tilde with slash", input: "~/.mpmerge/config.yaml", expected: filepath.Join(homeDir, ".mpmerge", "config.yaml")},
		{name: "tilde username pattern (not expanded)", input: "~username/file", expected: "~username/file"},
		{name: "tilde in middle (not expanded)", input: "/path/~/file", expected: "/path/~/file"},
		{name: "tilde with dir only", input: "~/", expected: homeDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultConfigFile(t *testing.T) {
	path, err := DefaultConfigFile()
	require.NoError(t, err)

	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, ".mpmerge", filepath.Base(filepath.Dir(path)))
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")

		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/env/config.yaml", path)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")

		path, err := GetConfigFile()
		require.NoError(t, err)
		want, err := DefaultConfigFile()
		require.NoError(t, err)
		assert.Equal(t, want, path)
	})
}
