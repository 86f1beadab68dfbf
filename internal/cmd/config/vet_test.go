package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

func TestConfigVet_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, _, err := runConfigCmd(t, path, "init")
	require.NoError(t, err)

	stdout, _, err := runConfigCmd(t, path, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file is valid: "+path)
}

func TestConfigVet_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runConfigCmd(t, path, "vet")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitConfigurationError, exitErr.Code)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestConfigVet_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "build:\n  sourceCmd: \"   \"\nmerge:\n  indent: \"xx\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, stderr, err := runConfigCmd(t, path, "vet")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.Contains(t, stderr, "merge.indent")
	assert.Contains(t, stderr, "build.sourceCmd")
}

func TestConfigVet_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("build: [unclosed"), 0o600))

	_, _, err := runConfigCmd(t, path, "vet")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitConfigurationError, exitErr.Code)
}
