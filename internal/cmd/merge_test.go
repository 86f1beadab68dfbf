package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/testutil"
)

func TestNewMergeCmd(t *testing.T) {
	c := NewMergeCmd(nil)

	assert.Equal(t, "merge", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)

	for _, name := range []string{
		"source-output", "target-output", "enter-page", "source-cmd", "target-cmd",
		"clean-source", "clean-target", "independent", "preload-subpackages", "indent", "strict",
	} {
		assert.NotNil(t, c.Flags().Lookup(name), name)
	}
}

func TestMerge_SkipsBuildsAndMerges(t *testing.T) {
	ws := newWorkspace(t)

	_, stderr, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target, "-c", "", "-C", "")
	require.NoError(t, err)

	assert.Equal(t,
		`{"pages":["index"],"subPackages":[{"root":"sourceBundle/","pages":["pages/a/a","pages/b/b"],"independent":false}]}`,
		ws.read(t, ws.target, "app.json"))
	assert.Equal(t, `"use strict";require("../../app.js");Page({})`,
		ws.read(t, ws.target, "sourceBundle", "pages", "a", "a.js"))
	assert.NoFileExists(t, filepath.Join(ws.source, "app.json"))
	assert.NoFileExists(t, filepath.Join(ws.target, "sourceBundle", "app.wxss"))

	assert.Contains(t, stderr, "registered page sourceBundle/pages/b/b")
	assert.Contains(t, stderr, "merge finished")
}

func TestMerge_RunsBuildCommands(t *testing.T) {
	ws := newWorkspace(t)

	_, _, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target,
		"-c", "echo source > built.txt", "-C", "echo target > built.txt")
	require.NoError(t, err)

	assert.Equal(t, "source\n", ws.read(t, ws.dir, "sub", "built.txt"))
	assert.Equal(t, "target\n", ws.read(t, ws.dir, "main", "built.txt"))
}

func TestMerge_ConfigAndFlags(t *testing.T) {
	ws := newWorkspace(t)
	testutil.WriteFile(t, ws.dir, "config.yaml", `build:
  sourceCmd: ""
  targetCmd: ""
merge:
  independent: true
  indent: "  "
`)

	_, _, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target, "--indent", "")
	require.NoError(t, err)

	assert.Equal(t,
		`{"pages":["index"],"subPackages":[{"root":"sourceBundle/","pages":["pages/a/a","pages/b/b"],"independent":true}]}`,
		ws.read(t, ws.target, "app.json"),
		"config sets independent, --indent flag overrides the config indent")
}

func TestMerge_EnvOverridesConfig(t *testing.T) {
	ws := newWorkspace(t)
	testutil.WriteFile(t, ws.dir, "config.yaml", "merge:\n  independent: true\n")
	t.Setenv("MPMERGE_INDEPENDENT", "false")
	t.Setenv("MPMERGE_SOURCE_CMD", "")
	t.Setenv("MPMERGE_TARGET_CMD", "")

	_, _, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target)
	require.NoError(t, err)
	assert.Contains(t, ws.read(t, ws.target, "app.json"), `"independent":false`)
}

func TestMerge_MissingOutputs(t *testing.T) {
	ws := newWorkspace(t)

	_, stderr, err := ws.execute(t, "merge", "-O", ws.target, "-c", "", "-C", "")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitConfigurationError, exitErr.Code)
	assert.ErrorIs(t, err, oerrors.ErrConfiguration)
	assert.Contains(t, stderr, "invalid merge options")

	// Nothing was touched.
	assert.Equal(t, `{"pages":["index"],"subPackages":[]}`, ws.read(t, ws.target, "app.json"))
}

func TestMerge_StrictReportsPartialFailure(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(ws.source, "app.js")))

	_, _, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target, "-c", "", "-C", "", "--strict")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitPartialFailure, exitErr.Code)
	assert.ErrorIs(t, err, oerrors.ErrLocatorMiss)

	// The manifest merge still happened.
	assert.Contains(t, ws.read(t, ws.target, "app.json"), `"root":"sourceBundle/"`)
}

func TestMerge_BestEffortWithoutStrict(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(ws.source, "app.js")))

	_, stderr, err := ws.execute(t, "merge", "-o", ws.source, "-O", ws.target, "-c", "", "-C", "")
	require.NoError(t, err)
	assert.Contains(t, stderr, "inject bootstrap reference")
}
