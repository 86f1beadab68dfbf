package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/config"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/testutil"
)

// workspace is a temp project layout with a source and a target bundle.
type workspace struct {
	dir    string
	source string // <dir>/sub/sourceBundle
	target string // <dir>/main/dist
	config string // <dir>/config.yaml, absent unless written
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	clearMergeEnv(t)

	dir := t.TempDir()
	ws := &workspace{
		dir:    dir,
		source: filepath.Join(dir, "sub", "sourceBundle"),
		target: filepath.Join(dir, "main", "dist"),
		config: filepath.Join(dir, "config.yaml"),
	}

	testutil.WriteFile(t, ws.source, "app.json", `{"pages":["pages/a/a","pages/b/b"]}`)
	testutil.WriteFile(t, ws.source, "app.wxss", `page{}`)
	testutil.WriteFile(t, ws.source, "app.js", `App({})`)
	testutil.WriteFile(t, ws.source, "pages/a/a.js", `"use strict";Page({})`)
	testutil.WriteFile(t, ws.source, "pages/b/b.js", `Page({})`)

	testutil.WriteFile(t, ws.target, "app.json", `{"pages":["index"],"subPackages":[]}`)
	testutil.WriteFile(t, ws.target, "app.js", `App({})`)
	return ws
}

func (ws *workspace) read(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(parts...))
	require.NoError(t, err)
	return string(data)
}

func clearMergeEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MPMERGE_CONFIG",
		config.EnvSourceCmd, config.EnvTargetCmd, config.EnvIndependent,
		config.EnvPreloadSubpackages, config.EnvIndent,
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// execute runs the root command with args, pointing --config at the
// workspace config file.
func (ws *workspace) execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", ws.config, "--timestamps=false"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}
