package merger

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
	"github.com/Lisheri/all-mp-merge-test-cli/internal/testutil"
)

func TestPlan_PreviewsWithoutWriting(t *testing.T) {
	fs := setup(t)
	builder := &fakeBuilder{}

	plan, err := New(fs, builder, &testutil.Reporter{}).Plan(defaultOptions())
	require.NoError(t, err)

	assert.Empty(t, builder.calls)
	assert.Equal(t, "sourceBundle/", plan.SubpackageRoot)
	assert.Equal(t, filepath.Join(sourceRoot, "pages", "a", "a.js"), plan.EntryPage)
	assert.Equal(t, "pages/a/a.js", plan.EntryFile)
	assert.True(t, plan.Locate.Found)
	assert.Equal(t, "../../app.js", plan.Locate.RelativePath)

	assert.Equal(t, []string{"app.js", "pages/a/a.js", "pages/b/b.js"}, plan.Files)
	assert.Equal(t, []string{"app.json", "app.wxss"}, plan.Stripped)
	assert.Equal(t, `{"pages":["index"],"subPackages":[]}`, string(plan.Before))
	assert.Equal(t,
		`{"pages":["index"],"subPackages":[{"root":"sourceBundle/","pages":["pages/a/a","pages/b/b"],"independent":false}]}`,
		string(plan.After))

	// Nothing changed on disk.
	assert.True(t, testutil.Exists(fs, filepath.Join(sourceRoot, "app.json")))
	assert.Equal(t, `"use strict";Page({})`,
		testutil.ReadFile(t, fs, filepath.Join(sourceRoot, "pages", "a", "a.js")))
	assert.Equal(t, `{"pages":["index"],"subPackages":[]}`,
		testutil.ReadFile(t, fs, filepath.Join(targetRoot, "app.json")))
	assert.False(t, testutil.Exists(fs, filepath.Join(targetRoot, "sourceBundle")))
}

func TestPlan_ReportsLocatorMiss(t *testing.T) {
	fs := memfs.New()
	files := sourceFiles()
	delete(files, "app.js")
	testutil.WriteBundle(t, fs, sourceRoot, files)
	testutil.WriteBundle(t, fs, targetRoot, targetFiles())

	plan, err := New(fs, &fakeBuilder{}, &testutil.Reporter{}).Plan(defaultOptions())
	require.NoError(t, err)
	assert.False(t, plan.Locate.Found)
}

func TestPlan_Errors(t *testing.T) {
	t.Run("missing outputs", func(t *testing.T) {
		_, err := New(memfs.New(), &fakeBuilder{}, &testutil.Reporter{}).Plan(Options{})
		assert.ErrorIs(t, err, oerrors.ErrConfiguration)
	})

	t.Run("invalid target manifest", func(t *testing.T) {
		fs := memfs.New()
		testutil.WriteBundle(t, fs, sourceRoot, sourceFiles())
		testutil.WriteBundle(t, fs, targetRoot, map[string]string{"app.json": `[]`})

		_, err := New(fs, &fakeBuilder{}, &testutil.Reporter{}).Plan(defaultOptions())
		assert.ErrorIs(t, err, oerrors.ErrManifestParse)
	})
}
