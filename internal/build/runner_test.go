package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/Lisheri/all-mp-merge-test-cli/internal/errors"
)

func TestRun_WritesInProjectDir(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	r := NewRunner(&stdout, nil)
	err := r.Run(context.Background(), dir, `mkdir dist && echo built > dist/app.json && echo ok`)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "dist", "app.json"))
	require.NoError(t, err)
	assert.Equal(t, "built\n", string(got))
	assert.Equal(t, "ok\n", stdout.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	dir := t.TempDir()

	err := NewRunner(nil, nil).Run(context.Background(), dir, `exit 3`)
	require.Error(t, err)

	var buildErr *Error
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, 3, buildErr.Code)
	assert.Equal(t, dir, buildErr.Dir)
	assert.ErrorIs(t, err, oerrors.ErrBuild)
}

func TestRun_EmptyCommand(t *testing.T) {
	assert.NoError(t, NewRunner(nil, nil).Run(context.Background(), "/nonexistent", "  "))
}

func TestRun_SyntaxError(t *testing.T) {
	err := NewRunner(nil, nil).Run(context.Background(), t.TempDir(), `if then`)
	assert.Error(t, err)
}

func TestRun_UsesEnv(t *testing.T) {
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Env: []string{"MODE=production"}}

	require.NoError(t, r.Run(context.Background(), t.TempDir(), `echo "$MODE"`))
	assert.Equal(t, "production\n", stdout.String())
}
