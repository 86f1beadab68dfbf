package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffManifests_NoChanges(t *testing.T) {
	doc := []byte(`{"pages":["index"]}`)

	out, err := DiffManifests(doc, doc, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiffManifests_AddedSubpackage(t *testing.T) {
	before := []byte(`{"pages":["index"],"subPackages":[]}`)
	after := []byte(`{"pages":["index"],"subPackages":[{"root":"source/","pages":["pages/a/a"],"independent":false}]}`)

	out, err := DiffManifests(before, after, false)
	require.NoError(t, err)
	assert.Contains(t, out, "subPackages")
	assert.Contains(t, out, "source/")
}

func TestDiffManifests_InvalidJSON(t *testing.T) {
	_, err := DiffManifests([]byte(`{`), []byte(`{}`), false)
	assert.Error(t, err)
}
