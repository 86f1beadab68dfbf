package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lisheri/all-mp-merge-test-cli/internal/manifest"
)

func TestSubpackageTable(t *testing.T) {
	out := SubpackageTable([]manifest.SubPackage{
		{Root: "pkgA/", Pages: []string{"a", "b", "c"}},
		{Root: "sourceBundle/", Pages: []string{"x", "y"}, Independent: true},
	}, 1)

	assert.Contains(t, out, "ROOT")
	assert.Contains(t, out, "INDEPENDENT")
	assert.Contains(t, out, "sourceBundle/ (new)")
	assert.NotContains(t, out, "pkgA/ (new)")

	var added string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "sourceBundle/") {
			added = line
		}
	}
	assert.Contains(t, added, "true")
	assert.Contains(t, added, "2")
}

func TestSubpackageTable_NoneAdded(t *testing.T) {
	out := SubpackageTable([]manifest.SubPackage{{Root: "pkgA/"}}, -1)

	assert.Contains(t, out, "pkgA/")
	assert.NotContains(t, out, "(new)")
}
