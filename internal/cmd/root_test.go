package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "mpmerge", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"config", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", root.PersistentFlags().Lookup("verbose").Shorthand)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"merge", "plan", "locate", "vet", "config", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRoot_UnreadableConfigIsNotFatal(t *testing.T) {
	ws := newWorkspace(t)
	assert.NoError(t, writeFile(ws.config, "build: [unclosed"))

	stdout, _, err := ws.execute(t, "locate", ws.source+"/pages/a/a.js", "--root", ws.source)
	assert.NoError(t, err)
	assert.Equal(t, "../../app.js\n", stdout)
}
