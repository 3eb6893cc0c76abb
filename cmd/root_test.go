package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "greeneye", root.Use)

	for _, name := range []string{"run", "score", "inspect", "report", "serve"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, "Expected subcommand %s", name)
		assert.Equal(t, name, cmd.Name())
	}
}
