package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered under %q", name, parent.Name())
	return nil
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	require.Equal(t, "podflow", root.Name())

	org := findCommand(t, root, "org")
	findCommand(t, org, "create")
	findCommand(t, org, "list")
	findCommand(t, org, "delete")

	findCommand(t, root, "migrate")

	keys := findCommand(t, root, "keys")
	rotate := findCommand(t, keys, "rotate")
	assert.NotNil(t, rotate.RunE)
}
