package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromSubcommand(t *testing.T) {
	root := &cobra.Command{Use: "snipdeck"}
	AddFlags(root)
	child := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommand(child)

	root.SetArgs([]string{"list", "--format", "yaml", "-q", "--source", "./snips", "--log-level", "debug"})
	require.NoError(t, root.Execute())

	flags, err := Parse(child)
	require.NoError(t, err)
	assert.Equal(t, "yaml", flags.Output)
	assert.True(t, flags.Quiet)
	assert.False(t, flags.Verbose)
	assert.Equal(t, "./snips", flags.Source)
	assert.Equal(t, "debug", flags.LogLevel)
}
