package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	t.Run("should register all subcommands", func(t *testing.T) {
		cmd := NewRootCmd("test")

		names := map[string]bool{}
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		assert.True(t, names["process"])
		assert.True(t, names["combine"])
	})

	t.Run("should carry the injected version", func(t *testing.T) {
		cmd := NewRootCmd("1.2.3")

		assert.Equal(t, "1.2.3", cmd.Version)
	})

	t.Run("should expose shared flags", func(t *testing.T) {
		cmd := NewRootCmd("test")

		require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
		require.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	})
}
