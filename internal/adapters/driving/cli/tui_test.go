package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuiCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})

	require.NoError(t, err)
	assert.Equal(t, "tui", cmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestTuiCmd_HelpMentionsControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "Quit")
}
