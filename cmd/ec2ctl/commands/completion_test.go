package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
	assert.True(t, cmd.DisableFlagsInUseLine)
}

func TestCompletion_EveryShellHasScriptAndHelp(t *testing.T) {
	cmd := Completion()

	assert.Len(t, completionScripts, len(completionShells))
	for _, shell := range completionShells {
		assert.Contains(t, completionScripts, shell)
		assert.Contains(t, cmd.Long, "ec2ctl completion "+shell)
	}
}

func TestCompletion_Shells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			ta := newTestApp(t, nil)

			require.NoError(t, ta.execute("completion", shell))
			assert.Contains(t, ta.stdout.String(), "ec2ctl")
		})
	}
}

func TestCompletion_InvalidShell(t *testing.T) {
	ta := newTestApp(t, nil)
	assert.Error(t, ta.execute("completion", "tcsh"))
}
