package execshell

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeEnvironmentAppendsOverridesInKeyOrder(t *testing.T) {
	merged := mergeEnvironment([]string{"PATH=/usr/bin"}, map[string]string{
		"NPM_CONFIG_FUND":     "false",
		"GIT_TERMINAL_PROMPT": "0",
	})

	require.Equal(t, []string{"PATH=/usr/bin", "GIT_TERMINAL_PROMPT=0", "NPM_CONFIG_FUND=false"}, merged)
}

func TestOSCommandRunnerAppliesEnvironmentAndWorkingDirectory(t *testing.T) {
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		t.Skip("sh is not available")
	}
	t.Setenv("NODE_ENV", "production")
	workingDirectory := t.TempDir()

	result, runError := NewOSCommandRunner().Run(context.Background(), ShellCommand{
		Name: CommandName("sh"),
		Details: CommandDetails{
			Arguments:            []string{"-c", `printf '%s|%s' "$NODE_ENV" "$(pwd -P)"`},
			WorkingDirectory:     workingDirectory,
			EnvironmentVariables: map[string]string{"NODE_ENV": "development"},
		},
	})
	require.NoError(t, runError)

	resolvedDirectory, resolveError := filepath.EvalSymlinks(workingDirectory)
	require.NoError(t, resolveError)
	require.Equal(t, "development|"+resolvedDirectory, result.StandardOutput)
	require.Zero(t, result.ExitCode)
}

func TestOSCommandRunnerReportsExitCode(t *testing.T) {
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		t.Skip("sh is not available")
	}

	result, runError := NewOSCommandRunner().Run(context.Background(), ShellCommand{
		Name:    CommandName("sh"),
		Details: CommandDetails{Arguments: []string{"-c", "echo failure >&2; exit 3"}},
	})
	require.NoError(t, runError)
	require.Equal(t, 3, result.ExitCode)
	require.Equal(t, "failure\n", result.StandardError)
}
