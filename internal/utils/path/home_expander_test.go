package pathutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/modgen/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/jane"

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", input: "~/projects", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects")},
		{name: "absolute_unchanged", input: "/srv/projects", expectedPath: "/srv/projects"},
		{name: "other_user_unchanged", input: "~bob/projects", expectedPath: "~bob/projects"},
		{name: "empty_unchanged", input: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderProviderFailureLeavesPath(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/projects", expander.Expand("~/projects"))
}

func TestHomeExpanderResolveDirectory(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	resolvedDefault, resolveError := expander.ResolveDirectory("  ")
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, workingDirectory, resolvedDefault)

	resolvedHome, resolveError := expander.ResolveDirectory("~/code/../projects")
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, filepath.Join(testHomeDirectoryConstant, "projects"), resolvedHome)
}
