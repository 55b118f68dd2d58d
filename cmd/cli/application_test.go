package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/modgen/cmd/cli"
	"github.com/temirov/modgen/internal/execshell"
)

const (
	testPromptInputConstant           = "A tiny module\njanedoe\nJane Doe\njane@example.com\n"
	testConfigurationFileNameConstant = "config.yaml"
	testModuleNameConstant            = "my-app"
)

type recordingCommandRunner struct {
	executedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.executedCommands = append(runner.executedCommands, command)
	return execshell.ExecutionResult{}, nil
}

type staticExecutableLocator struct {
	availableExecutables map[string]bool
}

func (locator staticExecutableLocator) LookPath(executableName string) (string, error) {
	if locator.availableExecutables[executableName] {
		return filepath.Join("/usr/bin", executableName), nil
	}
	return "", errors.New("executable file not found in $PATH")
}

type applicationHarness struct {
	application *cli.Application
	runner      *recordingCommandRunner
	output      *bytes.Buffer
	logOutput   *bytes.Buffer
}

func newApplicationHarness(testInstance *testing.T, availableExecutables ...string) *applicationHarness {
	testInstance.Helper()
	testInstance.Setenv("XDG_CONFIG_HOME", testInstance.TempDir())

	availability := map[string]bool{}
	for _, executableName := range availableExecutables {
		availability[executableName] = true
	}

	harness := &applicationHarness{
		runner:    &recordingCommandRunner{},
		output:    &bytes.Buffer{},
		logOutput: &bytes.Buffer{},
	}
	application, applicationError := cli.NewApplicationWithDependencies(cli.ApplicationDependencies{
		LogOutput:         harness.logOutput,
		CommandRunner:     harness.runner,
		ExecutableLocator: staticExecutableLocator{availableExecutables: availability},
		EnvironmentLookup: func(string) (string, bool) { return "", false },
	})
	require.NoError(testInstance, applicationError)
	harness.application = application
	return harness
}

func (harness *applicationHarness) execute(arguments ...string) error {
	rootCommand := harness.application.RootCommand()
	rootCommand.SetIn(strings.NewReader(testPromptInputConstant))
	rootCommand.SetOut(harness.output)
	rootCommand.SetErr(harness.output)
	rootCommand.SetArgs(arguments)
	return harness.application.Execute()
}

func TestApplicationGeneratesProjectWithEmbeddedDefaults(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	parentDirectory := testInstance.TempDir()

	executeError := harness.execute("npm", testModuleNameConstant, "--directory", parentDirectory, "-c=no", "-g=no", "-n")
	require.NoError(testInstance, executeError)

	configuration := harness.application.Configuration()
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "npm", configuration.Tools.NPM.PackageManager)
	require.Equal(testInstance, "0.0.0", configuration.Tools.NPM.InitialVersion)
	require.True(testInstance, configuration.Tools.NPM.Install)

	projectDirectory := filepath.Join(parentDirectory, testModuleNameConstant)
	manifestContent, readError := os.ReadFile(filepath.Join(projectDirectory, "package.json"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(manifestContent), `"name": "my-app"`)
	require.Contains(testInstance, string(manifestContent), `"version": "0.0.0"`)

	_, headError := os.Stat(filepath.Join(projectDirectory, ".git", "HEAD"))
	require.NoError(testInstance, headError)
	require.Empty(testInstance, harness.runner.executedCommands)
	require.Contains(testInstance, harness.output.String(), "Created 10 files")
}

func TestApplicationPackageManagerPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		fileContent            string
		environmentValue       string
		extraArguments         []string
		expectedPackageManager execshell.CommandName
		expectedVersion        string
	}{
		{
			name:                   "configuration_file",
			fileContent:            "tools:\n  npm:\n    package_manager: yarn\n    initial_version: 1.0.0\n",
			expectedPackageManager: execshell.CommandYarn,
			expectedVersion:        "1.0.0",
		},
		{
			name:                   "environment_overrides_file",
			fileContent:            "tools:\n  npm:\n    package_manager: yarn\n",
			environmentValue:       "pnpm",
			expectedPackageManager: execshell.CommandPNPM,
			expectedVersion:        "0.0.0",
		},
		{
			name:                   "flag_overrides_environment",
			fileContent:            "tools:\n  npm:\n    package_manager: yarn\n",
			environmentValue:       "pnpm",
			extraArguments:         []string{"--package-manager", "npm"},
			expectedPackageManager: execshell.CommandNPM,
			expectedVersion:        "0.0.0",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			if len(testCase.environmentValue) > 0 {
				subtest.Setenv("MODGEN_TOOLS_NPM_PACKAGE_MANAGER", testCase.environmentValue)
			}
			harness := newApplicationHarness(subtest, "git", "npm", "yarn", "pnpm")

			configurationDirectory := subtest.TempDir()
			configurationPath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
			require.NoError(subtest, os.WriteFile(configurationPath, []byte(testCase.fileContent), 0o600))

			parentDirectory := subtest.TempDir()
			arguments := append([]string{"--config", configurationPath, "npm", testModuleNameConstant, "--directory", parentDirectory, "-c=no", "-g=no"}, testCase.extraArguments...)
			require.NoError(subtest, harness.execute(arguments...))

			projectDirectory := filepath.Join(parentDirectory, testModuleNameConstant)
			executedCommands := harness.runner.executedCommands
			require.Len(subtest, executedCommands, 4)
			require.Equal(subtest, []string{"config", "--get", "user.name"}, executedCommands[0].Details.Arguments)
			require.Equal(subtest, []string{"config", "--get", "user.email"}, executedCommands[1].Details.Arguments)
			require.Equal(subtest, execshell.CommandGit, executedCommands[2].Name)
			require.Equal(subtest, []string{"init"}, executedCommands[2].Details.Arguments)
			require.Equal(subtest, testCase.expectedPackageManager, executedCommands[3].Name)
			require.Equal(subtest, []string{"install"}, executedCommands[3].Details.Arguments)
			require.Equal(subtest, projectDirectory, executedCommands[3].Details.WorkingDirectory)

			manifestContent, readError := os.ReadFile(filepath.Join(projectDirectory, "package.json"))
			require.NoError(subtest, readError)
			require.Contains(subtest, string(manifestContent), `"version": "`+testCase.expectedVersion+`"`)
			require.Contains(subtest, string(manifestContent), string(testCase.expectedPackageManager)+" run build")
		})
	}
}

func TestApplicationStructuredLogging(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	parentDirectory := testInstance.TempDir()

	executeError := harness.execute("--log-level", "debug", "--log-format", "structured", "npm", testModuleNameConstant, "--directory", parentDirectory, "-c=no", "-g=no", "-n")
	require.NoError(testInstance, executeError)

	logContent := harness.logOutput.String()
	require.Contains(testInstance, logContent, `"msg":"configuration initialized"`)
	require.Contains(testInstance, logContent, `"log_format":"structured"`)
	require.Contains(testInstance, logContent, `"msg":"generating npm module"`)
}

func TestApplicationRejectsInvalidSettings(testInstance *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		environment map[string]string
	}{
		{name: "unsupported_log_level", arguments: []string{"--log-level", "verbose", "npm", testModuleNameConstant}},
		{name: "unsupported_log_format", arguments: []string{"--log-format", "xml", "npm", testModuleNameConstant}},
		{name: "invalid_initial_version", arguments: []string{"npm", testModuleNameConstant}, environment: map[string]string{"MODGEN_TOOLS_NPM_INITIAL_VERSION": "latest"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			for environmentKey, environmentValue := range testCase.environment {
				subtest.Setenv(environmentKey, environmentValue)
			}
			harness := newApplicationHarness(subtest)
			require.Error(subtest, harness.execute(testCase.arguments...))
			require.Empty(subtest, harness.runner.executedCommands)
		})
	}
}

func TestEmbeddedDefaultConfiguration(testInstance *testing.T) {
	content, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)
	require.Contains(testInstance, string(content), "package_manager: npm")

	content[0] = '#'
	reloadedContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), reloadedContent[0])
}
