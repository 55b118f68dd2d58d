package scaffold

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/modgen/internal/execshell"
)

const (
	installSubcommandConstant               = "install"
	addSubcommandConstant                   = "add"
	npmSaveDevFlagConstant                  = "--save-dev"
	yarnDevFlagConstant                     = "--dev"
	nodeEnvironmentVariableConstant         = "NODE_ENV"
	nodeDevelopmentEnvironmentConstant      = "development"
	packageManagerUnavailableTemplate       = "%s is not installed"
	installFailedErrorTemplateConstant      = "%s install failed: %w"
	installerExecutorMissingMessageConstant = "package installer executor not configured"
)

// ErrInstallerExecutorNotConfigured indicates the installer has no executor.
var ErrInstallerExecutorNotConfigured = errors.New(installerExecutorMissingMessageConstant)

// InstallRequest names the project directory, installer and optional extra packages.
type InstallRequest struct {
	Directory      string
	PackageManager execshell.CommandName
	Packages       []string
}

// PackageInstaller installs dependencies for a generated project.
type PackageInstaller interface {
	Install(executionContext context.Context, request InstallRequest) error
}

// PackageManagerExecutor runs package managers through the shell layer.
type PackageManagerExecutor interface {
	IsAvailable(commandName execshell.CommandName) bool
	ExecutePackageManager(executionContext context.Context, packageManager execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ShellPackageInstaller invokes npm, yarn or pnpm.
type ShellPackageInstaller struct {
	executor PackageManagerExecutor
}

// NewShellPackageInstaller constructs an installer.
func NewShellPackageInstaller(executor PackageManagerExecutor) (*ShellPackageInstaller, error) {
	if executor == nil {
		return nil, ErrInstallerExecutorNotConfigured
	}
	return &ShellPackageInstaller{executor: executor}, nil
}

// Install installs the manifest's dependencies, or adds request.Packages as
// development dependencies when any are named.
func (installer *ShellPackageInstaller) Install(executionContext context.Context, request InstallRequest) error {
	if !installer.executor.IsAvailable(request.PackageManager) {
		return fmt.Errorf(packageManagerUnavailableTemplate, request.PackageManager)
	}
	_, executionError := installer.executor.ExecutePackageManager(executionContext, request.PackageManager, execshell.CommandDetails{
		Arguments:        installArguments(request.PackageManager, request.Packages),
		WorkingDirectory: request.Directory,
		// NODE_ENV=production in the caller's shell would skip devDependencies.
		EnvironmentVariables: map[string]string{nodeEnvironmentVariableConstant: nodeDevelopmentEnvironmentConstant},
	})
	if executionError != nil {
		return fmt.Errorf(installFailedErrorTemplateConstant, request.PackageManager, executionError)
	}
	return nil
}

func installArguments(packageManager execshell.CommandName, packages []string) []string {
	if len(packages) == 0 {
		return []string{installSubcommandConstant}
	}
	switch packageManager {
	case execshell.CommandYarn:
		return append([]string{addSubcommandConstant, yarnDevFlagConstant}, packages...)
	case execshell.CommandPNPM:
		return append([]string{addSubcommandConstant, npmSaveDevFlagConstant}, packages...)
	default:
		return append([]string{installSubcommandConstant, npmSaveDevFlagConstant}, packages...)
	}
}
