package scaffold

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/modgen/internal/execshell"
	"github.com/temirov/modgen/internal/githubauth"
	"github.com/temirov/modgen/internal/identity"
	"github.com/temirov/modgen/internal/ui"
	"github.com/temirov/modgen/internal/utils"
	"github.com/temirov/modgen/internal/utils/flags"
	pathutils "github.com/temirov/modgen/internal/utils/path"
)

const (
	npmCommandUseConstant                 = "npm <name>"
	npmCommandShortDescriptionConstant    = "Generate a new npm module"
	npmCommandLongDescriptionConstant     = "npm asks a few questions, renders a TypeScript npm module into <directory>/<repo-name>, initializes a git repository, and installs dependencies."
	npmCommandExampleConstant             = "  modgen npm my-app\n  modgen npm @acme/widgets --org acme --cli --coverage=no"
	organizationFlagNameConstant          = "org"
	organizationFlagShorthandConstant     = "o"
	organizationFlagUsageConstant         = "GitHub organization used as the namespace instead of asking for a username"
	cliFlagNameConstant                   = "cli"
	cliFlagShorthandConstant              = "c"
	cliFlagUsageConstant                  = "Add a command-line entry point without asking"
	noInstallFlagNameConstant             = "no-install"
	noInstallFlagShorthandConstant        = "n"
	noInstallFlagUsageConstant            = "Skip dependency installation"
	coverageFlagNameConstant              = "coverage"
	coverageFlagShorthandConstant         = "g"
	coverageFlagUsageConstant             = "Enable code coverage without asking"
	coverallsFlagNameConstant             = "coveralls"
	coverallsFlagShorthandConstant        = "l"
	coverallsFlagUsageConstant            = "Publish coverage to coveralls without asking (implies coverage)"
	directoryFlagNameConstant             = "directory"
	directoryFlagUsageConstant            = "Parent directory for the generated project"
	packageManagerFlagNameConstant        = "package-manager"
	packageManagerFlagUsageConstant       = "Package manager used to install dependencies"
	commandExecutionErrorTemplateConstant = "npm module generation failed: %w"
	configurationInvalidTemplateConstant  = "invalid npm configuration: %w"
	directoryResolveErrorTemplateConstant = "unable to resolve directory %q: %w"
	dependencyWiringErrorTemplateConstant = "unable to prepare npm command: %w"
	configurationFileMessageConstant      = "npm command configuration"
	logFieldConfigurationFileConstant     = "config_file"
	logFieldGitHubLookupConstant          = "github_lookup"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current npm command configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the npm command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	CommandRunner                execshell.CommandRunner
	ExecutableLocator            execshell.ExecutableLocator
	WorkingDirectoryProvider     identity.WorkingDirectoryProvider
	FileSystemFactory            ProjectFileSystemFactory
	Clock                        Clock
	HomeExpander                 *pathutils.HomeExpander
	HTTPClient                   *http.Client
	EnvironmentLookup            githubauth.EnvironmentLookup
	Input                        io.Reader
}

// Build constructs the npm command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultConfiguration()
	npmCommand := &cobra.Command{
		Use:     npmCommandUseConstant,
		Short:   npmCommandShortDescriptionConstant,
		Long:    npmCommandLongDescriptionConstant,
		Example: npmCommandExampleConstant,
		Args:    cobra.ExactArgs(1),
		RunE:    builder.run,
	}

	commandFlags := npmCommand.Flags()
	commandFlags.StringP(organizationFlagNameConstant, organizationFlagShorthandConstant, "", organizationFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, cliFlagNameConstant, cliFlagShorthandConstant, false, cliFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, coverageFlagNameConstant, coverageFlagShorthandConstant, false, coverageFlagUsageConstant)
	flags.AddToggleFlag(commandFlags, nil, coverallsFlagNameConstant, coverallsFlagShorthandConstant, false, coverallsFlagUsageConstant)
	commandFlags.BoolP(noInstallFlagNameConstant, noInstallFlagShorthandConstant, false, noInstallFlagUsageConstant)
	commandFlags.String(directoryFlagNameConstant, "", directoryFlagUsageConstant)
	commandFlags.String(packageManagerFlagNameConstant, "", flags.FormatChoiceUsage(defaults.PackageManager, SupportedPackageManagers, packageManagerFlagUsageConstant))

	return npmCommand, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	if validationError := configuration.Validate(); validationError != nil {
		return fmt.Errorf(configurationInvalidTemplateConstant, validationError)
	}

	options, optionsError := builder.parseOptions(command, arguments[0], configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	if configurationFilePath, available := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); available {
		logger.Debug(configurationFileMessageConstant, zap.String(logFieldConfigurationFileConstant, configurationFilePath), zap.Bool(logFieldGitHubLookupConstant, options.GitHubLookup))
	}

	service, wiringError := builder.buildService(command, configuration, logger)
	if wiringError != nil {
		return fmt.Errorf(dependencyWiringErrorTemplateConstant, wiringError)
	}

	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, moduleName string, configuration Configuration) (CommandOptions, error) {
	commandFlags := command.Flags()
	options := CommandOptions{
		ModuleName:     moduleName,
		Install:        configuration.Install,
		Packages:       configuration.Packages,
		InitialVersion: configuration.InitialVersion,
		GitHubLookup:   configuration.GitHubLookup,
	}

	if commandFlags.Changed(organizationFlagNameConstant) {
		organization, organizationError := commandFlags.GetString(organizationFlagNameConstant)
		if organizationError != nil {
			return CommandOptions{}, organizationError
		}
		options.Presets.Organization = Answered(organization)
	}
	options.Presets.CLI = toggleAnswer(command, cliFlagNameConstant)
	options.Presets.Coverage = toggleAnswer(command, coverageFlagNameConstant)
	options.Presets.Coveralls = toggleAnswer(command, coverallsFlagNameConstant)

	noInstall, noInstallError := commandFlags.GetBool(noInstallFlagNameConstant)
	if noInstallError != nil {
		return CommandOptions{}, noInstallError
	}
	if noInstall {
		options.Install = false
	}

	directoryValue := configuration.Directory
	if commandFlags.Changed(directoryFlagNameConstant) {
		directoryValue, _ = commandFlags.GetString(directoryFlagNameConstant)
	}
	parentDirectory, directoryError := builder.resolveHomeExpander().ResolveDirectory(directoryValue)
	if directoryError != nil {
		return CommandOptions{}, fmt.Errorf(directoryResolveErrorTemplateConstant, directoryValue, directoryError)
	}
	options.ParentDirectory = parentDirectory

	packageManagerValue := configuration.PackageManager
	if commandFlags.Changed(packageManagerFlagNameConstant) {
		packageManagerValue, _ = commandFlags.GetString(packageManagerFlagNameConstant)
	}
	packageManager, choiceError := flags.ParseChoice(packageManagerValue, DefaultConfiguration().PackageManager, SupportedPackageManagers)
	if choiceError != nil {
		return CommandOptions{}, choiceError
	}
	options.PackageManager = execshell.CommandName(packageManager)

	return options, nil
}

func (builder *CommandBuilder) buildService(command *cobra.Command, configuration Configuration, logger *zap.Logger) (*Service, error) {
	runner := builder.CommandRunner
	if runner == nil {
		runner = execshell.NewOSCommandRunner()
	}
	shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, runner, builder.resolveEventObserver())
	if executorError != nil {
		return nil, executorError
	}
	if builder.ExecutableLocator != nil {
		shellExecutor = shellExecutor.WithExecutableLocator(builder.ExecutableLocator)
	}

	var usernameLookup identity.UsernameLookup
	if configuration.GitHubLookup {
		lookupOptions := identity.GitHubLookupOptions{BaseURL: configuration.GitHubAPIBaseURL, HTTPClient: builder.HTTPClient}
		lookupOptions.Token, _ = githubauth.ResolveTokenFrom(builder.resolveEnvironmentLookup())
		githubLookup, lookupError := identity.NewGitHubUsernameLookup(lookupOptions)
		if lookupError != nil {
			return nil, lookupError
		}
		usernameLookup = githubLookup
	}

	identityResolver, resolverError := identity.NewResolver(shellExecutor, usernameLookup, logger)
	if resolverError != nil {
		return nil, resolverError
	}
	identityResolver = identityResolver.WithWorkingDirectoryProvider(builder.WorkingDirectoryProvider)

	input := builder.Input
	if input == nil {
		input = command.InOrStdin()
	}
	questionnaire, questionnaireError := NewQuestionnaire(NewIOPrompter(input, command.OutOrStdout()))
	if questionnaireError != nil {
		return nil, questionnaireError
	}

	catalog, catalogError := LoadTemplateCatalog()
	if catalogError != nil {
		return nil, catalogError
	}
	formatter, formatterError := NewFormatter(shellExecutor, configuration.Prettier, logger)
	if formatterError != nil {
		return nil, formatterError
	}
	actionRunner, runnerError := NewTemplateActionRunner(catalog.Templates(), formatter, logger)
	if runnerError != nil {
		return nil, runnerError
	}
	repositoryInitializer, repositoryError := NewRepositoryInitializer(shellExecutor, logger)
	if repositoryError != nil {
		return nil, repositoryError
	}
	installer, installerError := NewShellPackageInstaller(shellExecutor)
	if installerError != nil {
		return nil, installerError
	}

	return NewService(ServiceDependencies{
		Identity:          identityResolver,
		Questionnaire:     questionnaire,
		Catalog:           catalog,
		ActionRunner:      actionRunner,
		Repository:        repositoryInitializer,
		Installer:         installer,
		FileSystemFactory: builder.FileSystemFactory,
		Progress:          ui.NewProgressPrinter(command.OutOrStdout()),
		Clock:             builder.Clock,
		Logger:            logger,
	})
}

func toggleAnswer(command *cobra.Command, flagName string) Answer[bool] {
	toggleValue, provided := flags.ToggleState(command.Flags(), flagName)
	if !provided {
		return Skipped[bool]()
	}
	return Answered(toggleValue)
}

func (builder *CommandBuilder) resolveEventObserver() execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	consoleLogger := builder.resolveLogger()
	if builder.ConsoleLoggerProvider != nil {
		if providedLogger := builder.ConsoleLoggerProvider(); providedLogger != nil {
			consoleLogger = providedLogger
		}
	}
	return ui.NewConsoleCommandEventLogger(consoleLogger)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander == nil {
		return pathutils.NewHomeExpander()
	}
	return builder.HomeExpander
}

func (builder *CommandBuilder) resolveEnvironmentLookup() githubauth.EnvironmentLookup {
	if builder.EnvironmentLookup == nil {
		return os.LookupEnv
	}
	return builder.EnvironmentLookup
}
