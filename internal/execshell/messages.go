package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant             = "Running %s"
	genericSuccessTemplateConstant           = "Completed %s"
	genericFailureTemplateConstant           = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant  = "%s failed: %s"
	commandLabelTemplateConstant             = "%s%s"
	commandNameWithArgumentsTemplateConstant = "%s %s"
	workingDirectorySuffixTemplateConstant   = " (in %s)"
	commandArgumentsJoinSeparatorConstant    = " "
	standardErrorSuffixTemplateConstant      = ": %s"
	unknownFailureMessageConstant            = "unknown error"
	emptyStringConstant                      = ""
	defaultWorkingDirectoryLabelConstant     = "current directory"
	fallbackUnknownValueLabelConstant        = "unknown"
	flagPrefixConstant                       = "-"
)

const (
	gitConfigSubcommandNameConstant = "config"
	gitConfigGetFlagConstant        = "--get"
	gitInitSubcommandNameConstant   = "init"
)

const (
	gitConfigLookupStartTemplateConstant            = "Reading %s from git configuration in %s"
	gitConfigLookupSuccessTemplateConstant          = "%s in %s resolved to %s"
	gitConfigLookupEmptySuccessTemplateConstant     = "%s in %s is empty"
	gitConfigLookupFailureTemplateConstant          = "%s is not configured in %s (exit code %d%s)"
	gitConfigLookupExecutionFailureTemplateConstant = "Unable to read %s in %s: %s"
	gitInitStartTemplateConstant                    = "Initializing git repository in %s"
	gitInitSuccessTemplateConstant                  = "Initialized git repository in %s"
	gitInitFailureTemplateConstant                  = "Failed to initialize git repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant         = "Unable to initialize git repository in %s: %s"
)

const (
	packageManagerInstallSubcommandConstant               = "install"
	packageManagerAddSubcommandConstant                   = "add"
	packageManagerAllDependenciesLabelConstant            = "dependencies"
	packageManagerInstallStartTemplateConstant            = "Installing %s with %s in %s"
	packageManagerInstallSuccessTemplateConstant          = "Installed %s with %s in %s"
	packageManagerInstallFailureTemplateConstant          = "Failed to install %s with %s in %s (exit code %d%s)"
	packageManagerInstallExecutionFailureTemplateConstant = "Unable to install %s with %s in %s: %s"
)

const (
	prettierParserFlagConstant               = "--parser"
	prettierStartTemplateConstant            = "Formatting %s source with prettier"
	prettierSuccessTemplateConstant          = "Formatted %s source with prettier"
	prettierFailureTemplateConstant          = "prettier could not format %s source (exit code %d%s)"
	prettierExecutionFailureTemplateConstant = "Unable to run prettier for %s source: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandNPM, CommandYarn, CommandPNPM:
		return formatter.describePackageManagerMessage(command, result, failure, stage)
	case CommandPrettier:
		return formatter.describePrettierMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitInitSubcommandNameConstant:
		return formatter.describeGitInitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitConfigGetFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	configurationKey := formatter.ensureValue(findFlagValue(arguments, gitConfigGetFlagConstant))
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigLookupStartTemplateConstant, configurationKey, workingDirectory)
	case messageStageSuccess:
		trimmedValue := strings.TrimSpace(result.StandardOutput)
		if len(trimmedValue) == 0 {
			return fmt.Sprintf(gitConfigLookupEmptySuccessTemplateConstant, configurationKey, workingDirectory)
		}
		return fmt.Sprintf(gitConfigLookupSuccessTemplateConstant, configurationKey, workingDirectory, trimmedValue)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigLookupFailureTemplateConstant, configurationKey, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitConfigLookupExecutionFailureTemplateConstant, configurationKey, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitInitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	targetDirectory := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(targetDirectory) == 0 {
		targetDirectory = formatter.describeWorkingDirectory(command)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitInitStartTemplateConstant, targetDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitInitSuccessTemplateConstant, targetDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitInitFailureTemplateConstant, targetDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, targetDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePackageManagerMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	if subcommand != packageManagerInstallSubcommandConstant && subcommand != packageManagerAddSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	packagesLabel := formatter.describePackages(arguments[1:])
	managerName := string(command.Name)
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(packageManagerInstallStartTemplateConstant, packagesLabel, managerName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(packageManagerInstallSuccessTemplateConstant, packagesLabel, managerName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(packageManagerInstallFailureTemplateConstant, packagesLabel, managerName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(packageManagerInstallExecutionFailureTemplateConstant, packagesLabel, managerName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePrettierMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	parserName := formatter.ensureValue(findFlagValue(command.Details.Arguments, prettierParserFlagConstant))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(prettierStartTemplateConstant, parserName)
	case messageStageSuccess:
		return fmt.Sprintf(prettierSuccessTemplateConstant, parserName)
	case messageStageFailure:
		return fmt.Sprintf(prettierFailureTemplateConstant, parserName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(prettierExecutionFailureTemplateConstant, parserName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf(commandNameWithArgumentsTemplateConstant, commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) describePackages(arguments []string) string {
	packageNames := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		packageNames = append(packageNames, trimmed)
	}
	if len(packageNames) == 0 {
		return packageManagerAllDependenciesLabelConstant
	}
	return strings.Join(packageNames, ", ")
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
