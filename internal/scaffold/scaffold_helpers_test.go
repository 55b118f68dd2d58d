package scaffold_test

import (
	"context"
	"errors"
	"time"

	"github.com/temirov/modgen/internal/execshell"
	"github.com/temirov/modgen/internal/scaffold"
)

type scriptedPrompter struct {
	answers         []string
	confirmations   []bool
	askedQuestions  []scaffold.Question
	confirmedLabels []string
}

func (prompter *scriptedPrompter) Ask(question scaffold.Question) (string, error) {
	prompter.askedQuestions = append(prompter.askedQuestions, question)
	if len(prompter.answers) == 0 {
		return "", scaffold.ErrPromptInputClosed
	}
	answer := prompter.answers[0]
	prompter.answers = prompter.answers[1:]
	if len(answer) == 0 {
		answer = question.DefaultValue
	}
	return answer, nil
}

func (prompter *scriptedPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	prompter.confirmedLabels = append(prompter.confirmedLabels, label)
	if len(prompter.confirmations) == 0 {
		return false, scaffold.ErrPromptInputClosed
	}
	confirmation := prompter.confirmations[0]
	prompter.confirmations = prompter.confirmations[1:]
	return confirmation, nil
}

func (prompter *scriptedPrompter) askedLabels() []string {
	labels := make([]string, 0, len(prompter.askedQuestions))
	for _, question := range prompter.askedQuestions {
		labels = append(labels, question.Label)
	}
	return labels
}

type fakeShellExecutor struct {
	availableCommands map[execshell.CommandName]bool
	executionResult   execshell.ExecutionResult
	executionError    error
	executedCommands  []execshell.ShellCommand
}

func (executor *fakeShellExecutor) IsAvailable(commandName execshell.CommandName) bool {
	return executor.availableCommands[commandName]
}

func (executor *fakeShellExecutor) record(commandName execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, execshell.ShellCommand{Name: commandName, Details: details})
	return executor.executionResult, executor.executionError
}

func (executor *fakeShellExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(execshell.CommandGit, details)
}

func (executor *fakeShellExecutor) ExecutePrettier(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(execshell.CommandPrettier, details)
}

func (executor *fakeShellExecutor) ExecutePackageManager(_ context.Context, packageManager execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(packageManager, details)
}

type stubIdentityResolver struct {
	name          string
	email         string
	username      string
	usernameError error
	usernameCalls int
}

func (resolver *stubIdentityResolver) ResolveName(context.Context) (string, bool) {
	return resolver.name, len(resolver.name) > 0
}

func (resolver *stubIdentityResolver) ResolveEmail(context.Context) (string, bool) {
	return resolver.email, len(resolver.email) > 0
}

func (resolver *stubIdentityResolver) ResolveGitHubUsername(context.Context) (string, error) {
	resolver.usernameCalls++
	if resolver.usernameError != nil {
		return "", resolver.usernameError
	}
	if len(resolver.username) == 0 {
		return "", errors.New("no username")
	}
	return resolver.username, nil
}

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

type recordingProgress struct {
	successes []string
	infos     []string
	warnings  []string
}

func (progress *recordingProgress) Success(format string, arguments ...any) {
	progress.successes = append(progress.successes, format)
}

func (progress *recordingProgress) Info(format string, arguments ...any) {
	progress.infos = append(progress.infos, format)
}

func (progress *recordingProgress) Warning(format string, arguments ...any) {
	progress.warnings = append(progress.warnings, format)
}
