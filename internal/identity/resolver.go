package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/modgen/internal/execshell"
)

const (
	gitConfigSubcommandConstant             = "config"
	gitConfigGetFlagConstant                = "--get"
	gitUserNameKeyConstant                  = "user.name"
	gitUserEmailKeyConstant                 = "user.email"
	executorNotConfiguredMessageConstant    = "identity resolver git executor not configured"
	emailUnavailableMessageConstant         = "git user.email is not configured"
	usernameLookupMissingMessageConstant    = "github username lookup not configured"
	identityCacheHitMessageConstant         = "git identity served from cache"
	identityGitUnavailableMessageConstant   = "git executable not found; identity unavailable"
	identityLookupFailedMessageConstant     = "git identity lookup returned no value"
	identityWorkingDirectoryMessageConstant = "unable to determine working directory"
	logFieldConfigurationKeyConstant        = "key"
	logFieldDirectoryConstant               = "directory"
)

var (
	// ErrExecutorNotConfigured indicates the resolver was constructed without a git executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrEmailUnavailable indicates no git email could be resolved for the GitHub lookup.
	ErrEmailUnavailable = errors.New(emailUnavailableMessageConstant)
	// ErrUsernameLookupNotConfigured indicates GitHub username resolution was requested without a lookup.
	ErrUsernameLookupNotConfigured = errors.New(usernameLookupMissingMessageConstant)
)

// GitConfigExecutor is the subset of execshell.ShellExecutor the resolver needs.
type GitConfigExecutor interface {
	IsAvailable(commandName execshell.CommandName) bool
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// UsernameLookup finds the account name associated with an email address.
type UsernameLookup interface {
	LookupUsername(executionContext context.Context, email string) (string, error)
}

// WorkingDirectoryProvider reports the directory identity lookups run in.
type WorkingDirectoryProvider func() (string, error)

// Resolver resolves the git committer identity for the current working directory.
type Resolver struct {
	executor                 GitConfigExecutor
	usernameLookup           UsernameLookup
	logger                   *zap.Logger
	workingDirectoryProvider WorkingDirectoryProvider
	nameCache                *DirectoryCache
	emailCache               *DirectoryCache
}

// NewResolver constructs a Resolver with fresh name and email caches.
// usernameLookup may be nil when GitHub resolution is not needed.
func NewResolver(executor GitConfigExecutor, usernameLookup UsernameLookup, logger *zap.Logger) (*Resolver, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		executor:                 executor,
		usernameLookup:           usernameLookup,
		logger:                   logger,
		workingDirectoryProvider: os.Getwd,
		nameCache:                NewDirectoryCache(),
		emailCache:               NewDirectoryCache(),
	}, nil
}

// WithWorkingDirectoryProvider replaces the working directory source.
func (resolver *Resolver) WithWorkingDirectoryProvider(provider WorkingDirectoryProvider) *Resolver {
	if provider != nil {
		resolver.workingDirectoryProvider = provider
	}
	return resolver
}

// ResolveName returns git's user.name for the working directory.
func (resolver *Resolver) ResolveName(executionContext context.Context) (string, bool) {
	return resolver.resolveConfigurationValue(executionContext, resolver.nameCache, gitUserNameKeyConstant)
}

// ResolveEmail returns git's user.email for the working directory.
func (resolver *Resolver) ResolveEmail(executionContext context.Context) (string, bool) {
	return resolver.resolveConfigurationValue(executionContext, resolver.emailCache, gitUserEmailKeyConstant)
}

// ResolveGitHubUsername looks up the GitHub account owning the resolved git email.
// Lookup errors are returned unchanged.
func (resolver *Resolver) ResolveGitHubUsername(executionContext context.Context) (string, error) {
	if resolver.usernameLookup == nil {
		return "", ErrUsernameLookupNotConfigured
	}
	email, emailFound := resolver.ResolveEmail(executionContext)
	if !emailFound {
		return "", ErrEmailUnavailable
	}
	return resolver.usernameLookup.LookupUsername(executionContext, email)
}

func (resolver *Resolver) resolveConfigurationValue(executionContext context.Context, cache *DirectoryCache, configurationKey string) (string, bool) {
	workingDirectory, directoryError := resolver.currentDirectory()
	if directoryError != nil {
		resolver.logger.Debug(identityWorkingDirectoryMessageConstant, zap.Error(directoryError))
		return "", false
	}

	if cachedValue, cached := cache.Lookup(workingDirectory); cached {
		resolver.logger.Debug(identityCacheHitMessageConstant, zap.String(logFieldConfigurationKeyConstant, configurationKey), zap.String(logFieldDirectoryConstant, workingDirectory))
		return cachedValue, true
	}

	if !resolver.executor.IsAvailable(execshell.CommandGit) {
		resolver.logger.Debug(identityGitUnavailableMessageConstant, zap.String(logFieldConfigurationKeyConstant, configurationKey))
		return "", false
	}

	executionResult, executionError := resolver.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetFlagConstant, configurationKey},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		resolver.logger.Debug(identityLookupFailedMessageConstant, zap.String(logFieldConfigurationKeyConstant, configurationKey), zap.Error(executionError))
		return "", false
	}

	resolvedValue := strings.TrimSpace(executionResult.StandardOutput)
	if len(resolvedValue) == 0 {
		resolver.logger.Debug(identityLookupFailedMessageConstant, zap.String(logFieldConfigurationKeyConstant, configurationKey))
		return "", false
	}

	cache.Store(workingDirectory, resolvedValue)
	return resolvedValue, true
}

func (resolver *Resolver) currentDirectory() (string, error) {
	workingDirectory, directoryError := resolver.workingDirectoryProvider()
	if directoryError != nil {
		return "", directoryError
	}
	return filepath.Abs(workingDirectory)
}
