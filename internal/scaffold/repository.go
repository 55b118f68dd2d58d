package scaffold

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"go.uber.org/zap"

	"github.com/temirov/modgen/internal/execshell"
)

const (
	gitInitSubcommandConstant                = "init"
	gitMetadataDirectoryConstant             = ".git"
	gitFallbackMessageConstant               = "git executable not found; initializing repository in-process"
	repositoryInitErrorTemplateConstant      = "unable to initialize repository in %s: %w"
	repositoryExecutorMissingMessageConstant = "repository initializer git executor not configured"
	logFieldProjectDirectoryConstant         = "project_directory"
)

// ErrRepositoryExecutorNotConfigured indicates the initializer has no git executor.
var ErrRepositoryExecutorNotConfigured = errors.New(repositoryExecutorMissingMessageConstant)

// GitExecutor runs git commands through the shell layer.
type GitExecutor interface {
	IsAvailable(commandName execshell.CommandName) bool
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryInitializer creates a git repository in a generated project.
type RepositoryInitializer struct {
	executor GitExecutor
	logger   *zap.Logger
}

// NewRepositoryInitializer constructs an initializer.
func NewRepositoryInitializer(executor GitExecutor, logger *zap.Logger) (*RepositoryInitializer, error) {
	if executor == nil {
		return nil, ErrRepositoryExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepositoryInitializer{executor: executor, logger: logger}, nil
}

// Initialize runs git init in projectDirectory. When git is not installed the
// repository is created with go-git on projectFileSystem instead.
func (initializer *RepositoryInitializer) Initialize(executionContext context.Context, projectDirectory string, projectFileSystem billy.Filesystem) error {
	if initializer.executor.IsAvailable(execshell.CommandGit) {
		_, executionError := initializer.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitInitSubcommandConstant},
			WorkingDirectory: projectDirectory,
		})
		if executionError != nil {
			return fmt.Errorf(repositoryInitErrorTemplateConstant, projectDirectory, executionError)
		}
		return nil
	}

	initializer.logger.Debug(gitFallbackMessageConstant, zap.String(logFieldProjectDirectoryConstant, projectDirectory))

	metadataFileSystem, chrootError := projectFileSystem.Chroot(gitMetadataDirectoryConstant)
	if chrootError != nil {
		return fmt.Errorf(repositoryInitErrorTemplateConstant, projectDirectory, chrootError)
	}
	storage := filesystem.NewStorage(metadataFileSystem, cache.NewObjectLRUDefault())
	if _, initError := gogit.Init(storage, projectFileSystem); initError != nil {
		return fmt.Errorf(repositoryInitErrorTemplateConstant, projectDirectory, initError)
	}
	return nil
}
