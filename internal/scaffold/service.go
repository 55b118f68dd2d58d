package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/temirov/modgen/internal/execshell"
	"github.com/temirov/modgen/internal/naming"
	"github.com/temirov/modgen/internal/ui"
)

const (
	moduleNameRequiredMessageConstant        = "module name is required"
	invalidModuleNameMessageConstant         = "invalid module name"
	invalidModuleNameTemplateConstant        = "invalid module name %q: %s"
	repoNameSeparatorReasonConstant          = "repo name may not contain '/' or '\\'; only @scope/name may use one '/'"
	repoNameRelativeReasonConstant           = "repo name may not be '.' or '..'"
	packageNameReasonConstant                = "package name %q does not satisfy npm naming rules (lowercase letters, digits, '-', '.', '_'; no leading '.' or '_')"
	identifierReasonConstant                 = "name contains no letters or digits to build an identifier from"
	projectDirectoryNotEmptyTemplateConstant = "project directory %s already exists and is not empty"
	projectDirectoryInspectTemplateConstant  = "unable to inspect project directory %s: %w"
	projectFileSystemErrorTemplateConstant   = "unable to open project directory %s: %w"
	contextBuildErrorTemplateConstant        = "unable to build generation context: %w"
	renderFailedErrorTemplateConstant        = "unable to generate project files: %w"
	serviceDependencyMissingTemplateConstant = "scaffold service dependency not configured: %s"
	githubLookupFailedMessageConstant        = "github username lookup failed; prompting without default"
	repositoryInitFailedMessageConstant      = "repository initialization failed"
	installFailedMessageConstant             = "dependency installation failed"
	generationStartedMessageConstant         = "generating npm module"
	filesGeneratedMessageConstant            = "project files generated"
	filesGeneratedProgressTemplateConstant   = "Created %d files in %s"
	repositoryProgressTemplateConstant       = "Initialized git repository in %s"
	repositoryWarningTemplateConstant        = "Could not initialize git repository: %v"
	installProgressTemplateConstant          = "Installed dependencies with %s"
	installWarningTemplateConstant           = "Could not install dependencies: %v"
	installSkippedProgressTemplateConstant   = "Skipped dependency installation; run %s install in %s"
	logFieldModuleNameConstant               = "module_name"
	logFieldFileCountConstant                = "file_count"
	identityDependencyNameConstant           = "identity resolver"
	questionnaireDependencyNameConstant      = "questionnaire"
	actionRunnerDependencyNameConstant       = "action runner"
	repositoryDependencyNameConstant         = "repository initializer"
	installerDependencyNameConstant          = "package installer"
)

var (
	// ErrModuleNameRequired indicates the npm command received a blank name.
	ErrModuleNameRequired = errors.New(moduleNameRequiredMessageConstant)
	// ErrInvalidModuleName matches every InvalidModuleNameError.
	ErrInvalidModuleName = errors.New(invalidModuleNameMessageConstant)
)

// InvalidModuleNameError reports a name that cannot produce a package, a
// directory or a TypeScript identifier.
type InvalidModuleNameError struct {
	Name   string
	Reason string
}

func (nameError InvalidModuleNameError) Error() string {
	return fmt.Sprintf(invalidModuleNameTemplateConstant, nameError.Name, nameError.Reason)
}

// Is reports whether target is ErrInvalidModuleName.
func (nameError InvalidModuleNameError) Is(target error) bool {
	return target == ErrInvalidModuleName
}

// IdentityResolver supplies prompt defaults from the local git identity.
type IdentityResolver interface {
	ResolveName(executionContext context.Context) (string, bool)
	ResolveEmail(executionContext context.Context) (string, bool)
	ResolveGitHubUsername(executionContext context.Context) (string, error)
}

// AnswerCollector gathers answers for a generation run.
type AnswerCollector interface {
	Collect(executionContext context.Context, presets Presets, defaults QuestionDefaults) (Answers, error)
}

// RepositoryCreator initializes version control in a generated project.
type RepositoryCreator interface {
	Initialize(executionContext context.Context, projectDirectory string, projectFileSystem billy.Filesystem) error
}

// ProgressReporter prints human-readable milestones.
type ProgressReporter interface {
	Success(format string, arguments ...any)
	Info(format string, arguments ...any)
	Warning(format string, arguments ...any)
}

// ProjectFileSystemFactory opens the file system rooted at a project directory.
type ProjectFileSystemFactory func(projectDirectory string) (billy.Filesystem, error)

// CommandOptions carries the resolved inputs of one npm command invocation.
type CommandOptions struct {
	ModuleName      string
	Presets         Presets
	ParentDirectory string
	Install         bool
	PackageManager  execshell.CommandName
	Packages        []string
	InitialVersion  string
	GitHubLookup    bool
}

// GenerationResult summarizes a completed run.
type GenerationResult struct {
	ProjectDirectory      string
	Context               GenerationContext
	Files                 []string
	RepositoryInitialized bool
	DependenciesInstalled bool
}

// ServiceDependencies wires the collaborators of Service.
type ServiceDependencies struct {
	Identity          IdentityResolver
	Questionnaire     AnswerCollector
	Catalog           TemplateCatalog
	ActionRunner      ActionRunner
	Repository        RepositoryCreator
	Installer         PackageInstaller
	FileSystemFactory ProjectFileSystemFactory
	Progress          ProgressReporter
	Clock             Clock
	Logger            *zap.Logger
}

// Service orchestrates npm module generation.
type Service struct {
	dependencies ServiceDependencies
}

// NewService validates dependencies and fills optional ones with defaults.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	switch {
	case dependencies.Identity == nil:
		return nil, fmt.Errorf(serviceDependencyMissingTemplateConstant, identityDependencyNameConstant)
	case dependencies.Questionnaire == nil:
		return nil, fmt.Errorf(serviceDependencyMissingTemplateConstant, questionnaireDependencyNameConstant)
	case dependencies.ActionRunner == nil:
		return nil, fmt.Errorf(serviceDependencyMissingTemplateConstant, actionRunnerDependencyNameConstant)
	case dependencies.Repository == nil:
		return nil, fmt.Errorf(serviceDependencyMissingTemplateConstant, repositoryDependencyNameConstant)
	case dependencies.Installer == nil:
		return nil, fmt.Errorf(serviceDependencyMissingTemplateConstant, installerDependencyNameConstant)
	}
	if dependencies.FileSystemFactory == nil {
		dependencies.FileSystemFactory = openOSProjectFileSystem
	}
	if dependencies.Progress == nil {
		dependencies.Progress = ui.NewProgressPrinter(io.Discard)
	}
	if dependencies.Clock == nil {
		dependencies.Clock = SystemClock{}
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Service{dependencies: dependencies}, nil
}

// Run generates the project described by options.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (GenerationResult, error) {
	moduleName, nameError := parseModuleName(options.ModuleName)
	if nameError != nil {
		return GenerationResult{}, nameError
	}

	projectDirectory := filepath.Join(options.ParentDirectory, filepath.FromSlash(moduleName.Raw))
	if inspectError := ensureProjectDirectoryAvailable(projectDirectory); inspectError != nil {
		return GenerationResult{}, inspectError
	}

	logger := service.dependencies.Logger
	logger.Info(generationStartedMessageConstant, zap.String(logFieldModuleNameConstant, moduleName.Raw), zap.String(logFieldProjectDirectoryConstant, projectDirectory))

	answers, collectError := service.dependencies.Questionnaire.Collect(executionContext, options.Presets, service.resolveDefaults(executionContext, options))
	if collectError != nil {
		return GenerationResult{}, collectError
	}

	generationContext := BuildGenerationContext(moduleName, answers, ContextSettings{
		Version:        options.InitialVersion,
		Year:           service.dependencies.Clock.Now().Year(),
		PackageManager: string(options.PackageManager),
	})
	contextValues, valuesError := generationContext.Values()
	if valuesError != nil {
		return GenerationResult{}, fmt.Errorf(contextBuildErrorTemplateConstant, valuesError)
	}

	projectFileSystem, fileSystemError := service.dependencies.FileSystemFactory(projectDirectory)
	if fileSystemError != nil {
		return GenerationResult{}, fmt.Errorf(projectFileSystemErrorTemplateConstant, projectDirectory, fileSystemError)
	}

	writtenFiles, runError := service.dependencies.ActionRunner.Run(executionContext, projectFileSystem, service.dependencies.Catalog.Actions(generationContext.CLI), contextValues)
	if runError != nil {
		return GenerationResult{}, fmt.Errorf(renderFailedErrorTemplateConstant, runError)
	}
	logger.Debug(filesGeneratedMessageConstant, zap.Int(logFieldFileCountConstant, len(writtenFiles)), zap.String(logFieldProjectDirectoryConstant, projectDirectory))
	service.dependencies.Progress.Success(filesGeneratedProgressTemplateConstant, len(writtenFiles), projectDirectory)

	result := GenerationResult{
		ProjectDirectory: projectDirectory,
		Context:          generationContext,
		Files:            writtenFiles,
	}

	if initializeError := service.dependencies.Repository.Initialize(executionContext, projectDirectory, projectFileSystem); initializeError != nil {
		logger.Warn(repositoryInitFailedMessageConstant, zap.String(logFieldProjectDirectoryConstant, projectDirectory), zap.Error(initializeError))
		service.dependencies.Progress.Warning(repositoryWarningTemplateConstant, initializeError)
	} else {
		result.RepositoryInitialized = true
		service.dependencies.Progress.Success(repositoryProgressTemplateConstant, projectDirectory)
	}

	if !options.Install {
		service.dependencies.Progress.Info(installSkippedProgressTemplateConstant, options.PackageManager, projectDirectory)
		return result, nil
	}

	installError := service.dependencies.Installer.Install(executionContext, InstallRequest{
		Directory:      projectDirectory,
		PackageManager: options.PackageManager,
		Packages:       options.Packages,
	})
	if installError != nil {
		logger.Warn(installFailedMessageConstant, zap.String(logFieldProjectDirectoryConstant, projectDirectory), zap.Error(installError))
		service.dependencies.Progress.Warning(installWarningTemplateConstant, installError)
		return result, nil
	}

	result.DependenciesInstalled = true
	service.dependencies.Progress.Success(installProgressTemplateConstant, options.PackageManager)
	return result, nil
}

func (service *Service) resolveDefaults(executionContext context.Context, options CommandOptions) QuestionDefaults {
	defaults := QuestionDefaults{}
	defaults.Name, _ = service.dependencies.Identity.ResolveName(executionContext)
	defaults.Email, _ = service.dependencies.Identity.ResolveEmail(executionContext)

	if !options.GitHubLookup || options.Presets.Organization.IsAnswered() {
		return defaults
	}
	username, lookupError := service.dependencies.Identity.ResolveGitHubUsername(executionContext)
	if lookupError != nil {
		service.dependencies.Logger.Debug(githubLookupFailedMessageConstant, zap.Error(lookupError))
		return defaults
	}
	defaults.Username = username
	return defaults
}

func parseModuleName(rawName string) (naming.ModuleName, error) {
	trimmedName := strings.TrimSpace(rawName)
	if len(trimmedName) == 0 {
		return naming.ModuleName{}, ErrModuleNameRequired
	}
	moduleName := naming.Parse(trimmedName)
	switch {
	case strings.ContainsAny(moduleName.RepoName, `/\`):
		return naming.ModuleName{}, InvalidModuleNameError{Name: trimmedName, Reason: repoNameSeparatorReasonConstant}
	case moduleName.RepoName == "." || moduleName.RepoName == "..":
		return naming.ModuleName{}, InvalidModuleNameError{Name: trimmedName, Reason: repoNameRelativeReasonConstant}
	case !naming.ValidPackageName(moduleName.Slug):
		return naming.ModuleName{}, InvalidModuleNameError{Name: trimmedName, Reason: fmt.Sprintf(packageNameReasonConstant, moduleName.Slug)}
	case len(moduleName.CamelName) == 0:
		return naming.ModuleName{}, InvalidModuleNameError{Name: trimmedName, Reason: identifierReasonConstant}
	}
	return moduleName, nil
}

func ensureProjectDirectoryAvailable(projectDirectory string) error {
	directoryEntries, readError := os.ReadDir(projectDirectory)
	if readError != nil {
		if errors.Is(readError, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(projectDirectoryInspectTemplateConstant, projectDirectory, readError)
	}
	if len(directoryEntries) > 0 {
		return fmt.Errorf(projectDirectoryNotEmptyTemplateConstant, projectDirectory)
	}
	return nil
}

func openOSProjectFileSystem(projectDirectory string) (billy.Filesystem, error) {
	if mkdirError := os.MkdirAll(projectDirectory, generatedDirectoryPermissionsConstant); mkdirError != nil {
		return nil, mkdirError
	}
	return osfs.New(projectDirectory), nil
}
