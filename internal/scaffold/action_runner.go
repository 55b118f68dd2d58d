package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

const (
	templateMissingKeyOptionConstant      = "missingkey=error"
	templateJSONFunctionNameConstant      = "json"
	templateCommentFunctionNameConstant   = "comment"
	blockCommentTerminatorConstant        = "*/"
	escapedCommentTerminatorConstant      = `*\/`
	templateReadErrorTemplateConstant     = "unable to read template %s: %w"
	templateParseErrorTemplateConstant    = "unable to parse template %s: %w"
	templateRenderErrorTemplateConstant   = "unable to render %s: %w"
	formatErrorTemplateConstant           = "unable to format %s: %w"
	directoryCreateErrorTemplateConstant  = "unable to create directory %s: %w"
	fileWriteErrorTemplateConstant        = "unable to write %s: %w"
	generatedFileMessageConstant          = "generated project file"
	generatedDirectoryPermissionsConstant = fs.FileMode(0o755)
	generatedFilePermissionsConstant      = fs.FileMode(0o644)
	actionRunnerTemplatesMissingConstant  = "action runner templates not configured"
	actionRunnerFormatterMissingConstant  = "action runner formatter not configured"
)

var (
	// ErrTemplatesNotConfigured indicates the runner has no template source.
	ErrTemplatesNotConfigured = errors.New(actionRunnerTemplatesMissingConstant)
	// ErrFormatterNotConfigured indicates the runner has no formatter.
	ErrFormatterNotConfigured = errors.New(actionRunnerFormatterMissingConstant)
)

// ContentFormatter post-processes rendered template output.
type ContentFormatter interface {
	Format(executionContext context.Context, action TemplateAction, content []byte) ([]byte, error)
}

// ActionRunner renders template actions into a project file system.
type ActionRunner interface {
	Run(executionContext context.Context, projectFileSystem billy.Filesystem, actions []TemplateAction, values map[string]any) ([]string, error)
}

// TemplateActionRunner renders text/template files and writes them through billy.
type TemplateActionRunner struct {
	templates fs.FS
	formatter ContentFormatter
	logger    *zap.Logger
}

// NewTemplateActionRunner constructs a runner reading templates from templateFileSystem.
func NewTemplateActionRunner(templateFileSystem fs.FS, formatter ContentFormatter, logger *zap.Logger) (*TemplateActionRunner, error) {
	if templateFileSystem == nil {
		return nil, ErrTemplatesNotConfigured
	}
	if formatter == nil {
		return nil, ErrFormatterNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateActionRunner{templates: templateFileSystem, formatter: formatter, logger: logger}, nil
}

// Run executes every action in order and returns the written destinations.
// The first failure aborts the run.
func (runner *TemplateActionRunner) Run(executionContext context.Context, projectFileSystem billy.Filesystem, actions []TemplateAction, values map[string]any) ([]string, error) {
	writtenFiles := make([]string, 0, len(actions))
	for _, action := range actions {
		if contextError := executionContext.Err(); contextError != nil {
			return writtenFiles, contextError
		}

		renderedContent, renderError := runner.render(action, values)
		if renderError != nil {
			return writtenFiles, renderError
		}

		formattedContent, formatError := runner.formatter.Format(executionContext, action, renderedContent)
		if formatError != nil {
			return writtenFiles, fmt.Errorf(formatErrorTemplateConstant, action.Destination, formatError)
		}

		if writeError := writeProjectFile(projectFileSystem, action.Destination, formattedContent); writeError != nil {
			return writtenFiles, writeError
		}

		runner.logger.Debug(generatedFileMessageConstant, zap.String(logFieldDestinationConstant, action.Destination))
		writtenFiles = append(writtenFiles, action.Destination)
	}
	return writtenFiles, nil
}

func (runner *TemplateActionRunner) render(action TemplateAction, values map[string]any) ([]byte, error) {
	templateContent, readError := fs.ReadFile(runner.templates, action.Template)
	if readError != nil {
		return nil, fmt.Errorf(templateReadErrorTemplateConstant, action.Template, readError)
	}

	parsedTemplate, parseError := template.New(action.Template).
		Option(templateMissingKeyOptionConstant).
		Funcs(template.FuncMap{
			templateJSONFunctionNameConstant:    encodeJSONValue,
			templateCommentFunctionNameConstant: escapeBlockComment,
		}).
		Parse(string(templateContent))
	if parseError != nil {
		return nil, fmt.Errorf(templateParseErrorTemplateConstant, action.Template, parseError)
	}

	renderedContent := &bytes.Buffer{}
	if executeError := parsedTemplate.Execute(renderedContent, values); executeError != nil {
		return nil, fmt.Errorf(templateRenderErrorTemplateConstant, action.Destination, executeError)
	}
	return renderedContent.Bytes(), nil
}

func encodeJSONValue(value any) (string, error) {
	encodedValue := &bytes.Buffer{}
	encoder := json.NewEncoder(encodedValue)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return "", encodeError
	}
	return strings.TrimSuffix(encodedValue.String(), newlineConstant), nil
}

// escapeBlockComment keeps free text from closing a /** */ comment early.
func escapeBlockComment(text string) string {
	return strings.ReplaceAll(text, blockCommentTerminatorConstant, escapedCommentTerminatorConstant)
}

func writeProjectFile(projectFileSystem billy.Filesystem, destination string, content []byte) error {
	parentDirectory := path.Dir(destination)
	if parentDirectory != "." {
		if mkdirError := projectFileSystem.MkdirAll(parentDirectory, generatedDirectoryPermissionsConstant); mkdirError != nil {
			return fmt.Errorf(directoryCreateErrorTemplateConstant, parentDirectory, mkdirError)
		}
	}
	if writeError := util.WriteFile(projectFileSystem, destination, content, generatedFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(fileWriteErrorTemplateConstant, destination, writeError)
	}
	return nil
}
