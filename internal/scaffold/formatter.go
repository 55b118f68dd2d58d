package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/temirov/modgen/internal/execshell"
)

const (
	packageManifestFileNameConstant         = "package.json"
	packageManifestSchemaPathConstant       = "templates/package.schema.json"
	packageManifestSchemaResourceConstant   = "package.schema.json"
	jsonIndentConstant                      = "  "
	prettierParserFlagConstant              = "--parser"
	prettierTypeScriptParserConstant        = "typescript"
	prettierStdinFilepathFlagConstant       = "--stdin-filepath"
	invalidJSONErrorTemplateConstant        = "%s is not valid JSON"
	jsonIndentErrorTemplateConstant         = "unable to indent %s: %w"
	manifestSchemaErrorTemplateConstant     = "%s does not match the package manifest schema: %w"
	schemaLoadErrorTemplateConstant         = "unable to load package manifest schema: %w"
	prettierFailedErrorTemplateConstant     = "prettier could not format %s: %w"
	prettierSkippedMessageConstant          = "prettier unavailable; normalizing whitespace"
	logFieldDestinationConstant             = "destination"
	newlineConstant                         = "\n"
	formatterExecutorMissingMessageConstant = "formatter prettier executor not configured"
)

// ErrFormatterExecutorNotConfigured indicates prettier was enabled without an executor.
var ErrFormatterExecutorNotConfigured = errors.New(formatterExecutorMissingMessageConstant)

// PrettierExecutor runs prettier through the shell layer.
type PrettierExecutor interface {
	IsAvailable(commandName execshell.CommandName) bool
	ExecutePrettier(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Formatter post-processes rendered output according to the action's format.
type Formatter struct {
	executor        PrettierExecutor
	prettierEnabled bool
	manifestSchema  *jsonschema.Schema
	logger          *zap.Logger
}

// NewFormatter compiles the embedded package manifest schema. executor may be
// nil when prettierEnabled is false.
func NewFormatter(executor PrettierExecutor, prettierEnabled bool, logger *zap.Logger) (*Formatter, error) {
	if prettierEnabled && executor == nil {
		return nil, ErrFormatterExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	manifestSchema, schemaError := compilePackageManifestSchema()
	if schemaError != nil {
		return nil, fmt.Errorf(schemaLoadErrorTemplateConstant, schemaError)
	}
	return &Formatter{
		executor:        executor,
		prettierEnabled: prettierEnabled,
		manifestSchema:  manifestSchema,
		logger:          logger,
	}, nil
}

// Format returns the post-processed content for action.
func (formatter *Formatter) Format(executionContext context.Context, action TemplateAction, content []byte) ([]byte, error) {
	switch action.Format {
	case FileFormatJSON:
		return formatter.formatJSON(action, content)
	case FileFormatTypeScript:
		return formatter.formatTypeScript(executionContext, action, content)
	default:
		return content, nil
	}
}

func (formatter *Formatter) formatJSON(action TemplateAction, content []byte) ([]byte, error) {
	if !json.Valid(content) {
		return nil, fmt.Errorf(invalidJSONErrorTemplateConstant, action.Destination)
	}

	if path.Base(action.Destination) == packageManifestFileNameConstant {
		instance, instanceError := jsonschema.UnmarshalJSON(bytes.NewReader(content))
		if instanceError != nil {
			return nil, fmt.Errorf(manifestSchemaErrorTemplateConstant, action.Destination, instanceError)
		}
		if validationError := formatter.manifestSchema.Validate(instance); validationError != nil {
			return nil, fmt.Errorf(manifestSchemaErrorTemplateConstant, action.Destination, validationError)
		}
	}

	compacted := &bytes.Buffer{}
	if compactError := json.Compact(compacted, content); compactError != nil {
		return nil, fmt.Errorf(jsonIndentErrorTemplateConstant, action.Destination, compactError)
	}
	indented := &bytes.Buffer{}
	if indentError := json.Indent(indented, compacted.Bytes(), "", jsonIndentConstant); indentError != nil {
		return nil, fmt.Errorf(jsonIndentErrorTemplateConstant, action.Destination, indentError)
	}
	indented.WriteString(newlineConstant)
	return indented.Bytes(), nil
}

func (formatter *Formatter) formatTypeScript(executionContext context.Context, action TemplateAction, content []byte) ([]byte, error) {
	if !formatter.prettierEnabled || !formatter.executor.IsAvailable(execshell.CommandPrettier) {
		formatter.logger.Debug(prettierSkippedMessageConstant, zap.String(logFieldDestinationConstant, action.Destination))
		return normalizeWhitespace(content), nil
	}

	executionResult, executionError := formatter.executor.ExecutePrettier(executionContext, execshell.CommandDetails{
		Arguments:     []string{prettierParserFlagConstant, prettierTypeScriptParserConstant, prettierStdinFilepathFlagConstant, action.Destination},
		StandardInput: content,
	})
	if executionError != nil {
		return nil, fmt.Errorf(prettierFailedErrorTemplateConstant, action.Destination, executionError)
	}
	return []byte(executionResult.StandardOutput), nil
}

// normalizeWhitespace trims trailing spaces, collapses runs of blank lines and
// ends the content with exactly one newline.
func normalizeWhitespace(content []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", newlineConstant), newlineConstant)
	normalizedLines := make([]string, 0, len(lines))
	previousBlank := true
	for _, line := range lines {
		trimmedLine := strings.TrimRight(line, " \t")
		isBlank := len(trimmedLine) == 0
		if isBlank && previousBlank {
			continue
		}
		normalizedLines = append(normalizedLines, trimmedLine)
		previousBlank = isBlank
	}
	normalized := strings.TrimRight(strings.Join(normalizedLines, newlineConstant), newlineConstant)
	return []byte(normalized + newlineConstant)
}

func compilePackageManifestSchema() (*jsonschema.Schema, error) {
	schemaContent, readError := embeddedTemplates.ReadFile(packageManifestSchemaPathConstant)
	if readError != nil {
		return nil, readError
	}
	schemaDocument, unmarshalError := jsonschema.UnmarshalJSON(bytes.NewReader(schemaContent))
	if unmarshalError != nil {
		return nil, unmarshalError
	}
	compiler := jsonschema.NewCompiler()
	if resourceError := compiler.AddResource(packageManifestSchemaResourceConstant, schemaDocument); resourceError != nil {
		return nil, resourceError
	}
	return compiler.Compile(packageManifestSchemaResourceConstant)
}
