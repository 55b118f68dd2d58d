package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	templatesDirectoryConstant              = "templates"
	templateManifestFileNameConstant        = "manifest.yaml"
	manifestReadErrorTemplateConstant       = "unable to read template manifest: %w"
	manifestParseErrorTemplateConstant      = "unable to parse template manifest: %w"
	manifestEntryInvalidTemplateConstant    = "template manifest entry %d is invalid: %w"
	manifestTemplateMissingTemplateConstant = "template %s is not embedded: %w"
	destinationMissingMessageConstant       = "destination is required"
	templateMissingMessageConstant          = "template is required"
	destinationEscapesMessageConstant       = "destination must stay inside the project directory"
	unsupportedFormatTemplateConstant       = "unsupported format %q"
)

// FileFormat selects how rendered output is post-processed.
type FileFormat string

// Supported file formats.
const (
	FileFormatNone       FileFormat = ""
	FileFormatJSON       FileFormat = "json"
	FileFormatTypeScript FileFormat = "typescript"
)

//go:embed templates
var embeddedTemplates embed.FS

// TemplateAction pairs a template with the project-relative file it produces.
type TemplateAction struct {
	Destination string     `yaml:"destination"`
	Template    string     `yaml:"template"`
	Format      FileFormat `yaml:"format"`
}

// TemplateCatalog lists the fixed project files and the optional CLI entry point.
type TemplateCatalog struct {
	ProjectActions []TemplateAction `yaml:"project"`
	CLIActions     []TemplateAction `yaml:"cli"`
	templates      fs.FS
}

// LoadTemplateCatalog parses the embedded manifest.
func LoadTemplateCatalog() (TemplateCatalog, error) {
	templateFileSystem, subError := fs.Sub(embeddedTemplates, templatesDirectoryConstant)
	if subError != nil {
		return TemplateCatalog{}, fmt.Errorf(manifestReadErrorTemplateConstant, subError)
	}
	return LoadTemplateCatalogFrom(templateFileSystem)
}

// LoadTemplateCatalogFrom parses manifest.yaml from templateFileSystem and
// checks every referenced template exists.
func LoadTemplateCatalogFrom(templateFileSystem fs.FS) (TemplateCatalog, error) {
	manifestContent, readError := fs.ReadFile(templateFileSystem, templateManifestFileNameConstant)
	if readError != nil {
		return TemplateCatalog{}, fmt.Errorf(manifestReadErrorTemplateConstant, readError)
	}

	catalog := TemplateCatalog{}
	if parseError := yaml.Unmarshal(manifestContent, &catalog); parseError != nil {
		return TemplateCatalog{}, fmt.Errorf(manifestParseErrorTemplateConstant, parseError)
	}

	allActions := append(append([]TemplateAction{}, catalog.ProjectActions...), catalog.CLIActions...)
	for actionIndex, action := range allActions {
		if validationError := action.validate(); validationError != nil {
			return TemplateCatalog{}, fmt.Errorf(manifestEntryInvalidTemplateConstant, actionIndex, validationError)
		}
		if _, statError := fs.Stat(templateFileSystem, action.Template); statError != nil {
			return TemplateCatalog{}, fmt.Errorf(manifestTemplateMissingTemplateConstant, action.Template, statError)
		}
	}

	catalog.templates = templateFileSystem
	return catalog, nil
}

// Actions returns the project actions followed by the CLI actions when includeCLI is set.
func (catalog TemplateCatalog) Actions(includeCLI bool) []TemplateAction {
	actions := make([]TemplateAction, 0, len(catalog.ProjectActions)+len(catalog.CLIActions))
	actions = append(actions, catalog.ProjectActions...)
	if includeCLI {
		actions = append(actions, catalog.CLIActions...)
	}
	return actions
}

// Templates exposes the file system templates are read from.
func (catalog TemplateCatalog) Templates() fs.FS {
	return catalog.templates
}

func (action TemplateAction) validate() error {
	trimmedDestination := strings.TrimSpace(action.Destination)
	if len(trimmedDestination) == 0 {
		return errors.New(destinationMissingMessageConstant)
	}
	if len(strings.TrimSpace(action.Template)) == 0 {
		return errors.New(templateMissingMessageConstant)
	}
	cleanedDestination := path.Clean(trimmedDestination)
	if path.IsAbs(cleanedDestination) || cleanedDestination == ".." || strings.HasPrefix(cleanedDestination, "../") {
		return errors.New(destinationEscapesMessageConstant)
	}
	switch action.Format {
	case FileFormatNone, FileFormatJSON, FileFormatTypeScript:
		return nil
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, action.Format)
	}
}
