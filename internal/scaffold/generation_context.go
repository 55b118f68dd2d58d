package scaffold

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/temirov/modgen/internal/naming"
)

const contextFlattenErrorTemplateConstant = "unable to flatten generation context: %w"

// GenerationContext is the read-only data every template renders against.
type GenerationContext struct {
	ModuleName      string `mapstructure:"moduleName"`
	RepoName        string `mapstructure:"repoName"`
	PackageName     string `mapstructure:"packageName"`
	CamelModuleName string `mapstructure:"camelModuleName"`
	IsScoped        bool   `mapstructure:"isScoped"`
	Description     string `mapstructure:"description"`
	Username        string `mapstructure:"username"`
	Name            string `mapstructure:"name"`
	Email           string `mapstructure:"email"`
	CLI             bool   `mapstructure:"cli"`
	Coverage        bool   `mapstructure:"coverage"`
	Coveralls       bool   `mapstructure:"coveralls"`
	Version         string `mapstructure:"version"`
	Year            int    `mapstructure:"year"`
	PackageManager  string `mapstructure:"packageManager"`
}

// ContextSettings carries values that come from configuration rather than prompts.
type ContextSettings struct {
	Version        string
	Year           int
	PackageManager string
}

// BuildGenerationContext combines the parsed module name, answers and settings.
// Skipped boolean answers render as false.
func BuildGenerationContext(moduleName naming.ModuleName, answers Answers, settings ContextSettings) GenerationContext {
	return GenerationContext{
		ModuleName:      moduleName.Raw,
		RepoName:        moduleName.RepoName,
		PackageName:     moduleName.Slug,
		CamelModuleName: moduleName.CamelName,
		IsScoped:        moduleName.IsScoped,
		Description:     answers.Description,
		Username:        answers.Username.OrElse(""),
		Name:            answers.Name,
		Email:           answers.Email,
		CLI:             answers.CLI.OrElse(false),
		Coverage:        answers.Coverage.OrElse(false),
		Coveralls:       answers.Coveralls.OrElse(false),
		Version:         settings.Version,
		Year:            settings.Year,
		PackageManager:  settings.PackageManager,
	}
}

// Values flattens the context into the map handed to templates.
func (generationContext GenerationContext) Values() (map[string]any, error) {
	flattened := map[string]any{}
	if decodeError := mapstructure.Decode(generationContext, &flattened); decodeError != nil {
		return nil, fmt.Errorf(contextFlattenErrorTemplateConstant, decodeError)
	}
	return flattened, nil
}
