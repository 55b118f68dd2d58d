package scaffold_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/modgen/internal/naming"
	"github.com/temirov/modgen/internal/scaffold"
)

func TestGenerationContextValues(testInstance *testing.T) {
	answers := scaffold.Answers{
		Description: testDescriptionConstant,
		Username:    scaffold.Answered(testUsernameConstant),
		Name:        testAuthorNameConstant,
		Email:       testAuthorEmailConstant,
		CLI:         scaffold.Answered(true),
		Coverage:    scaffold.Answered(false),
		Coveralls:   scaffold.Skipped[bool](),
	}
	generationContext := scaffold.BuildGenerationContext(naming.Parse("@acme/Widget Kit"), answers, scaffold.ContextSettings{
		Version:        "0.1.0",
		Year:           2024,
		PackageManager: "pnpm",
	})

	values, valuesError := generationContext.Values()
	require.NoError(testInstance, valuesError)
	require.Equal(testInstance, map[string]any{
		"moduleName":      "@acme/Widget Kit",
		"repoName":        "Widget Kit",
		"packageName":     "@acme/Widget Kit",
		"camelModuleName": "widgetKit",
		"isScoped":        true,
		"description":     testDescriptionConstant,
		"username":        testUsernameConstant,
		"name":            testAuthorNameConstant,
		"email":           testAuthorEmailConstant,
		"cli":             true,
		"coverage":        false,
		"coveralls":       false,
		"version":         "0.1.0",
		"year":            2024,
		"packageManager":  "pnpm",
	}, values)
}

func TestAnswerAccessors(testInstance *testing.T) {
	answered := scaffold.Answered("acme")
	value, present := answered.Value()
	require.True(testInstance, present)
	require.Equal(testInstance, "acme", value)
	require.Equal(testInstance, "acme", answered.OrElse("fallback"))

	skipped := scaffold.Skipped[string]()
	require.False(testInstance, skipped.IsAnswered())
	require.Equal(testInstance, "fallback", skipped.OrElse("fallback"))
}
