package naming_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/modgen/internal/naming"
)

func TestIsScoped(testInstance *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedScoped bool
	}{
		{name: "scoped", input: "@a/b", expectedScoped: true},
		{name: "plain", input: "plain-name", expectedScoped: false},
		{name: "nested_segments", input: "@a/b/c", expectedScoped: false},
		{name: "empty_scope", input: "@/b", expectedScoped: false},
		{name: "empty_name", input: "@x/", expectedScoped: false},
		{name: "missing_at", input: "a/b", expectedScoped: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedScoped, naming.IsScoped(testCase.input))
		})
	}
}

func TestRepoName(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "scoped", input: "@scope/thing", expected: "thing"},
		{name: "plain", input: "thing", expected: "thing"},
		{name: "nested_segments_unchanged", input: "@a/b/c", expected: "@a/b/c"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, naming.RepoName(testCase.input))
		})
	}
}

func TestSlugify(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "scoped_passthrough", input: "@scope/Thing_Name", expected: "@scope/Thing_Name"},
		{name: "spaces", input: "My Cool Module", expected: "my-cool-module"},
		{name: "underscores_and_dots", input: "lodash_Merge.deep", expected: "lodash-merge-deep"},
		{name: "diacritics", input: "Café Crème", expected: "cafe-creme"},
		{name: "surrounding_separators", input: "  --Already-Slugged--  ", expected: "already-slugged"},
		{name: "unscoped_nested_path", input: "@a/b/c", expected: "a-b-c"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, naming.Slugify(testCase.input))
		})
	}
}

func TestCamelCase(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "hyphenated", input: "my-app", expected: "myApp"},
		{name: "single_word", input: "thing", expected: "thing"},
		{name: "mixed_separators", input: "Big_data.tools kit", expected: "bigDataToolsKit"},
		{name: "digits", input: "base-64-encoder", expected: "base64Encoder"},
		{name: "leading_digit", input: "3d-engine", expected: "_3dEngine"},
		{name: "apostrophe", input: "o'reilly", expected: "oReilly"},
		{name: "acronym_boundary", input: "myAPIClient", expected: "myApiClient"},
		{name: "existing_camel_case", input: "fooBar-baz", expected: "fooBarBaz"},
		{name: "reserved_word", input: "class", expected: "_class"},
		{name: "non_latin_letters", input: "日本", expected: "日本"},
		{name: "no_word_characters", input: "--!!--", expected: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, naming.CamelCase(testCase.input))
		})
	}
}

func TestParseBundlesDerivedFields(testInstance *testing.T) {
	moduleName := naming.Parse("@acme/Widget-Kit")

	require.Equal(testInstance, naming.ModuleName{
		Raw:       "@acme/Widget-Kit",
		IsScoped:  true,
		RepoName:  "Widget-Kit",
		Slug:      "@acme/Widget-Kit",
		CamelName: "widgetKit",
	}, moduleName)
}

func TestValidPackageName(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedValid bool
	}{
		{name: "plain", input: "my-app", expectedValid: true},
		{name: "scoped", input: "@acme/widgets", expectedValid: true},
		{name: "dots_and_underscores_inside", input: "lodash.merge_deep", expectedValid: true},
		{name: "empty", input: "", expectedValid: false},
		{name: "uppercase", input: "@acme/Widgets", expectedValid: false},
		{name: "apostrophe", input: "o'reilly", expectedValid: false},
		{name: "exclamation", input: "wow!", expectedValid: false},
		{name: "asterisk", input: "star*", expectedValid: false},
		{name: "leading_dot", input: ".hidden", expectedValid: false},
		{name: "leading_underscore", input: "_private", expectedValid: false},
		{name: "nested_path", input: "a/b", expectedValid: false},
		{name: "too_long", input: strings.Repeat("a", 215), expectedValid: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedValid, naming.ValidPackageName(testCase.input))
		})
	}
}
