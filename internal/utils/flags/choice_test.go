package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "npm",
			choices:        []string{"npm", "yarn", "pnpm"},
			description:    "Package manager used for the install step.",
			expectedOutput: "`<NPM|yarn|pnpm>` Package manager used for the install step.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "yarn",
			choices:        []string{"npm", "yarn", "pnpm"},
			description:    "Package manager used for the install step.",
			expectedOutput: "`<npm|YARN|pnpm>` Package manager used for the install step.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			description:    "",
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "beta",
			choices:        []string{"beta", "beta", "alpha", "alpha"},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "primary",
			choices:        []string{" primary ", " secondary "},
			description:    "Pick a palette.",
			expectedOutput: "`<PRIMARY|secondary>` Pick a palette.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestParseChoice(t *testing.T) {
	choices := []string{"npm", "yarn", "pnpm"}
	testCases := []struct {
		name          string
		rawValue      string
		expectedValue string
		expectError   bool
	}{
		{name: "ExactMatch", rawValue: "yarn", expectedValue: "yarn"},
		{name: "CaseInsensitive", rawValue: " PNPM ", expectedValue: "pnpm"},
		{name: "EmptyUsesDefault", rawValue: "", expectedValue: "npm"},
		{name: "Unknown", rawValue: "bun", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsedValue, parseError := ParseChoice(testCase.rawValue, "npm", choices)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedValue, parsedValue)
		})
	}
}
