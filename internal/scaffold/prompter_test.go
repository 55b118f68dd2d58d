package scaffold_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/temirov/modgen/internal/scaffold"
)

func TestIOPrompterAsk(testInstance *testing.T) {
	color.NoColor = true

	testCases := []struct {
		name           string
		input          string
		question       scaffold.Question
		expectedAnswer string
		expectedOutput []string
		expectError    error
	}{
		{
			name:           "typed_answer_trimmed",
			input:          "  A tiny module  \n",
			question:       scaffold.Question{Label: "Description", Required: true},
			expectedAnswer: "A tiny module",
			expectedOutput: []string{"? Description"},
		},
		{
			name:           "empty_answer_uses_default",
			input:          "\n",
			question:       scaffold.Question{Label: "Author name", DefaultValue: "Jane Doe", Required: true},
			expectedAnswer: "Jane Doe",
			expectedOutput: []string{"? Author name (Jane Doe)"},
		},
		{
			name:           "required_answer_reasked",
			input:          "\n\nfinally\n",
			question:       scaffold.Question{Label: "Description", Required: true},
			expectedAnswer: "finally",
			expectedOutput: []string{"Description is required"},
		},
		{
			name:           "optional_answer_may_be_empty",
			input:          "\n",
			question:       scaffold.Question{Label: "Keywords"},
			expectedAnswer: "",
		},
		{
			name:           "last_line_without_newline",
			input:          "janedoe",
			question:       scaffold.Question{Label: "GitHub username", Required: true},
			expectedAnswer: "janedoe",
		},
		{
			name:        "closed_input",
			input:       "",
			question:    scaffold.Question{Label: "Description", Required: true},
			expectError: scaffold.ErrPromptInputClosed,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			output := &bytes.Buffer{}
			prompter := scaffold.NewIOPrompter(strings.NewReader(testCase.input), output)

			answer, askError := prompter.Ask(testCase.question)
			if testCase.expectError != nil {
				require.ErrorIs(subtest, askError, testCase.expectError)
				return
			}
			require.NoError(subtest, askError)
			require.Equal(subtest, testCase.expectedAnswer, answer)
			for _, expectedFragment := range testCase.expectedOutput {
				require.Contains(subtest, output.String(), expectedFragment)
			}
		})
	}
}

func TestIOPrompterConfirm(testInstance *testing.T) {
	color.NoColor = true

	testCases := []struct {
		name          string
		input         string
		defaultValue  bool
		expectedValue bool
		expectWarning bool
	}{
		{name: "yes", input: "yes\n", expectedValue: true},
		{name: "short_no", input: "n\n", defaultValue: true, expectedValue: false},
		{name: "empty_uses_default", input: "\n", defaultValue: true, expectedValue: true},
		{name: "invalid_then_yes", input: "maybe\ny\n", expectedValue: true, expectWarning: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			output := &bytes.Buffer{}
			prompter := scaffold.NewIOPrompter(strings.NewReader(testCase.input), output)

			confirmed, confirmError := prompter.Confirm("Add a CLI?", testCase.defaultValue)
			require.NoError(subtest, confirmError)
			require.Equal(subtest, testCase.expectedValue, confirmed)
			require.Equal(subtest, testCase.expectWarning, strings.Contains(output.String(), "please answer yes or no"))
		})
	}
}
