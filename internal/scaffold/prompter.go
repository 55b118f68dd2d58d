package scaffold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/modgen/internal/utils/flags"
)

const (
	promptWithDefaultTemplateConstant     = "%s %s "
	promptDefaultTemplateConstant         = "(%s)"
	confirmDefaultTrueHintConstant        = "(Y/n)"
	confirmDefaultFalseHintConstant       = "(y/N)"
	promptQuestionPrefixConstant          = "? "
	requiredAnswerMessageTemplateConstant = "  %s is required\n"
	invalidConfirmationTemplateConstant   = "  please answer yes or no\n"
	promptInputClosedMessageConstant      = "prompt input closed before an answer was given"
)

// ErrPromptInputClosed indicates the input stream ended while a question was pending.
var ErrPromptInputClosed = errors.New(promptInputClosedMessageConstant)

// Question describes a free-text prompt.
type Question struct {
	Label        string
	DefaultValue string
	Required     bool
}

// Prompter asks questions on behalf of the questionnaire.
type Prompter interface {
	Ask(question Question) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// IOPrompter reads answers line by line from an io.Reader.
type IOPrompter struct {
	reader       *bufio.Reader
	writer       io.Writer
	labelColor   *color.Color
	defaultColor *color.Color
	warningColor *color.Color
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	if output == nil {
		output = io.Discard
	}
	return &IOPrompter{
		reader:       bufio.NewReader(input),
		writer:       output,
		labelColor:   color.New(color.FgCyan, color.Bold),
		defaultColor: color.New(color.Faint),
		warningColor: color.New(color.FgYellow),
	}
}

// Ask writes the question and returns the trimmed answer, falling back to the
// default on an empty line. Required questions are re-asked until answered.
func (prompter *IOPrompter) Ask(question Question) (string, error) {
	for {
		if writeError := prompter.writePrompt(question.Label, prompter.describeDefault(question.DefaultValue)); writeError != nil {
			return "", writeError
		}

		response, readError := prompter.readLine()
		if readError != nil {
			return "", readError
		}

		answer := response
		if len(answer) == 0 {
			answer = strings.TrimSpace(question.DefaultValue)
		}
		if len(answer) > 0 || !question.Required {
			return answer, nil
		}

		if _, writeError := prompter.warningColor.Fprintf(prompter.writer, requiredAnswerMessageTemplateConstant, question.Label); writeError != nil {
			return "", writeError
		}
	}
}

// Confirm asks a yes/no question. An empty line selects defaultValue.
func (prompter *IOPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	hint := confirmDefaultFalseHintConstant
	if defaultValue {
		hint = confirmDefaultTrueHintConstant
	}

	for {
		if writeError := prompter.writePrompt(label, prompter.defaultColor.Sprint(hint)); writeError != nil {
			return false, writeError
		}

		response, readError := prompter.readLine()
		if readError != nil {
			return false, readError
		}
		if len(response) == 0 {
			return defaultValue, nil
		}

		parsedValue, parseError := flags.ParseToggleValue(response)
		if parseError == nil {
			return parsedValue, nil
		}

		if _, writeError := prompter.warningColor.Fprint(prompter.writer, invalidConfirmationTemplateConstant); writeError != nil {
			return false, writeError
		}
	}
}

func (prompter *IOPrompter) writePrompt(label string, hint string) error {
	_, writeError := fmt.Fprintf(prompter.writer, promptWithDefaultTemplateConstant, prompter.labelColor.Sprint(promptQuestionPrefixConstant+label), hint)
	return writeError
}

func (prompter *IOPrompter) describeDefault(defaultValue string) string {
	trimmedDefault := strings.TrimSpace(defaultValue)
	if len(trimmedDefault) == 0 {
		return ""
	}
	return prompter.defaultColor.Sprintf(promptDefaultTemplateConstant, trimmedDefault)
}

func (prompter *IOPrompter) readLine() (string, error) {
	response, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(response) > 0 {
			return strings.TrimSpace(response), nil
		}
		if errors.Is(readError, io.EOF) {
			return "", ErrPromptInputClosed
		}
		return "", readError
	}
	return strings.TrimSpace(response), nil
}
