package scaffold

import (
	"context"
	"errors"
	"fmt"
)

const (
	descriptionQuestionLabelConstant    = "Description"
	usernameQuestionLabelConstant       = "GitHub username"
	authorNameQuestionLabelConstant     = "Author name"
	authorEmailQuestionLabelConstant    = "Author email"
	cliQuestionLabelConstant            = "Add a CLI?"
	coverageQuestionLabelConstant       = "Enable code coverage?"
	coverallsQuestionLabelConstant      = "Publish coverage to coveralls?"
	questionFailedErrorTemplateConstant = "%s: %w"
	prompterMissingMessageConstant      = "questionnaire prompter not configured"
)

// ErrPrompterNotConfigured indicates the questionnaire was built without a prompter.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// QuestionDefaults seeds prompts with values discovered before asking.
type QuestionDefaults struct {
	Username string
	Name     string
	Email    string
}

// Questionnaire asks the npm command's questions in a fixed order.
type Questionnaire struct {
	prompter Prompter
}

// NewQuestionnaire constructs a questionnaire backed by prompter.
func NewQuestionnaire(prompter Prompter) (*Questionnaire, error) {
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	return &Questionnaire{prompter: prompter}, nil
}

// Collect asks every question not suppressed by presets and returns the answers.
func (questionnaire *Questionnaire) Collect(executionContext context.Context, presets Presets, defaults QuestionDefaults) (Answers, error) {
	answers := Answers{}

	description, askError := questionnaire.ask(executionContext, Question{Label: descriptionQuestionLabelConstant, Required: true})
	if askError != nil {
		return Answers{}, askError
	}
	answers.Description = description

	if organization, organizationProvided := presets.Organization.Value(); organizationProvided {
		answers.Username = Answered(organization)
	} else {
		username, usernameError := questionnaire.ask(executionContext, Question{Label: usernameQuestionLabelConstant, DefaultValue: defaults.Username, Required: true})
		if usernameError != nil {
			return Answers{}, usernameError
		}
		answers.Username = Answered(username)
	}

	authorName, nameError := questionnaire.ask(executionContext, Question{Label: authorNameQuestionLabelConstant, DefaultValue: defaults.Name, Required: true})
	if nameError != nil {
		return Answers{}, nameError
	}
	answers.Name = authorName

	authorEmail, emailError := questionnaire.ask(executionContext, Question{Label: authorEmailQuestionLabelConstant, DefaultValue: defaults.Email, Required: true})
	if emailError != nil {
		return Answers{}, emailError
	}
	answers.Email = authorEmail

	cliAnswer, cliError := questionnaire.confirmUnlessPreset(executionContext, presets.CLI, cliQuestionLabelConstant)
	if cliError != nil {
		return Answers{}, cliError
	}
	answers.CLI = cliAnswer

	coverageAnswer, coverageError := questionnaire.confirmUnlessPreset(executionContext, presets.effectiveCoverage(), coverageQuestionLabelConstant)
	if coverageError != nil {
		return Answers{}, coverageError
	}
	answers.Coverage = coverageAnswer

	if !coverageAnswer.OrElse(false) {
		answers.Coveralls = Skipped[bool]()
		return answers, nil
	}

	coverallsAnswer, coverallsError := questionnaire.confirmUnlessPreset(executionContext, presets.Coveralls, coverallsQuestionLabelConstant)
	if coverallsError != nil {
		return Answers{}, coverallsError
	}
	answers.Coveralls = coverallsAnswer

	return answers, nil
}

func (questionnaire *Questionnaire) ask(executionContext context.Context, question Question) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}
	answer, askError := questionnaire.prompter.Ask(question)
	if askError != nil {
		return "", fmt.Errorf(questionFailedErrorTemplateConstant, question.Label, askError)
	}
	return answer, nil
}

func (questionnaire *Questionnaire) confirmUnlessPreset(executionContext context.Context, preset Answer[bool], label string) (Answer[bool], error) {
	if preset.IsAnswered() {
		return preset, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return Skipped[bool](), contextError
	}
	confirmed, confirmError := questionnaire.prompter.Confirm(label, false)
	if confirmError != nil {
		return Skipped[bool](), fmt.Errorf(questionFailedErrorTemplateConstant, label, confirmError)
	}
	return Answered(confirmed), nil
}
