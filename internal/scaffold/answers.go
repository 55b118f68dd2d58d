package scaffold

// Answer holds an optional prompt answer. The zero value is Skipped.
type Answer[T any] struct {
	value    T
	answered bool
}

// Answered wraps a collected or preset value.
func Answered[T any](value T) Answer[T] {
	return Answer[T]{value: value, answered: true}
}

// Skipped represents a question that was not asked.
func Skipped[T any]() Answer[T] {
	return Answer[T]{}
}

// Value returns the wrapped value and whether one is present.
func (answer Answer[T]) Value() (T, bool) {
	return answer.value, answer.answered
}

// IsAnswered reports whether a value is present.
func (answer Answer[T]) IsAnswered() bool {
	return answer.answered
}

// OrElse returns the wrapped value or fallback when skipped.
func (answer Answer[T]) OrElse(fallback T) T {
	if !answer.answered {
		return fallback
	}
	return answer.value
}

// Answers aggregates everything the questionnaire collects.
type Answers struct {
	Description string
	Username    Answer[string]
	Name        string
	Email       string
	CLI         Answer[bool]
	Coverage    Answer[bool]
	Coveralls   Answer[bool]
}

// Presets carries values supplied on the command line. A preset answer
// suppresses its prompt.
type Presets struct {
	Organization Answer[string]
	CLI          Answer[bool]
	Coverage     Answer[bool]
	Coveralls    Answer[bool]
}

// effectiveCoverage folds the coveralls preset into coverage: publishing to
// coveralls implies coverage is enabled.
func (presets Presets) effectiveCoverage() Answer[bool] {
	if presets.Coverage.IsAnswered() {
		return presets.Coverage
	}
	if presets.Coveralls.OrElse(false) {
		return Answered(true)
	}
	return Skipped[bool]()
}
