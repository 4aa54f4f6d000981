// Package questionbank holds the per-stage question pools and turns
// canonical questions into single-use multiple-choice presentations.
package questionbank

import (
	"fmt"

	"github.com/abhisek/roundtutor/internal/progression"
)

// Question is an immutable rounding question template. Pool questions
// are defined statically per stage; stretch questions are synthesized.
// A Question is never mutated after creation.
type Question struct {
	// Number is the decimal string to be rounded, e.g. "12.632".
	Number string `yaml:"number"`

	// DecimalPlaces is the place count the learner rounds to.
	DecimalPlaces int `yaml:"decimal_places"`

	// Answer is the correct rounded value as a decimal string.
	Answer string `yaml:"answer"`

	// RoundingUp is the precomputed ground-truth direction.
	RoundingUp bool `yaml:"rounding_up"`
}

// ID returns a stable identifier for event records.
func (q Question) ID() string {
	return fmt.Sprintf("%s@%ddp", q.Number, q.DecimalPlaces)
}

// Text returns the learner-facing prompt.
func (q Question) Text() string {
	plural := ""
	if q.DecimalPlaces > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Round %s to %d decimal place%s", q.Number, q.DecimalPlaces, plural)
}

// Letters are the multiple-choice labels, in presentation order.
var Letters = []string{"A", "B", "C", "D"}

// FormattedQuestion is the single-use presentation of a Question:
// four lettered choices, exactly one of which equals the answer.
// It is replaced wholesale on the next serve.
type FormattedQuestion struct {
	Text          string
	Choices       map[string]string
	CorrectLetter string
	Source        Question
}

// Choice returns the value behind a letter, or ("", false) for an
// unknown letter.
func (f *FormattedQuestion) Choice(letter string) (string, bool) {
	v, ok := f.Choices[letter]
	return v, ok
}

// Rules describes how questions are produced for a stage. Mirrors the
// per-stage curriculum configuration.
type Rules struct {
	DecimalPlaces      []int
	DigitsAfterDecimal []int
	MustRoundUp        bool
	AvoidRoundUp       bool
	MustHaveNines      bool
}

// StageRules maps each stage to its question-generation rules.
var StageRules = map[progression.Stage]Rules{
	progression.Stage1NoRoundUp: {
		DecimalPlaces:      []int{1},
		DigitsAfterDecimal: []int{2},
		AvoidRoundUp:       true,
	},
	progression.Stage1WithRoundUp: {
		DecimalPlaces:      []int{1},
		DigitsAfterDecimal: []int{2},
		MustRoundUp:        true,
	},
	progression.Stage1Mixed: {
		DecimalPlaces:      []int{1},
		DigitsAfterDecimal: []int{2, 3, 4},
	},
	progression.Stage2: {
		DecimalPlaces:      []int{2, 3},
		DigitsAfterDecimal: []int{3, 4, 5},
	},
	progression.Stage2Harder: {
		DecimalPlaces:      []int{2, 3},
		DigitsAfterDecimal: []int{3, 4, 5},
	},
	progression.StageStretch: {
		DecimalPlaces:      []int{1},
		DigitsAfterDecimal: []int{2, 3, 4},
		MustHaveNines:      true,
	},
}
