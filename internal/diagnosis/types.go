// Package diagnosis verifies submitted answers and classifies why a
// wrong answer went wrong. Classification feeds both the AI companion
// prompt context and the student profile's misconception tallies.
package diagnosis

import "github.com/abhisek/roundtutor/internal/rounding"

// Category is the closed misconception classification recorded against
// a wrong answer.
type Category string

const (
	CategoryRoundingDirection Category = "rounding_direction_confusion"
	CategoryDecimalPlace      Category = "decimal_place_confusion"
	CategoryPlaceValue        Category = "place_value_confusion"
	CategoryDecimalNotation   Category = "decimal_notation_confusion"
	CategoryGeneral           Category = "general_rounding_error"
	CategoryUnknown           Category = "unknown_error"
)

// Action identifies what the learner's specific choice reveals about
// their process.
type Action string

const (
	ActionTruncated    Action = "truncated_instead_of_rounded"
	ActionRoundedDown  Action = "rounded_down_when_should_round_up"
	ActionRoundedUp    Action = "rounded_up_when_should_round_down"
	ActionWrongPlace   Action = "rounded_to_wrong_decimal_place"
	ActionGeneralError Action = "general_rounding_error"
	ActionUnanalyzed   Action = "unanalyzed_error"
)

// Factor flags what makes a particular question challenging.
type Factor string

const (
	FactorContainsNines     Factor = "contains_nines"
	FactorRequiresRoundUp   Factor = "requires_rounding_up"
	FactorBorderlineFive    Factor = "borderline_case_5"
	FactorManyDecimalDigits Factor = "many_decimal_digits"
	FactorMultiPlaceTarget  Factor = "multi_decimal_place_target"
)

// ChoiceAnalysis interprets the learner's specific choice for prompt
// construction.
type ChoiceAnalysis struct {
	Action         Action
	Interpretation string
	CorrectProcess string
	MissedConcept  string
	SuggestedFocus string
}

// Report is the structured misconception record produced for a wrong
// answer. Created fresh per verification; consumed immediately by the
// companion and the profile, retained only as a Category tag in history.
type Report struct {
	Type              Category
	StudentAction     Action
	CorrectConcept    string
	DifficultyFactors []Factor
	Choice            ChoiceAnalysis

	// LegacyText is the free-text explanation kept for consumers that
	// predate the structured report.
	LegacyText string
}

// Result is the outcome of verifying one submitted answer.
type Result struct {
	IsCorrect     bool
	StudentLetter string
	StudentValue  string
	Steps         rounding.Steps
	Misconception *Report // nil when the answer was correct
}
