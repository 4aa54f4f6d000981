package diagnosis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/rounding"
)

// valueEpsilon is the tolerance for float comparisons between choice
// values. Choice strings carry at most five decimal digits, so 1e-4
// separates every distinct value while absorbing parse noise.
const valueEpsilon = 1e-4

// classify builds the misconception report for a wrong answer. Numeric
// parse failures downgrade to an unanalyzed report instead of failing
// the verification.
func classify(q questionbank.Question, studentValue, correctValue string) *Report {
	report := &Report{
		LegacyText:        legacyExplanation(q, studentValue, correctValue),
		DifficultyFactors: difficultyFactors(q.Number, q.DecimalPlaces),
	}

	choice, ok := analyzeChoice(q, studentValue, correctValue)
	if !ok {
		report.Type = CategoryUnknown
		report.StudentAction = ActionUnanalyzed
		report.CorrectConcept = "rounding_process"
		report.Choice = ChoiceAnalysis{
			Action:         ActionUnanalyzed,
			Interpretation: "Error in rounding process",
			CorrectProcess: "Follow step-by-step rounding procedure",
			MissedConcept:  "systematic_approach",
			SuggestedFocus: "review_rounding_steps",
		}
		return report
	}

	report.Choice = choice
	report.StudentAction = choice.Action
	report.CorrectConcept = conceptFor(choice.Action)
	report.Type = categorize(choice.Action, studentValue)
	return report
}

// analyzeChoice interprets the relationship between the chosen value,
// the correct value and the source number. Decision order: truncation,
// wrong direction (below then above), wrong place count, then a generic
// process error.
func analyzeChoice(q questionbank.Question, studentValue, correctValue string) (ChoiceAnalysis, bool) {
	student, err1 := strconv.ParseFloat(studentValue, 64)
	correct, err2 := strconv.ParseFloat(correctValue, 64)
	if err1 != nil || err2 != nil {
		return ChoiceAnalysis{}, false
	}

	if truncated, err := rounding.Truncate(q.Number, q.DecimalPlaces); err == nil {
		if t, perr := strconv.ParseFloat(truncated, 64); perr == nil && math.Abs(student-t) < valueEpsilon {
			return ChoiceAnalysis{
				Action:         ActionTruncated,
				Interpretation: fmt.Sprintf("Student chopped off digits after %d decimal place(s) instead of rounding", q.DecimalPlaces),
				CorrectProcess: fmt.Sprintf("Should look at digit after %d decimal place(s) and round accordingly", q.DecimalPlaces),
				MissedConcept:  "rounding_rule_when_digit_5_or_greater",
				SuggestedFocus: "demonstrate_difference_between_truncation_and_rounding",
			}, true
		}
	}

	if student < correct-valueEpsilon {
		return ChoiceAnalysis{
			Action:         ActionRoundedDown,
			Interpretation: "Student rounded down when the digit warranted rounding up",
			CorrectProcess: "When the digit is 5 or greater, round up",
			MissedConcept:  "rounding_up_when_digit_5_or_greater",
			SuggestedFocus: "practice_identifying_when_to_round_up",
		}, true
	}
	if student > correct+valueEpsilon {
		return ChoiceAnalysis{
			Action:         ActionRoundedUp,
			Interpretation: "Student rounded up when the digit warranted rounding down",
			CorrectProcess: "When the digit is less than 5, keep the target digit the same",
			MissedConcept:  "rounding_down_when_digit_less_than_5",
			SuggestedFocus: "practice_identifying_when_to_round_down",
		}, true
	}

	if studentPlaces := rounding.DecimalDigits(studentValue); studentPlaces != q.DecimalPlaces {
		return ChoiceAnalysis{
			Action:         ActionWrongPlace,
			Interpretation: fmt.Sprintf("Student rounded to %d decimal place(s) instead of %d", studentPlaces, q.DecimalPlaces),
			CorrectProcess: fmt.Sprintf("Count %d place(s) after the decimal point", q.DecimalPlaces),
			MissedConcept:  "counting_decimal_places",
			SuggestedFocus: "practice_identifying_target_decimal_place",
		}, true
	}

	return ChoiceAnalysis{
		Action:         ActionGeneralError,
		Interpretation: "Student made an error in the rounding process",
		CorrectProcess: "Identify target digit, check next digit, round accordingly",
		MissedConcept:  "systematic_rounding_approach",
		SuggestedFocus: "review_step_by_step_rounding_process",
	}, true
}

func conceptFor(action Action) string {
	switch action {
	case ActionTruncated:
		return "rounding_vs_truncation"
	case ActionRoundedDown:
		return "rounding_up_rule"
	case ActionRoundedUp:
		return "rounding_down_rule"
	case ActionWrongPlace:
		return "decimal_place_identification"
	default:
		return "rounding_process"
	}
}

// categorize maps a student action onto the closed category tallied in
// the profile.
func categorize(action Action, studentValue string) Category {
	switch action {
	case ActionTruncated, ActionRoundedDown, ActionRoundedUp:
		return CategoryRoundingDirection
	case ActionWrongPlace:
		if !strings.Contains(studentValue, ".") {
			return CategoryPlaceValue
		}
		return CategoryDecimalPlace
	case ActionUnanalyzed:
		return CategoryUnknown
	default:
		return CategoryGeneral
	}
}

// difficultyFactors flags the properties of the question that commonly
// trip learners up.
func difficultyFactors(number string, places int) []Factor {
	var factors []Factor

	if strings.Contains(number, "9") {
		factors = append(factors, FactorContainsNines)
	}

	if point := strings.IndexByte(number, '.'); point >= 0 {
		frac := number[point+1:]
		if len(frac) > places {
			next := frac[places]
			if next >= '5' {
				factors = append(factors, FactorRequiresRoundUp)
			}
			if next == '5' {
				factors = append(factors, FactorBorderlineFive)
			}
		}
		if len(frac) > 3 {
			factors = append(factors, FactorManyDecimalDigits)
		}
	}

	if places > 1 {
		factors = append(factors, FactorMultiPlaceTarget)
	}

	return factors
}

// legacyExplanation reproduces the original free-text misconception
// message for backward-compatible consumers.
func legacyExplanation(q questionbank.Question, studentValue, correctValue string) string {
	prefix := fmt.Sprintf("Your answer of %s indicates a misconception: ", studentValue)

	if !strings.Contains(studentValue, ".") {
		return prefix + "You appear to be rounding to the nearest whole number instead of the specified decimal place."
	}

	studentPlaces := rounding.DecimalDigits(studentValue)
	if studentPlaces != q.DecimalPlaces {
		if studentPlaces < q.DecimalPlaces {
			return prefix + "You've rounded to fewer decimal places than requested."
		}
		return prefix + "You've rounded to more decimal places than requested."
	}

	student, err1 := strconv.ParseFloat(studentValue, 64)
	correct, err2 := strconv.ParseFloat(correctValue, 64)
	if err1 == nil && err2 == nil {
		if student < correct {
			return prefix + "You identified the correct decimal place, but didn't round up when you should have."
		}
		if student > correct {
			return prefix + "You identified the correct decimal place, but rounded up when you shouldn't have."
		}
	}

	return prefix + "There seems to be a misunderstanding of the rounding process."
}
