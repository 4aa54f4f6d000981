// Package rounding provides digit analysis and exact decimal-string
// quantization for rounding questions. All arithmetic is performed on
// the decimal string itself so results never pick up binary float noise.
package rounding

import "strings"

// Steps records the digit analysis for rounding a number to a given
// number of decimal places. It is shown to the learner as a worked
// verification of the correct answer.
type Steps struct {
	OriginalNumber string
	DecimalPlaces  int
	TargetDigit    byte // digit at the place being rounded to, '0' if absent
	RightDigit     byte // digit immediately after the target, '0' if absent
	RoundUp        bool // RightDigit >= '5'
	CorrectAnswer  string
}

// RoundUpText returns the learner-facing description of the rounding
// direction.
func (s Steps) RoundUpText() string {
	if s.RoundUp {
		return "round up"
	}
	return "keep the same"
}

// Analyze locates the target and right digits of number for the given
// decimal-place count and determines the rounding direction. Digits past
// the end of the string default to '0'. CorrectAnswer is left empty; the
// caller fills it from the question's ground truth.
func Analyze(number string, places int) (Steps, error) {
	if err := validateNumber(number, places); err != nil {
		return Steps{}, err
	}

	steps := Steps{
		OriginalNumber: number,
		DecimalPlaces:  places,
		TargetDigit:    '0',
		RightDigit:     '0',
	}

	point := strings.IndexByte(number, '.')
	if point < 0 {
		// Whole number: every decimal digit is an implicit zero.
		return steps, nil
	}

	targetIdx := point + places
	if targetIdx < len(number) && targetIdx > point {
		steps.TargetDigit = number[targetIdx]
	}
	if rightIdx := targetIdx + 1; rightIdx < len(number) && rightIdx > point {
		steps.RightDigit = number[rightIdx]
	}

	steps.RoundUp = steps.RightDigit >= '5'
	return steps, nil
}

// DecimalDigits returns the number of digits after the decimal point,
// or 0 when the string has no point.
func DecimalDigits(number string) int {
	if point := strings.IndexByte(number, '.'); point >= 0 {
		return len(number) - point - 1
	}
	return 0
}

func validateNumber(number string, places int) error {
	if places < 0 {
		return &InvalidNumberFormatError{Input: number, Reason: "negative decimal places"}
	}
	if _, _, _, err := splitNumber(number); err != nil {
		return err
	}
	return nil
}
