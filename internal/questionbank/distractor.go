package questionbank

import (
	"fmt"
	"strings"

	"github.com/abhisek/roundtutor/internal/rounding"
)

// Distractors derives three plausible wrong answers from a question by
// simulating common rounding errors, in priority order:
//
//  1. quantize in the opposite direction from the ground truth
//  2. quantize to one decimal place too many
//  3. quantize to the nearest whole number
//
// Candidates that collide with the answer or an earlier distractor are
// skipped; if fewer than three survive, fillers are produced by
// perturbing the answer in steps of 0.1 and 0.01.
func Distractors(q Question) ([]string, error) {
	seen := map[string]bool{q.Answer: true}
	out := make([]string, 0, 3)

	add := func(value string) {
		if len(out) < 3 && !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}

	antiDirection := rounding.Truncate
	if !q.RoundingUp {
		antiDirection = rounding.RoundAway
	}
	wrongDirection, err := antiDirection(q.Number, q.DecimalPlaces)
	if err != nil {
		return nil, err
	}
	add(wrongDirection)

	wrongPlace, err := rounding.RoundHalfUp(q.Number, q.DecimalPlaces+1)
	if err != nil {
		return nil, err
	}
	add(wrongPlace)

	wholeNumber, err := rounding.RoundHalfUp(q.Number, 0)
	if err != nil {
		return nil, err
	}
	add(wholeNumber)

	// Fill any remaining slots with answer +/- k*0.1, then +/- k*0.01.
	for k := 1; len(out) < 3; k++ {
		for _, delta := range []int{10 * k, -10 * k, k, -k} {
			value, perr := perturb(q.Answer, delta)
			if perr != nil {
				return nil, perr
			}
			add(value)
		}
	}

	return out, nil
}

// perturb shifts a decimal-string answer by deltaCents hundredths,
// staying in string arithmetic so fillers never carry float noise.
func perturb(answer string, deltaCents int) (string, error) {
	padded, err := rounding.Truncate(answer, 2)
	if err != nil {
		return "", err
	}

	negative := strings.HasPrefix(padded, "-")
	digits := strings.Replace(strings.TrimPrefix(padded, "-"), ".", "", 1)

	cents := 0
	for i := 0; i < len(digits); i++ {
		cents = cents*10 + int(digits[i]-'0')
	}
	if negative {
		cents = -cents
	}
	cents += deltaCents
	if cents < 0 {
		cents = -cents
		negative = true
	} else {
		negative = false
	}

	whole := cents / 100
	frac := cents % 100
	sign := ""
	if negative && cents != 0 {
		sign = "-"
	}

	value := fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	// Drop an insignificant trailing zero so fillers read like answers
	// ("12.70" -> "12.7", "13.00" -> "13.0"), keeping one decimal digit.
	if strings.HasSuffix(value, "0") && value[len(value)-2] != '.' {
		value = value[:len(value)-1]
	}
	return value, nil
}
