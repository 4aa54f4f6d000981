package rounding

import "strings"

// Quantizers over decimal strings. Each returns the input re-expressed
// with exactly the requested number of decimal places (no point at all
// when places is 0), carrying into the whole part when needed.

// RoundHalfUp rounds number to places decimal places, rounding up when
// the first dropped digit is 5 or greater.
func RoundHalfUp(number string, places int) (string, error) {
	return quantize(number, places, func(dropped string) bool {
		return len(dropped) > 0 && dropped[0] >= '5'
	})
}

// Truncate drops all digits past places without rounding.
func Truncate(number string, places int) (string, error) {
	return quantize(number, places, func(string) bool { return false })
}

// RoundAway rounds up in magnitude whenever any dropped digit is
// non-zero. Used to simulate the "rounded up when the digit said not to"
// error when building distractors.
func RoundAway(number string, places int) (string, error) {
	return quantize(number, places, func(dropped string) bool {
		return strings.ContainsFunc(dropped, func(r rune) bool { return r != '0' })
	})
}

func quantize(number string, places int, carryFn func(dropped string) bool) (string, error) {
	sign, whole, frac, err := splitNumber(number)
	if err != nil {
		return "", err
	}
	if places < 0 {
		return "", &InvalidNumberFormatError{Input: number, Reason: "negative decimal places"}
	}

	kept := frac
	dropped := ""
	if len(frac) > places {
		kept = frac[:places]
		dropped = frac[places:]
	}
	for len(kept) < places {
		kept += "0"
	}

	if carryFn(dropped) {
		whole, kept = incrementDigits(whole, kept)
	}

	if places == 0 {
		return sign + whole, nil
	}
	return sign + whole + "." + kept, nil
}

// incrementDigits adds one unit in the last place of whole+frac,
// propagating the carry leftward.
func incrementDigits(whole, frac string) (string, string) {
	digits := []byte(whole + frac)
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return string(digits[:len(whole)]), string(digits[len(whole):])
		}
		digits[i] = '0'
	}
	// Carry out of the leading digit: 99.9 -> 100.0.
	grown := "1" + string(digits)
	return grown[:len(whole)+1], grown[len(whole)+1:]
}

// splitNumber separates an optional sign, whole part and fractional part.
// It rejects strings with no digits, more than one decimal point, or any
// non-digit character.
func splitNumber(number string) (sign, whole, frac string, err error) {
	s := number
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	whole = s
	if point := strings.IndexByte(s, '.'); point >= 0 {
		whole = s[:point]
		frac = s[point+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return "", "", "", &InvalidNumberFormatError{Input: number, Reason: "multiple decimal points"}
		}
	}

	if whole == "" && frac == "" {
		return "", "", "", &InvalidNumberFormatError{Input: number, Reason: "no digits"}
	}
	for _, part := range []string{whole, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return "", "", "", &InvalidNumberFormatError{Input: number, Reason: "non-digit character"}
			}
		}
	}
	if whole == "" {
		whole = "0"
	}
	return sign, whole, frac, nil
}
