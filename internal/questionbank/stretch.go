package questionbank

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/roundtutor/internal/progression"
)

// synthesizeStretch builds a nine-boundary question on demand: a random
// base question from the early pools has its first decimal digit forced
// to 9, decimal digits padded to a length drawn from the stage rules,
// and the answer recomputed as whole+1. With a 9 in the rounding
// position and a non-zero digit after it the number always rounds the
// whole part up, so the increment is exact by construction rather than
// a general rounding computation.
func (b *Bank) synthesizeStretch() (Question, error) {
	bases := make([]Question, 0,
		len(b.pools[progression.Stage1NoRoundUp])+len(b.pools[progression.Stage1WithRoundUp]))
	bases = append(bases, b.pools[progression.Stage1NoRoundUp]...)
	bases = append(bases, b.pools[progression.Stage1WithRoundUp]...)
	if len(bases) == 0 {
		return Question{}, fmt.Errorf("no base questions for stretch synthesis")
	}

	base := bases[b.rng.IntN(len(bases))]
	whole, frac, _ := strings.Cut(base.Number, ".")

	decimalPart := "9" + frac[1:]

	lengths := StageRules[progression.StageStretch].DigitsAfterDecimal
	targetLen := lengths[b.rng.IntN(len(lengths))]
	for len(decimalPart) < targetLen {
		decimalPart += strconv.Itoa(b.rng.IntN(10))
	}

	wholeValue, err := strconv.Atoi(whole)
	if err != nil {
		return Question{}, fmt.Errorf("stretch base %q: %w", base.Number, err)
	}

	return Question{
		Number:        whole + "." + decimalPart,
		DecimalPlaces: 1,
		Answer:        strconv.Itoa(wholeValue+1) + ".0",
		RoundingUp:    true,
	}, nil
}
