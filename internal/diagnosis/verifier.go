package diagnosis

import (
	"fmt"
	"io"
	"os"

	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/rounding"
)

// warnWriter receives non-fatal consistency warnings. Swapped in tests.
var warnWriter io.Writer = os.Stderr

// Verify checks the learner's lettered choice against the formatted
// question. Verification steps are always computed, correct or not, so
// the feedback screen can walk through the reasoning. Internal
// inconsistencies are repaired from the source question and logged; the
// learner's flow never breaks on them.
func Verify(fq *questionbank.FormattedQuestion, studentLetter string) (Result, error) {
	studentValue, ok := fq.Choice(studentLetter)
	if !ok {
		return Result{}, fmt.Errorf("verify: unknown choice letter %q", studentLetter)
	}

	q := fq.Source
	isCorrect := studentLetter == fq.CorrectLetter

	steps, err := rounding.Analyze(q.Number, q.DecimalPlaces)
	if err != nil {
		return Result{}, err
	}
	steps.CorrectAnswer = q.Answer

	// The analyzer works from the question's own number, so a mismatch
	// here means the steps were built against stale data. Repair from
	// the source of truth and keep going.
	if steps.OriginalNumber != q.Number {
		fmt.Fprintf(warnWriter, "warning: verification steps used %q, repairing to %q\n",
			steps.OriginalNumber, q.Number)
		steps.OriginalNumber = q.Number
	}

	// A direction disagreement is a data-construction bug (stretch
	// synthesis produces these when the padded digit lands below 5).
	// Log it; the recorded ground truth still drives scoring.
	if steps.RoundUp != q.RoundingUp {
		fmt.Fprintf(warnWriter, "warning: question %s: analyzed round_up=%v, recorded %v\n",
			q.ID(), steps.RoundUp, q.RoundingUp)
	}

	result := Result{
		IsCorrect:     isCorrect,
		StudentLetter: studentLetter,
		StudentValue:  studentValue,
		Steps:         steps,
	}

	if !isCorrect {
		correctValue, _ := fq.Choice(fq.CorrectLetter)
		result.Misconception = classify(q, studentValue, correctValue)
	}

	return result, nil
}
