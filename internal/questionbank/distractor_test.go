package questionbank

import (
	"math/rand/v2"
	"testing"
)

func TestDistractorsInvariants(t *testing.T) {
	bank := newTestBank(t)

	// Every pool question must yield 3 distinct distractors, none equal
	// to the answer.
	for stage, pool := range bank.pools {
		for _, q := range pool {
			distractors, err := Distractors(q)
			if err != nil {
				t.Fatalf("stage %s question %s: %v", stage, q.ID(), err)
			}
			if len(distractors) != 3 {
				t.Fatalf("question %s: got %d distractors, want 3", q.ID(), len(distractors))
			}
			seen := map[string]bool{q.Answer: true}
			for _, d := range distractors {
				if seen[d] {
					t.Errorf("question %s: duplicate or answer-colliding distractor %q", q.ID(), d)
				}
				seen[d] = true
			}
		}
	}
}

func TestDistractorsAntiDirection(t *testing.T) {
	// 22.46 rounds up to 22.5; the first distractor simulates failing
	// to round up.
	q := Question{Number: "22.46", DecimalPlaces: 1, Answer: "22.5", RoundingUp: true}
	distractors, err := Distractors(q)
	if err != nil {
		t.Fatalf("Distractors: %v", err)
	}
	if distractors[0] != "22.4" {
		t.Errorf("anti-direction distractor = %q, want %q", distractors[0], "22.4")
	}

	// 13.62 keeps its digit; the first distractor simulates rounding up
	// anyway.
	q = Question{Number: "13.62", DecimalPlaces: 1, Answer: "13.6", RoundingUp: false}
	distractors, err = Distractors(q)
	if err != nil {
		t.Fatalf("Distractors: %v", err)
	}
	if distractors[0] != "13.7" {
		t.Errorf("anti-direction distractor = %q, want %q", distractors[0], "13.7")
	}
}

func TestDistractorsIncludeTruncation(t *testing.T) {
	// For a round-up question the anti-direction distractor equals the
	// truncated value, which is what the misconception classifier keys on.
	q := Question{Number: "12.68", DecimalPlaces: 1, Answer: "12.7", RoundingUp: true}
	distractors, err := Distractors(q)
	if err != nil {
		t.Fatalf("Distractors: %v", err)
	}
	found := false
	for _, d := range distractors {
		if d == "12.6" {
			found = true
		}
	}
	if !found {
		t.Errorf("distractors %v missing truncated value 12.6", distractors)
	}
}

func TestFormatChoiceInvariants(t *testing.T) {
	bank := newTestBank(t)

	for _, q := range bank.Pool("1.3") {
		fq, err := bank.Format(q)
		if err != nil {
			t.Fatalf("Format(%s): %v", q.ID(), err)
		}

		if len(fq.Choices) != 4 {
			t.Fatalf("question %s: %d choices, want 4", q.ID(), len(fq.Choices))
		}

		matches := 0
		values := make(map[string]bool)
		for _, letter := range Letters {
			v, ok := fq.Choice(letter)
			if !ok {
				t.Fatalf("question %s: missing letter %s", q.ID(), letter)
			}
			if values[v] {
				t.Errorf("question %s: duplicate choice value %q", q.ID(), v)
			}
			values[v] = true
			if v == q.Answer {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("question %s: %d choices equal the answer, want exactly 1", q.ID(), matches)
		}

		correct, _ := fq.Choice(fq.CorrectLetter)
		if correct != q.Answer {
			t.Errorf("question %s: correct letter %s maps to %q, want %q", q.ID(), fq.CorrectLetter, correct, q.Answer)
		}
	}
}

func TestFormatShuffleIsSeeded(t *testing.T) {
	q := Question{Number: "12.758", DecimalPlaces: 1, Answer: "12.8", RoundingUp: true}

	letters := func(seed uint64) string {
		bank, err := New(rand.New(rand.NewPCG(seed, seed)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		fq, err := bank.Format(q)
		if err != nil {
			t.Fatalf("Format: %v", err)
		}
		return fq.CorrectLetter
	}

	if letters(3) != letters(3) {
		t.Error("identical seeds produced different letter placements")
	}
}
