package questionbank

import "fmt"

// Format turns a Question into its multiple-choice presentation: the
// correct answer and three distractors shuffled across letters A-D.
func (b *Bank) Format(q Question) (*FormattedQuestion, error) {
	distractors, err := Distractors(q)
	if err != nil {
		return nil, err
	}

	values := append([]string{q.Answer}, distractors...)
	b.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	choices := make(map[string]string, len(Letters))
	correctLetter := ""
	for i, letter := range Letters {
		choices[letter] = values[i]
		if values[i] == q.Answer {
			correctLetter = letter
		}
	}
	if correctLetter == "" {
		return nil, fmt.Errorf("format question %s: answer missing from choices", q.ID())
	}

	return &FormattedQuestion{
		Text:          q.Text(),
		Choices:       choices,
		CorrectLetter: correctLetter,
		Source:        q,
	}, nil
}
