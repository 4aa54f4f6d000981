package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/ui/theme"
)

// MultiChoice renders the four lettered answers of a question and
// tracks the learner's cursor. After Reveal it re-renders with the
// correct choice green and a wrong pick red.
type MultiChoice struct {
	question *questionbank.FormattedQuestion
	cursor   int

	revealed bool
	chosen   string
}

// NewMultiChoice creates a choice list for a formatted question.
func NewMultiChoice(q *questionbank.FormattedQuestion) MultiChoice {
	return MultiChoice{question: q}
}

// Update moves the cursor. It returns the selected letter and true when
// the learner confirms a choice; selection is ignored after Reveal.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, string, bool) {
	if m.revealed {
		return m, "", false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, "", false
	}

	switch kmsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(questionbank.Letters)-1 {
			m.cursor++
		}
	case "a", "b", "c", "d":
		for i, letter := range questionbank.Letters {
			if letter == string(kmsg.String()[0]-'a'+'A') {
				m.cursor = i
			}
		}
		return m, questionbank.Letters[m.cursor], true
	case "enter":
		return m, questionbank.Letters[m.cursor], true
	}

	return m, "", false
}

// Reveal freezes the list and marks the learner's pick for rendering.
func (m *MultiChoice) Reveal(chosen string) {
	m.revealed = true
	m.chosen = chosen
}

// View renders the choice list.
func (m MultiChoice) View() string {
	rows := make([]string, 0, len(questionbank.Letters))

	for i, letter := range questionbank.Letters {
		value, _ := m.question.Choice(letter)
		label := letter + ") " + value

		var style lipgloss.Style
		cursor := "  "

		switch {
		case m.revealed && letter == m.question.CorrectLetter:
			style = theme.Correct
			cursor = "✓ "
		case m.revealed && letter == m.chosen:
			style = theme.Incorrect
			cursor = "✗ "
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.cursor:
			style = theme.Selected
			cursor = "> "
		default:
			style = theme.Body
		}

		rows = append(rows, style.Render(cursor+label))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
