package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/roundtutor/internal/ui/theme"
)

// Spinner wraps bubbles/spinner with RoundTutor styling, shown while
// waiting on a companion message.
type Spinner struct {
	Model spinner.Model
	Label string
}

// NewSpinner creates a styled spinner with a label.
func NewSpinner(label string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Secondary)
	return Spinner{Model: s, Label: label}
}

// Init starts the tick loop.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner and label.
func (s Spinner) View() string {
	return s.Model.View() + " " + theme.Hint.Render(s.Label)
}
