// Package tui is the terminal front end: a single Bubble Tea model that
// walks the learner through worked examples, questions, feedback, and
// the completion summary.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/rounding"
	"github.com/abhisek/roundtutor/internal/session"
	"github.com/abhisek/roundtutor/internal/ui/components"
	"github.com/abhisek/roundtutor/internal/ui/layout"
)

type phase int

const (
	phaseExample phase = iota
	phaseQuestion
	phaseGrading
	phaseFeedback
	phaseComplete
)

type welcomeMsg struct {
	text string
}

type answerGradedMsg struct {
	outcome session.Outcome
	err     error
}

// Model is the root Bubble Tea model.
type Model struct {
	engine *session.Engine
	phase  phase

	width  int
	height int

	welcome string

	example      questionbank.WorkedExample
	exampleSteps rounding.Steps

	question *questionbank.FormattedQuestion
	choices  components.MultiChoice

	outcome session.Outcome
	spinner components.Spinner

	err error
}

// New creates the model for a session engine.
func New(engine *session.Engine) Model {
	return Model{
		engine:  engine,
		spinner: components.NewSpinner("checking your answer..."),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return welcomeMsg{text: m.engine.Start(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case welcomeMsg:
		m.welcome = msg.text
		return m.enterNextPhase()

	case answerGradedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.phase = phaseQuestion
			return m, nil
		}
		m.outcome = msg.outcome
		m.choices.Reveal(msg.outcome.Result.StudentLetter)
		m.phase = phaseFeedback
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.phase == phaseGrading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseExample:
		switch msg.String() {
		case "enter", " ":
			m.engine.AdvanceExample()
			return m.enterNextPhase()
		}

	case phaseQuestion:
		var letter string
		var picked bool
		m.choices, letter, picked = m.choices.Update(msg)
		if picked {
			m.err = nil
			m.phase = phaseGrading
			return m, tea.Batch(m.spinner.Init(), m.submitCmd(letter))
		}

	case phaseFeedback:
		if msg.String() == "enter" {
			return m.enterNextPhase()
		}

	case phaseComplete:
		switch msg.String() {
		case "r":
			m.engine.Restart(context.Background())
			m.welcome = ""
			return m.enterNextPhase()
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// enterNextPhase consults the progression state and moves the UI to the
// matching phase: worked example, next question, or the summary.
func (m Model) enterNextPhase() (tea.Model, tea.Cmd) {
	state := m.engine.State()

	if state.CurrentStage.Terminal() {
		m.phase = phaseComplete
		return m, nil
	}

	if ex, steps, ok := m.engine.Example(); ok {
		m.example = ex
		m.exampleSteps = steps
		m.phase = phaseExample
		return m, nil
	}
	// ShowingExample with an exhausted curriculum still needs clearing.
	for state.ShowingExample {
		m.engine.AdvanceExample()
	}

	fq, err := m.engine.ServeQuestion(context.Background())
	if err != nil {
		m.err = err
		m.phase = phaseComplete
		return m, nil
	}
	m.question = fq
	m.choices = components.NewMultiChoice(fq)
	m.phase = phaseQuestion
	return m, nil
}

// submitCmd grades the answer off the UI loop. The companion call
// inside SubmitAnswer can take a network round trip.
func (m Model) submitCmd(letter string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.engine.SubmitAnswer(context.Background(), letter)
		return answerGradedMsg{outcome: outcome, err: err}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.title(), m.stageLabel(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	content := m.contentView()

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program over the given session.
func Run(engine *session.Engine) error {
	p := tea.NewProgram(New(engine))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
