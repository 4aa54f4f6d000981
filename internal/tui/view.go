package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/roundtutor/internal/progression"
	"github.com/abhisek/roundtutor/internal/ui/components"
	"github.com/abhisek/roundtutor/internal/ui/layout"
	"github.com/abhisek/roundtutor/internal/ui/theme"
)

func (m Model) title() string {
	switch m.phase {
	case phaseExample:
		return "Worked Example"
	case phaseQuestion, phaseGrading:
		return "Practice"
	case phaseFeedback:
		if m.outcome.Result.IsCorrect {
			return "Correct!"
		}
		return "Not Quite"
	case phaseComplete:
		return "Session Summary"
	}
	return ""
}

func (m Model) stageLabel() string {
	stage := m.engine.State().CurrentStage
	if stage.Terminal() {
		return "Done  "
	}
	return "Stage " + string(stage) + "  "
}

func (m Model) footerHints() []layout.KeyHint {
	switch m.phase {
	case phaseExample:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "Start over"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m Model) contentView() string {
	var body string
	switch m.phase {
	case phaseExample:
		body = m.exampleView()
	case phaseQuestion, phaseGrading:
		body = m.questionView()
	case phaseFeedback:
		body = m.feedbackView()
	case phaseComplete:
		body = m.completeView()
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		PaddingTop(1).
		Render(body)
}

func (m Model) progressView() string {
	stage := m.engine.State().CurrentStage
	current := len(progression.Order)
	for i, s := range progression.Order {
		if s == stage {
			current = i
			break
		}
	}
	bar := components.ProgressBar{Width: 30, Current: current, Total: len(progression.Order) - 1}
	return bar.View()
}

func (m Model) exampleView() string {
	steps := m.exampleSteps

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Let's round %s to %d decimal place(s)", steps.OriginalNumber, steps.DecimalPlaces)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("1. Find the digit in the target place: %c", steps.TargetDigit)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("2. Look at the digit to its right: %c", steps.RightDigit)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("3. Since it's %c, we %s", steps.RightDigit, steps.RoundUpText())))
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render(fmt.Sprintf("4. Answer: %s", steps.CorrectAnswer)))

	card := theme.Card.Render(b.String())

	desc := theme.Subtitle.Render("This stage practices " + m.engine.State().CurrentStage.Description() + ".")
	parts := []string{desc, "", card}
	if m.welcome != "" {
		parts = append(parts, "", theme.Companion.Render("💬 "+m.welcome))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) questionView() string {
	parts := []string{
		m.progressView(),
		"",
		theme.Title.Render(m.question.Text),
		"",
		m.choices.View(),
	}
	if m.phase == phaseGrading {
		parts = append(parts, "", m.spinner.View())
	}
	if m.err != nil {
		parts = append(parts, "", theme.Incorrect.Render(m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) feedbackView() string {
	parts := []string{
		m.progressView(),
		"",
		theme.Title.Render(m.question.Text),
		"",
		m.choices.View(),
		"",
	}

	if m.outcome.Result.IsCorrect {
		parts = append(parts, theme.Correct.Render("✓ That's right!"))
	} else {
		steps := m.outcome.Result.Steps
		var b strings.Builder
		b.WriteString(fmt.Sprintf("The digit in the target place is %c and the digit after it is %c,\n", steps.TargetDigit, steps.RightDigit))
		b.WriteString(fmt.Sprintf("so we %s. The answer is %s.", steps.RoundUpText(), m.outcome.Question.Source.Answer))
		parts = append(parts, theme.Card.Render(b.String()))

		if mc := m.outcome.Result.Misconception; mc != nil && mc.LegacyText != "" {
			parts = append(parts, "", theme.Hint.Render(mc.LegacyText))
		}
	}

	if m.outcome.Message != "" {
		parts = append(parts, "", theme.Companion.Render("💬 "+m.outcome.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) completeView() string {
	prof := m.engine.Profile()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Questions answered:  %d\n", prof.TotalQuestions))
	b.WriteString(fmt.Sprintf("Correct:             %d\n", prof.TotalCorrect))
	b.WriteString(fmt.Sprintf("Accuracy:            %.0f%%\n", prof.SuccessRate()*100))
	b.WriteString(fmt.Sprintf("Avg response time:   %.1fs", prof.AverageResponseTime))
	if mc := prof.MostCommonMisconception(); mc != "" {
		b.WriteString(fmt.Sprintf("\nWorth reviewing:     %s", strings.ReplaceAll(string(mc), "_", " ")))
	}

	parts := []string{
		theme.Title.Render("🎉 You completed the rounding ladder!"),
		"",
		theme.Card.Render(b.String()),
	}
	if m.outcome.Message != "" {
		parts = append(parts, "", theme.Companion.Render("💬 "+m.outcome.Message))
	}
	if m.err != nil {
		parts = append(parts, "", theme.Incorrect.Render(m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}
