package companion

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an encouraging math tutor assistant helping students learn how to round decimal numbers.
Your name is Math Helper. Your personality is friendly, patient, and slightly playful but focused on learning.
You should be concise (2-3 sentences max per message) and engaging for students aged 10-14.

Your primary goals are:
1. Motivate students by acknowledging their efforts and progress
2. Provide age-appropriate encouragement when they struggle
3. Explain the learning journey clearly
4. Celebrate achievements meaningfully

Never directly solve problems for students but guide their thinking process.`

// userPrompt renders the per-type prompt template with the message context.
func userPrompt(msgType MessageType, mctx Context) string {
	var b strings.Builder

	switch msgType {
	case TypeWelcome:
		b.WriteString("Introduce yourself briefly as Math Helper. Mention you're here to help with rounding practice.\n")
		b.WriteString("Express enthusiasm about working with the student. Keep it to 2 sentences maximum.\n")
		fmt.Fprintf(&b, "Current stage: %s\n", orDefault(mctx.CurrentStageDescription, "beginning"))

	case TypeStageTransition:
		fmt.Fprintf(&b, "The student is transitioning from stage %s to %s.\n",
			orDefault(mctx.PreviousStage, "previous"), orDefault(mctx.CurrentStage, "new"))
		fmt.Fprintf(&b, "Previous stage focus: %s\n", orDefault(mctx.PreviousStageDescription, "rounding basics"))
		fmt.Fprintf(&b, "New stage focus: %s\n", orDefault(mctx.CurrentStageDescription, "advanced rounding"))
		b.WriteString("Congratulate them on their progress and briefly explain what they'll learn next.\n")

	case TypeEncouragement:
		fmt.Fprintf(&b, "The student has answered %d questions correctly in a row.\n", mctx.ConsecutiveCorrect)
		fmt.Fprintf(&b, "They've attempted %d questions total in this stage.\n", mctx.QuestionsAttempted)
		b.WriteString("Give them specific encouragement about their consistency or improvement.\n")

	case TypeStruggleSupport:
		fmt.Fprintf(&b, "The student has made %d incorrect attempts recently.\n", mctx.WrongAnswers)
		fmt.Fprintf(&b, "The concept they're working on is %s.\n", orDefault(mctx.CurrentConcept, "rounding to decimal places"))
		fmt.Fprintf(&b, "Their specific error pattern might be %s.\n", orDefault(mctx.ErrorPattern, "inconsistent application of rounding rules"))
		b.WriteString("Provide supportive encouragement and a gentle reminder about the concept.\n")
		b.WriteString("Don't directly tell them the answer or approach.\n")

	case TypeCompletion:
		fmt.Fprintf(&b, "The student has completed the lesson with %d of %d questions correct.\n",
			mctx.CorrectAnswers, mctx.QuestionsAttempted)
		b.WriteString("Congratulate them warmly on finishing their rounding practice.\n")

	default:
		b.WriteString("Provide a helpful response about decimal rounding practice.\n")
	}

	if hints := mctx.personalizationHints(); hints != "" {
		b.WriteString(hints)
	}

	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
