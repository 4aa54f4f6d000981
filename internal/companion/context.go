package companion

import (
	"fmt"
	"strings"

	"github.com/abhisek/roundtutor/internal/diagnosis"
	"github.com/abhisek/roundtutor/internal/profile"
	"github.com/abhisek/roundtutor/internal/progression"
)

// Context carries the situational details a prompt template can use.
// Zero values render as generic phrasing.
type Context struct {
	CurrentStage             string
	PreviousStage            string
	CurrentStageDescription  string
	PreviousStageDescription string

	ConsecutiveCorrect int
	CorrectAnswers     int
	QuestionsAttempted int
	WrongAnswers       int

	CurrentConcept string
	ErrorPattern   string

	// Learner signals carried over from the profile.
	PerformanceLevel     string
	EmotionalState       string
	EngagementLevel      string
	PrefersEncouragement bool
	RespondsToChallenges bool
}

// BuildContext assembles a message Context from the learner's profile
// and progression state. report may be nil when the last answer was
// correct or unclassified.
func BuildContext(prof *profile.Profile, state *progression.State, report *diagnosis.Report) Context {
	mctx := Context{
		CurrentStage:            string(state.CurrentStage),
		CurrentStageDescription: state.CurrentStage.Description(),
		ConsecutiveCorrect:      state.ConsecutiveCorrect,
		CorrectAnswers:          state.CorrectAnswers,
		QuestionsAttempted:      state.QuestionsAttempted,
		CurrentConcept:          state.CurrentStage.Description(),
	}

	if prof != nil {
		mctx.WrongAnswers = prof.ConsecutiveErrors
		mctx.PerformanceLevel = performanceLevel(prof)
		mctx.EmotionalState = emotionalState(prof)
		mctx.EngagementLevel = prof.EngagementLevel
		mctx.PrefersEncouragement = prof.PrefersEncouragement
		mctx.RespondsToChallenges = prof.RespondsToChallenges

		if common := prof.MostCommonMisconception(); common != "" {
			mctx.ErrorPattern = string(common)
		}
	}

	if report != nil {
		mctx.ErrorPattern = string(report.Type)
		mctx.CurrentConcept = report.CorrectConcept
	}

	return mctx
}

// WithTransition records the stage the learner just left.
func (c Context) WithTransition(from progression.Stage) Context {
	c.PreviousStage = string(from)
	c.PreviousStageDescription = from.Description()
	return c
}

// performanceLevel buckets the learner's overall success rate.
func performanceLevel(prof *profile.Profile) string {
	rate := prof.SuccessRate()
	switch {
	case rate > 0.8 && prof.ConsecutiveCorrect >= 3:
		return "excelling"
	case rate > 0.6:
		return "progressing_well"
	case rate > 0.4:
		return "struggling_some"
	}
	return "struggling_significantly"
}

// emotionalState guesses the learner's likely mood from recent results.
func emotionalState(prof *profile.Profile) string {
	switch {
	case prof.ConsecutiveErrors >= 2:
		return "frustrated"
	case prof.ConsecutiveErrors == 1:
		return "confused"
	case prof.IsStruggling():
		return "relieved"
	case prof.ConsecutiveCorrect > 0:
		return "confident"
	}
	return "neutral"
}

// personalizationHints renders learner-signal lines appended to every
// prompt so the model can adapt its tone.
func (c Context) personalizationHints() string {
	if c.PerformanceLevel == "" && c.EmotionalState == "" {
		return ""
	}

	var b strings.Builder
	if c.PerformanceLevel != "" {
		fmt.Fprintf(&b, "Student performance level: %s.\n", c.PerformanceLevel)
	}
	if c.EmotionalState != "" {
		fmt.Fprintf(&b, "Likely emotional state: %s.\n", c.EmotionalState)
	}
	if c.EngagementLevel != "" {
		fmt.Fprintf(&b, "Engagement level: %s.\n", c.EngagementLevel)
	}
	return b.String()
}
