// Package profile aggregates a learner's rolling answer history into
// the behavioral signals the AI companion personalizes against.
package profile

import (
	"time"

	"github.com/abhisek/roundtutor/internal/diagnosis"
	"github.com/abhisek/roundtutor/internal/progression"
)

// Trend labels for response-time movement over the last three answers.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Engagement levels derived from pace and volume.
const (
	EngagementHigh   = "high"
	EngagementNormal = "normal"
	EngagementLow    = "low"
)

// QuestionResult is one immutable entry in the answer history.
type QuestionResult struct {
	QuestionID          string
	Stage               progression.Stage
	IsCorrect           bool
	StudentAnswer       string
	CorrectAnswer       string
	ResponseTimeSeconds float64
	MisconceptionType   diagnosis.Category // empty when correct or unclassified
	Timestamp           time.Time
}

// StagePerformance tracks attempts and correct answers for one stage.
type StagePerformance struct {
	Attempted int
	Correct   int
}

// Profile is the mutable per-learner aggregate. All derived fields are
// recomputed inside Record; readers treat them as plain values.
type Profile struct {
	TotalQuestions     int
	TotalCorrect       int
	ConsecutiveCorrect int
	ConsecutiveErrors  int
	CurrentStage       progression.Stage

	History               []QuestionResult
	MisconceptionPatterns map[diagnosis.Category]int
	StagePerformance      map[progression.Stage]*StagePerformance

	SessionStart          time.Time
	TotalTimeSpentMinutes float64
	QuestionsThisSession  int

	AverageResponseTime float64
	ResponseTimeTrend   string
	EngagementLevel     string

	LearnsFromMistakesQuickly bool
	PrefersEncouragement      bool
	RespondsToChallenges      bool
}

// New creates a fresh profile anchored at now.
func New(now time.Time) *Profile {
	return &Profile{
		CurrentStage:              progression.Stage1NoRoundUp,
		MisconceptionPatterns:     make(map[diagnosis.Category]int),
		StagePerformance:          make(map[progression.Stage]*StagePerformance),
		SessionStart:              now,
		ResponseTimeTrend:         TrendStable,
		EngagementLevel:           EngagementNormal,
		LearnsFromMistakesQuickly: true,
		PrefersEncouragement:      true,
	}
}

// Record appends a result to the history and recomputes every derived
// signal. History is append-only and never reordered.
func (p *Profile) Record(result QuestionResult) {
	p.History = append(p.History, result)

	p.TotalQuestions++
	p.QuestionsThisSession++

	if result.IsCorrect {
		p.TotalCorrect++
		p.ConsecutiveCorrect++
		p.ConsecutiveErrors = 0
	} else {
		p.ConsecutiveCorrect = 0
		p.ConsecutiveErrors++
	}

	if result.MisconceptionType != "" {
		p.MisconceptionPatterns[result.MisconceptionType]++
	}

	perf := p.StagePerformance[result.Stage]
	if perf == nil {
		perf = &StagePerformance{}
		p.StagePerformance[result.Stage] = perf
	}
	perf.Attempted++
	if result.IsCorrect {
		perf.Correct++
	}

	p.updateResponseTime(result.ResponseTimeSeconds)
	p.updateBehavioralFlags()
}

func (p *Profile) updateResponseTime(seconds float64) {
	if p.TotalQuestions == 1 {
		p.AverageResponseTime = seconds
	} else {
		n := float64(p.TotalQuestions)
		p.AverageResponseTime = (p.AverageResponseTime*(n-1) + seconds) / n
	}

	// Trend needs a three-answer window; below that the previous value
	// is retained.
	if len(p.History) >= 3 {
		window := p.History[len(p.History)-3:]
		first, latest := window[0].ResponseTimeSeconds, window[2].ResponseTimeSeconds
		switch {
		case latest < first*0.8:
			p.ResponseTimeTrend = TrendImproving
		case latest > first*1.2:
			p.ResponseTimeTrend = TrendDeclining
		default:
			p.ResponseTimeTrend = TrendStable
		}
	}
}

func (p *Profile) updateBehavioralFlags() {
	if p.ConsecutiveErrors >= 2 {
		p.LearnsFromMistakesQuickly = false
	} else if p.ConsecutiveCorrect >= 3 && p.anyRecentError(5) {
		p.LearnsFromMistakesQuickly = true
	}

	switch {
	case p.QuestionsThisSession > 10 && p.TotalTimeSpentMinutes < 20:
		p.EngagementLevel = EngagementHigh
	case p.AverageResponseTime > 30:
		p.EngagementLevel = EngagementLow
	default:
		p.EngagementLevel = EngagementNormal
	}

	// Monotonic: once a learner has shown they rise to challenges the
	// flag stays set.
	if p.SuccessRate() > 0.8 && p.ConsecutiveCorrect >= 4 {
		p.RespondsToChallenges = true
	}
}

func (p *Profile) anyRecentError(lastN int) bool {
	start := len(p.History) - lastN
	if start < 0 {
		start = 0
	}
	for _, r := range p.History[start:] {
		if !r.IsCorrect {
			return true
		}
	}
	return false
}

// SuccessRate is total correct over total answered, 0 when empty.
func (p *Profile) SuccessRate() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.TotalCorrect) / float64(p.TotalQuestions)
}

// CurrentStageSuccessRate is the success rate within CurrentStage only.
func (p *Profile) CurrentStageSuccessRate() float64 {
	perf := p.StagePerformance[p.CurrentStage]
	if perf == nil || perf.Attempted == 0 {
		return 0
	}
	return float64(perf.Correct) / float64(perf.Attempted)
}

// MostCommonMisconception returns the most frequent misconception
// category, or "" when none have been recorded. Ties break toward the
// lexically smaller category so the answer is deterministic.
func (p *Profile) MostCommonMisconception() diagnosis.Category {
	var best diagnosis.Category
	bestCount := 0
	for category, count := range p.MisconceptionPatterns {
		if count > bestCount || (count == bestCount && bestCount > 0 && category < best) {
			best = category
			bestCount = count
		}
	}
	return best
}

// IsStruggling reports whether the learner currently needs support.
func (p *Profile) IsStruggling() bool {
	return p.ConsecutiveErrors >= 2 ||
		p.SuccessRate() < 0.4 ||
		p.CurrentStageSuccessRate() < 0.3
}

// IsExcelling reports whether the learner is ready for harder material.
func (p *Profile) IsExcelling() bool {
	return p.ConsecutiveCorrect >= 4 ||
		(p.SuccessRate() > 0.8 && p.TotalQuestions >= 5)
}

// RecentSummary condenses the last n history entries for prompt context.
type RecentSummary struct {
	Questions      int
	Correct        int
	SuccessRate    float64
	AverageTime    float64
	Misconceptions []diagnosis.Category
}

// Recent summarizes the most recent n results.
func (p *Profile) Recent(n int) RecentSummary {
	if len(p.History) == 0 {
		return RecentSummary{}
	}

	start := len(p.History) - n
	if start < 0 {
		start = 0
	}
	window := p.History[start:]

	summary := RecentSummary{Questions: len(window)}
	totalTime := 0.0
	for _, r := range window {
		if r.IsCorrect {
			summary.Correct++
		}
		totalTime += r.ResponseTimeSeconds
		if r.MisconceptionType != "" {
			summary.Misconceptions = append(summary.Misconceptions, r.MisconceptionType)
		}
	}
	summary.SuccessRate = float64(summary.Correct) / float64(len(window))
	summary.AverageTime = totalTime / float64(len(window))
	return summary
}
