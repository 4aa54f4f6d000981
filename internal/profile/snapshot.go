package profile

import (
	"time"

	"github.com/abhisek/roundtutor/internal/diagnosis"
	"github.com/abhisek/roundtutor/internal/progression"
)

// Snapshot is the persisted form of a Profile. The answer history is
// deliberately excluded: it is a personalization aid, not a
// correctness-critical store, and dominates snapshot size.
type Snapshot struct {
	TotalQuestions     int    `json:"total_questions"`
	TotalCorrect       int    `json:"total_correct"`
	ConsecutiveCorrect int    `json:"consecutive_correct"`
	ConsecutiveErrors  int    `json:"consecutive_errors"`
	CurrentStage       string `json:"current_stage"`

	MisconceptionPatterns map[string]int            `json:"misconception_patterns"`
	StagePerformance      map[string]StagePerformance `json:"stage_performance"`

	SessionStart          string  `json:"session_start_time"`
	TotalTimeSpentMinutes float64 `json:"total_time_spent_minutes"`
	QuestionsThisSession  int     `json:"questions_this_session"`

	AverageResponseTime float64 `json:"average_response_time"`
	ResponseTimeTrend   string  `json:"response_time_trend"`
	EngagementLevel     string  `json:"engagement_level"`

	LearnsFromMistakesQuickly bool `json:"learns_from_mistakes_quickly"`
	PrefersEncouragement      bool `json:"prefers_encouragement"`
	RespondsToChallenges      bool `json:"responds_to_challenges"`
}

// ToSnapshot captures the profile for persistence, timestamps as
// ISO-8601.
func (p *Profile) ToSnapshot() Snapshot {
	snap := Snapshot{
		TotalQuestions:            p.TotalQuestions,
		TotalCorrect:              p.TotalCorrect,
		ConsecutiveCorrect:        p.ConsecutiveCorrect,
		ConsecutiveErrors:         p.ConsecutiveErrors,
		CurrentStage:              string(p.CurrentStage),
		MisconceptionPatterns:     make(map[string]int, len(p.MisconceptionPatterns)),
		StagePerformance:          make(map[string]StagePerformance, len(p.StagePerformance)),
		SessionStart:              p.SessionStart.Format(time.RFC3339),
		TotalTimeSpentMinutes:     p.TotalTimeSpentMinutes,
		QuestionsThisSession:      p.QuestionsThisSession,
		AverageResponseTime:       p.AverageResponseTime,
		ResponseTimeTrend:         p.ResponseTimeTrend,
		EngagementLevel:           p.EngagementLevel,
		LearnsFromMistakesQuickly: p.LearnsFromMistakesQuickly,
		PrefersEncouragement:      p.PrefersEncouragement,
		RespondsToChallenges:      p.RespondsToChallenges,
	}
	for category, count := range p.MisconceptionPatterns {
		snap.MisconceptionPatterns[string(category)] = count
	}
	for stage, perf := range p.StagePerformance {
		snap.StagePerformance[string(stage)] = *perf
	}
	return snap
}

// FromSnapshot restores a profile. A malformed timestamp falls back to
// now rather than failing the restore.
func FromSnapshot(snap Snapshot, now time.Time) *Profile {
	p := New(now)

	p.TotalQuestions = snap.TotalQuestions
	p.TotalCorrect = snap.TotalCorrect
	p.ConsecutiveCorrect = snap.ConsecutiveCorrect
	p.ConsecutiveErrors = snap.ConsecutiveErrors
	if stage := progression.Stage(snap.CurrentStage); stage.Valid() {
		p.CurrentStage = stage
	}

	for category, count := range snap.MisconceptionPatterns {
		p.MisconceptionPatterns[diagnosis.Category(category)] = count
	}
	for token, perf := range snap.StagePerformance {
		if stage := progression.Stage(token); stage.Valid() {
			restored := perf
			p.StagePerformance[stage] = &restored
		}
	}

	if start, err := time.Parse(time.RFC3339, snap.SessionStart); err == nil {
		p.SessionStart = start
	}
	p.TotalTimeSpentMinutes = snap.TotalTimeSpentMinutes
	p.QuestionsThisSession = snap.QuestionsThisSession
	p.AverageResponseTime = snap.AverageResponseTime
	if snap.ResponseTimeTrend != "" {
		p.ResponseTimeTrend = snap.ResponseTimeTrend
	}
	if snap.EngagementLevel != "" {
		p.EngagementLevel = snap.EngagementLevel
	}
	p.LearnsFromMistakesQuickly = snap.LearnsFromMistakesQuickly
	p.PrefersEncouragement = snap.PrefersEncouragement
	p.RespondsToChallenges = snap.RespondsToChallenges

	return p
}
