package profile

import (
	"testing"
	"time"

	"github.com/abhisek/roundtutor/internal/diagnosis"
	"github.com/abhisek/roundtutor/internal/progression"
)

func result(correct bool, seconds float64) QuestionResult {
	return QuestionResult{
		QuestionID:          "13.62@1dp",
		Stage:               progression.Stage1NoRoundUp,
		IsCorrect:           correct,
		StudentAnswer:       "13.6",
		CorrectAnswer:       "13.6",
		ResponseTimeSeconds: seconds,
		Timestamp:           time.Now(),
	}
}

func TestRecordBasicCounters(t *testing.T) {
	p := New(time.Now())

	p.Record(result(true, 5))
	p.Record(result(true, 5))
	p.Record(result(false, 5))

	if p.TotalQuestions != 3 || p.TotalCorrect != 2 {
		t.Errorf("totals = %d/%d, want 3/2", p.TotalQuestions, p.TotalCorrect)
	}
	if p.ConsecutiveCorrect != 0 || p.ConsecutiveErrors != 1 {
		t.Errorf("streaks = %d correct / %d errors, want 0/1", p.ConsecutiveCorrect, p.ConsecutiveErrors)
	}
	if len(p.History) != 3 {
		t.Errorf("history length = %d, want 3", len(p.History))
	}
	if p.SuccessRate() != 2.0/3.0 {
		t.Errorf("SuccessRate() = %f", p.SuccessRate())
	}
}

func TestRecordHistoryIsMonotonic(t *testing.T) {
	p := New(time.Now())

	for i := 1; i <= 10; i++ {
		p.Record(result(i%2 == 0, float64(i)))
		if p.TotalQuestions != i {
			t.Fatalf("TotalQuestions = %d after %d records", p.TotalQuestions, i)
		}
		if len(p.History) != i {
			t.Fatalf("history length = %d after %d records", len(p.History), i)
		}
		if p.History[i-1].ResponseTimeSeconds != float64(i) {
			t.Fatal("history was reordered")
		}
	}
}

func TestMisconceptionPatterns(t *testing.T) {
	p := New(time.Now())

	r := result(false, 5)
	r.MisconceptionType = diagnosis.CategoryRoundingDirection
	p.Record(r)
	p.Record(r)
	r.MisconceptionType = diagnosis.CategoryDecimalPlace
	p.Record(r)

	if p.MisconceptionPatterns[diagnosis.CategoryRoundingDirection] != 2 {
		t.Errorf("rounding direction count = %d, want 2", p.MisconceptionPatterns[diagnosis.CategoryRoundingDirection])
	}
	if p.MostCommonMisconception() != diagnosis.CategoryRoundingDirection {
		t.Errorf("MostCommonMisconception() = %s", p.MostCommonMisconception())
	}
}

func TestAverageResponseTimeIncrementalMean(t *testing.T) {
	p := New(time.Now())

	p.Record(result(true, 10))
	p.Record(result(true, 20))
	p.Record(result(true, 30))

	if p.AverageResponseTime != 20 {
		t.Errorf("AverageResponseTime = %f, want 20", p.AverageResponseTime)
	}
}

func TestResponseTimeTrend(t *testing.T) {
	tests := []struct {
		name  string
		times []float64
		want  string
	}{
		{"improving", []float64{10, 9, 7}, TrendImproving},
		{"declining", []float64{10, 11, 13}, TrendDeclining},
		{"stable", []float64{10, 10, 10.5}, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(time.Now())
			for _, seconds := range tt.times {
				p.Record(result(true, seconds))
			}
			if p.ResponseTimeTrend != tt.want {
				t.Errorf("ResponseTimeTrend = %s, want %s", p.ResponseTimeTrend, tt.want)
			}
		})
	}
}

func TestTrendRetainedBelowWindow(t *testing.T) {
	p := New(time.Now())
	p.Record(result(true, 10))
	p.Record(result(true, 50))

	if p.ResponseTimeTrend != TrendStable {
		t.Errorf("ResponseTimeTrend = %s, want retained %s", p.ResponseTimeTrend, TrendStable)
	}
}

func TestLearnsFromMistakesFlag(t *testing.T) {
	p := New(time.Now())

	p.Record(result(false, 5))
	p.Record(result(false, 5))
	if p.LearnsFromMistakesQuickly {
		t.Error("flag still true after 2 consecutive errors")
	}

	p.Record(result(true, 5))
	p.Record(result(true, 5))
	p.Record(result(true, 5))
	if !p.LearnsFromMistakesQuickly {
		t.Error("flag not restored after 3 consecutive correct following errors")
	}
}

func TestEngagementLevels(t *testing.T) {
	p := New(time.Now())
	for i := 0; i < 11; i++ {
		p.Record(result(true, 5))
	}
	if p.EngagementLevel != EngagementHigh {
		t.Errorf("EngagementLevel = %s, want %s", p.EngagementLevel, EngagementHigh)
	}

	slow := New(time.Now())
	slow.Record(result(true, 45))
	if slow.EngagementLevel != EngagementLow {
		t.Errorf("EngagementLevel = %s, want %s", slow.EngagementLevel, EngagementLow)
	}
}

func TestRespondsToChallengesIsMonotonic(t *testing.T) {
	p := New(time.Now())
	for i := 0; i < 5; i++ {
		p.Record(result(true, 5))
	}
	if !p.RespondsToChallenges {
		t.Fatal("flag not set after a strong streak")
	}

	p.Record(result(false, 5))
	p.Record(result(false, 5))
	if !p.RespondsToChallenges {
		t.Error("flag must never reset automatically")
	}
}

func TestStrugglingAndExcelling(t *testing.T) {
	p := New(time.Now())
	p.Record(result(false, 5))
	p.Record(result(false, 5))
	if !p.IsStruggling() {
		t.Error("IsStruggling() = false after 2 consecutive errors")
	}

	q := New(time.Now())
	for i := 0; i < 6; i++ {
		q.Record(result(true, 5))
	}
	if !q.IsExcelling() {
		t.Error("IsExcelling() = false on a clean run")
	}
	if q.IsStruggling() {
		t.Error("IsStruggling() = true on a clean run")
	}
}

func TestSnapshotRoundTripExcludesHistory(t *testing.T) {
	p := New(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	r := result(false, 12)
	r.MisconceptionType = diagnosis.CategoryDecimalPlace
	p.Record(r)
	p.Record(result(true, 8))
	p.CurrentStage = progression.Stage2

	restored := FromSnapshot(p.ToSnapshot(), time.Now())

	if restored.TotalQuestions != p.TotalQuestions || restored.TotalCorrect != p.TotalCorrect {
		t.Errorf("counters not restored: %d/%d", restored.TotalQuestions, restored.TotalCorrect)
	}
	if restored.CurrentStage != progression.Stage2 {
		t.Errorf("CurrentStage = %s, want %s", restored.CurrentStage, progression.Stage2)
	}
	if restored.MisconceptionPatterns[diagnosis.CategoryDecimalPlace] != 1 {
		t.Error("misconception patterns not restored")
	}
	if !restored.SessionStart.Equal(p.SessionStart) {
		t.Errorf("SessionStart = %v, want %v", restored.SessionStart, p.SessionStart)
	}
	if len(restored.History) != 0 {
		t.Error("history must not be persisted in snapshots")
	}
}

func TestRecentSummary(t *testing.T) {
	p := New(time.Now())
	for i := 0; i < 7; i++ {
		p.Record(result(i >= 4, 10))
	}

	summary := p.Recent(5)
	if summary.Questions != 5 {
		t.Errorf("Questions = %d, want 5", summary.Questions)
	}
	if summary.Correct != 3 {
		t.Errorf("Correct = %d, want 3", summary.Correct)
	}
	if summary.AverageTime != 10 {
		t.Errorf("AverageTime = %f, want 10", summary.AverageTime)
	}
}
