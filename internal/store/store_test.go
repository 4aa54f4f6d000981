package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/roundtutor/internal/profile"
	"github.com/abhisek/roundtutor/internal/progression"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"snapshots", "answer_events", "session_events", "llm_request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	state := progression.NewState()
	state.CurrentStage = progression.Stage2
	prof := profile.New(time.Now())
	prof.TotalQuestions = 9
	prof.TotalCorrect = 7

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version:     1,
			SessionID:   "s-1",
			Progression: state.ToSnapshot(),
			Profile:     prof.ToSnapshot(),
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Progression.CurrentStage != string(progression.Stage2) {
		t.Errorf("progression stage = %q, want %q", snap.Data.Progression.CurrentStage, progression.Stage2)
	}
	if snap.Data.Profile.TotalQuestions != 9 {
		t.Errorf("profile total questions = %d, want 9", snap.Data.Profile.TotalQuestions)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestEventAppendsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSession(ctx, SessionEventData{SessionID: "s-1", Kind: "started", Stage: "1.1"})
	if err != nil {
		t.Fatalf("append session: %v", err)
	}
	err = repo.AppendAnswer(ctx, AnswerEventData{
		SessionID:           "s-1",
		QuestionID:          "13.62@1dp",
		Stage:               "1.1",
		Number:              "13.62",
		DecimalPlaces:       1,
		StudentLetter:       "B",
		StudentAnswer:       "13.6",
		CorrectAnswer:       "13.6",
		IsCorrect:           true,
		ResponseTimeSeconds: 6.5,
	})
	if err != nil {
		t.Fatalf("append answer: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "encouragement",
		LatencyMs: 12, Success: true,
	})
	if err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	var sessionSeq, answerSeq, llmSeq int64
	db := s.DB()
	if err := db.QueryRow("SELECT sequence FROM session_events").Scan(&sessionSeq); err != nil {
		t.Fatalf("session sequence: %v", err)
	}
	if err := db.QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatalf("answer sequence: %v", err)
	}
	if err := db.QueryRow("SELECT sequence FROM llm_request_events").Scan(&llmSeq); err != nil {
		t.Fatalf("llm sequence: %v", err)
	}

	if !(sessionSeq < answerSeq && answerSeq < llmSeq) {
		t.Errorf("sequences not ordered across types: %d, %d, %d", sessionSeq, answerSeq, llmSeq)
	}
}

func TestAnswerEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendAnswer(ctx, AnswerEventData{
		SessionID:           "s-2",
		QuestionID:          "12.68@1dp",
		Stage:               "1.2",
		Number:              "12.68",
		DecimalPlaces:       1,
		StudentLetter:       "C",
		StudentAnswer:       "12.6",
		CorrectAnswer:       "12.7",
		IsCorrect:           false,
		Misconception:       "rounding_direction_confusion",
		ResponseTimeSeconds: 14.2,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var (
		stage, misconception string
		isCorrect            bool
	)
	err = s.DB().QueryRow(
		"SELECT stage, misconception, is_correct FROM answer_events WHERE session_id = 's-2'",
	).Scan(&stage, &misconception, &isCorrect)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if stage != "1.2" || misconception != "rounding_direction_confusion" || isCorrect {
		t.Errorf("got stage=%q misconception=%q correct=%v", stage, misconception, isCorrect)
	}
}
