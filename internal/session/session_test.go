package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/roundtutor/internal/companion"
	"github.com/abhisek/roundtutor/internal/llm"
	"github.com/abhisek/roundtutor/internal/progression"
	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/store"
)

// stepClock returns a clock that advances 5 seconds per call.
func stepClock() func() time.Time {
	t := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(5 * time.Second)
		return t
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	bank, err := questionbank.New(rand.New(rand.NewPCG(7, 11)))
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if opts.Now == nil {
		opts.Now = stepClock()
	}
	return New(bank, opts)
}

// skipExamples pushes the state out of any worked-example phase.
func skipExamples(e *Engine) {
	for e.State().ShowingExample {
		e.AdvanceExample()
	}
}

func TestSubmitWithoutActiveQuestion(t *testing.T) {
	e := newTestEngine(t, Options{})

	_, err := e.SubmitAnswer(context.Background(), "A")
	if !errors.Is(err, ErrNoActiveQuestion) {
		t.Fatalf("err = %v, want ErrNoActiveQuestion", err)
	}
}

func TestServeAndSubmitCorrect(t *testing.T) {
	e := newTestEngine(t, Options{})
	skipExamples(e)

	fq, err := e.ServeQuestion(context.Background())
	if err != nil {
		t.Fatalf("serve: %v", err)
	}

	outcome, err := e.SubmitAnswer(context.Background(), fq.CorrectLetter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !outcome.Result.IsCorrect {
		t.Error("expected correct result")
	}
	if !outcome.Transition.Advanced || outcome.Transition.From != progression.Stage1NoRoundUp {
		t.Errorf("transition = %+v, want advance out of 1.1", outcome.Transition)
	}
	if e.Profile().TotalQuestions != 1 || e.Profile().TotalCorrect != 1 {
		t.Errorf("profile totals = %d/%d", e.Profile().TotalQuestions, e.Profile().TotalCorrect)
	}
	if outcome.ResponseTimeSeconds != 5 {
		t.Errorf("response time = %f, want 5", outcome.ResponseTimeSeconds)
	}

	// The question is consumed.
	if _, err := e.SubmitAnswer(context.Background(), "A"); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("err = %v, want ErrNoActiveQuestion after consume", err)
	}
}

func TestUnknownLetterKeepsQuestionActive(t *testing.T) {
	e := newTestEngine(t, Options{})
	skipExamples(e)

	fq, err := e.ServeQuestion(context.Background())
	if err != nil {
		t.Fatalf("serve: %v", err)
	}

	if _, err := e.SubmitAnswer(context.Background(), "Z"); err == nil {
		t.Fatal("expected error for unknown letter")
	}

	// Still answerable.
	outcome, err := e.SubmitAnswer(context.Background(), fq.CorrectLetter)
	if err != nil {
		t.Fatalf("submit after bad letter: %v", err)
	}
	if !outcome.Result.IsCorrect {
		t.Error("expected correct result")
	}
}

func TestIncorrectAnswerClassified(t *testing.T) {
	e := newTestEngine(t, Options{})
	skipExamples(e)

	fq, err := e.ServeQuestion(context.Background())
	if err != nil {
		t.Fatalf("serve: %v", err)
	}

	wrong := ""
	for _, letter := range questionbank.Letters {
		if letter != fq.CorrectLetter {
			wrong = letter
			break
		}
	}

	outcome, err := e.SubmitAnswer(context.Background(), wrong)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Result.IsCorrect {
		t.Fatal("expected incorrect result")
	}
	if outcome.Result.Misconception == nil {
		t.Fatal("expected misconception report")
	}
	if e.Profile().ConsecutiveErrors != 1 {
		t.Errorf("ConsecutiveErrors = %d, want 1", e.Profile().ConsecutiveErrors)
	}
}

func TestAlwaysCorrectReachesStretch(t *testing.T) {
	e := newTestEngine(t, Options{})
	ctx := context.Background()

	for i := 0; i < 10 && e.State().CurrentStage != progression.StageStretch; i++ {
		skipExamples(e)
		fq, err := e.ServeQuestion(ctx)
		if err != nil {
			t.Fatalf("serve %d: %v", i, err)
		}
		if _, err := e.SubmitAnswer(ctx, fq.CorrectLetter); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if e.State().CurrentStage != progression.StageStretch {
		t.Errorf("stage = %s, want stretch on a perfect run", e.State().CurrentStage)
	}
}

func TestExamplePhase(t *testing.T) {
	e := newTestEngine(t, Options{})

	ex, steps, ok := e.Example()
	if !ok {
		t.Fatal("expected a worked example at session start")
	}
	if ex.Number != "12.64" {
		t.Errorf("first example = %q, want 12.64", ex.Number)
	}
	if steps.TargetDigit != '6' {
		t.Errorf("target digit = %c, want 6", steps.TargetDigit)
	}

	e.AdvanceExample()
	if _, _, ok := e.Example(); !ok {
		t.Fatal("expected a second worked example")
	}

	e.AdvanceExample()
	if _, _, ok := e.Example(); ok {
		t.Error("example phase should be over after the curriculum")
	}
}

func TestRestart(t *testing.T) {
	e := newTestEngine(t, Options{})
	skipExamples(e)
	ctx := context.Background()

	fq, _ := e.ServeQuestion(ctx)
	if _, err := e.SubmitAnswer(ctx, fq.CorrectLetter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	e.Restart(ctx)

	if e.State().CurrentStage != progression.Stage1NoRoundUp {
		t.Errorf("stage = %s after restart", e.State().CurrentStage)
	}
	if e.State().QuestionsAttempted != 0 {
		t.Errorf("attempted = %d after restart", e.State().QuestionsAttempted)
	}
	if e.Profile().TotalQuestions != 0 {
		t.Errorf("profile questions = %d after restart", e.Profile().TotalQuestions)
	}
}

func TestEventsAndSnapshotsRecorded(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	e := newTestEngine(t, Options{Events: s.EventRepo(), Snapshots: s.SnapshotRepo()})
	ctx := context.Background()

	e.Start(ctx)
	skipExamples(e)

	fq, err := e.ServeQuestion(ctx)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if _, err := e.SubmitAnswer(ctx, fq.CorrectLetter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var answers int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answer_events").Scan(&answers); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 1 {
		t.Errorf("answer events = %d, want 1", answers)
	}

	var started int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM session_events WHERE kind = 'started'").Scan(&started); err != nil {
		t.Fatalf("count session events: %v", err)
	}
	if started != 1 {
		t.Errorf("started events = %d, want 1", started)
	}

	snap, err := s.SnapshotRepo().Latest(ctx)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot after an answer")
	}
	if snap.Data.SessionID != e.ID() {
		t.Errorf("snapshot session = %q, want %q", snap.Data.SessionID, e.ID())
	}
}

func TestResumeFromSnapshot(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "resume.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	e := newTestEngine(t, Options{Snapshots: s.SnapshotRepo()})
	ctx := context.Background()
	skipExamples(e)

	fq, _ := e.ServeQuestion(ctx)
	if _, err := e.SubmitAnswer(ctx, fq.CorrectLetter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap, err := s.SnapshotRepo().Latest(ctx)
	if err != nil || snap == nil {
		t.Fatalf("latest snapshot: %v (%v)", snap, err)
	}

	bank, err := questionbank.New(rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	resumed := Resume(bank, snap.Data, Options{Now: stepClock()})

	if resumed.ID() != e.ID() {
		t.Errorf("resumed session id = %q, want %q", resumed.ID(), e.ID())
	}
	if resumed.State().CurrentStage != e.State().CurrentStage {
		t.Errorf("resumed stage = %s, want %s", resumed.State().CurrentStage, e.State().CurrentStage)
	}
	if resumed.Profile().TotalQuestions != 1 {
		t.Errorf("resumed profile questions = %d, want 1", resumed.Profile().TotalQuestions)
	}
}

func TestCompanionReactionOnTransition(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"message":"Level up! Next you'll practice rounding up."}`)},
	)
	e := newTestEngine(t, Options{Companion: companion.New(mock)})
	skipExamples(e)
	ctx := context.Background()

	fq, _ := e.ServeQuestion(ctx)
	outcome, err := e.SubmitAnswer(ctx, fq.CorrectLetter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if outcome.Message != "Level up! Next you'll practice rounding up." {
		t.Errorf("Message = %q", outcome.Message)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1", mock.CallCount())
	}
}
