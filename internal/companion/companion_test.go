package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/roundtutor/internal/llm"
	"github.com/abhisek/roundtutor/internal/profile"
	"github.com/abhisek/roundtutor/internal/progression"
)

func TestGenerateUsesProviderMessage(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"message":"Welcome aboard! Let's round some decimals."}`)},
	)
	c := New(mock)

	got := c.Generate(context.Background(), TypeWelcome, Context{})
	if got != "Welcome aboard! Let's round some decimals." {
		t.Errorf("Generate() = %q", got)
	}
	if c.MessageCount() != 1 {
		t.Errorf("MessageCount() = %d, want 1", c.MessageCount())
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].Schema == nil || mock.Calls[0].Schema.Name != "companion-message" {
		t.Error("request did not carry the companion-message schema")
	}
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	var buf bytes.Buffer
	old := warnWriter
	warnWriter = &buf
	defer func() { warnWriter = old }()

	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	c := New(mock)

	got := c.Generate(context.Background(), TypeStruggleSupport, Context{})
	if !strings.Contains(got, "everyone makes mistakes") {
		t.Errorf("Generate() = %q, want struggle fallback", got)
	}
	if !strings.Contains(buf.String(), "using fallback") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestGenerateWithNilProvider(t *testing.T) {
	c := New(nil)

	got := c.Generate(context.Background(), TypeWelcome, Context{})
	if !strings.Contains(got, "Math Helper") {
		t.Errorf("Generate() = %q, want welcome fallback", got)
	}
}

func TestGenerateFallsBackOnEmptyMessage(t *testing.T) {
	var buf bytes.Buffer
	old := warnWriter
	warnWriter = &buf
	defer func() { warnWriter = old }()

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"message":"   "}`)},
	)
	c := New(mock)

	got := c.Generate(context.Background(), TypeEncouragement, Context{})
	if got != fallbackMessage(TypeEncouragement) {
		t.Errorf("Generate() = %q, want encouragement fallback", got)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 0; i < 10; i++ {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"message":"ok"}`)})
	}
	c := New(mock)

	for i := 0; i < 10; i++ {
		c.Generate(context.Background(), TypeEncouragement, Context{ConsecutiveCorrect: i})
	}

	last := mock.Calls[len(mock.Calls)-1]
	// historyLimit prior messages plus the new user prompt.
	if len(last.Messages) > historyLimit+1 {
		t.Errorf("request carried %d messages, want at most %d", len(last.Messages), historyLimit+1)
	}
}

func TestUserPromptTemplates(t *testing.T) {
	tests := []struct {
		msgType  MessageType
		mctx     Context
		keywords []string
	}{
		{TypeWelcome, Context{CurrentStageDescription: "rounding to 1 decimal place without rounding up"},
			[]string{"Math Helper", "rounding to 1 decimal place"}},
		{TypeStageTransition, Context{PreviousStage: "1.3", CurrentStage: "2.1"},
			[]string{"transitioning", "1.3", "2.1"}},
		{TypeEncouragement, Context{ConsecutiveCorrect: 3, QuestionsAttempted: 7},
			[]string{"3 questions correctly", "7 questions total"}},
		{TypeStruggleSupport, Context{WrongAnswers: 2, ErrorPattern: "rounding_direction_confusion"},
			[]string{"2 incorrect attempts", "rounding_direction_confusion"}},
		{TypeGeneral, Context{}, []string{"decimal rounding practice"}},
	}

	for _, tt := range tests {
		got := userPrompt(tt.msgType, tt.mctx)
		for _, kw := range tt.keywords {
			if !strings.Contains(got, kw) {
				t.Errorf("userPrompt(%s) missing %q:\n%s", tt.msgType, kw, got)
			}
		}
	}
}

func TestBuildContextFromProfileAndState(t *testing.T) {
	state := progression.NewState()
	state.CurrentStage = progression.Stage2
	state.ConsecutiveCorrect = 2
	state.QuestionsAttempted = 8
	state.CorrectAnswers = 6

	prof := profile.New(time.Now())
	prof.CurrentStage = progression.Stage2
	for i := 0; i < 6; i++ {
		prof.Record(profile.QuestionResult{IsCorrect: true, Stage: progression.Stage2, ResponseTimeSeconds: 5})
	}

	mctx := BuildContext(prof, state, nil)

	if mctx.CurrentStage != "2.1" {
		t.Errorf("CurrentStage = %q", mctx.CurrentStage)
	}
	if mctx.CurrentStageDescription != "rounding to 2 decimal places" {
		t.Errorf("CurrentStageDescription = %q", mctx.CurrentStageDescription)
	}
	if mctx.PerformanceLevel != "excelling" {
		t.Errorf("PerformanceLevel = %q, want excelling", mctx.PerformanceLevel)
	}
	if mctx.EmotionalState != "confident" {
		t.Errorf("EmotionalState = %q, want confident", mctx.EmotionalState)
	}

	withPrev := mctx.WithTransition(progression.Stage1Mixed)
	if withPrev.PreviousStage != "1.3" {
		t.Errorf("PreviousStage = %q", withPrev.PreviousStage)
	}
}

func TestFallbackMessagesCoverAllTypes(t *testing.T) {
	types := []MessageType{
		TypeWelcome, TypeStageTransition, TypeEncouragement,
		TypeStruggleSupport, TypeCompletion, TypeGeneral,
	}
	seen := make(map[string]bool)
	for _, mt := range types {
		msg := fallbackMessage(mt)
		if msg == "" {
			t.Errorf("fallbackMessage(%s) empty", mt)
		}
		seen[msg] = true
	}
	if len(seen) < 5 {
		t.Errorf("expected distinct fallbacks, got %d unique", len(seen))
	}
}
