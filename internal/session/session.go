// Package session orchestrates one practice run: serving questions,
// grading answers, advancing the stage machine, and keeping the profile
// and event log in step.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/roundtutor/internal/companion"
	"github.com/abhisek/roundtutor/internal/diagnosis"
	"github.com/abhisek/roundtutor/internal/profile"
	"github.com/abhisek/roundtutor/internal/progression"
	"github.com/abhisek/roundtutor/internal/questionbank"
	"github.com/abhisek/roundtutor/internal/rounding"
	"github.com/abhisek/roundtutor/internal/store"
)

// ErrNoActiveQuestion is returned by SubmitAnswer when no question has
// been served since the last answer.
var ErrNoActiveQuestion = errors.New("session: no active question")

// snapshotKeep bounds how many snapshots Prune retains after each save.
const snapshotKeep = 20

var warnWriter io.Writer = os.Stderr

// Options carries the optional collaborators. Nil fields disable the
// corresponding side effect; the core practice loop works without any
// of them.
type Options struct {
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Companion *companion.Companion

	// Now is the clock used for response timing. Defaults to time.Now.
	Now func() time.Time
}

// Engine drives a single learner's practice session.
type Engine struct {
	id    string
	bank  *questionbank.Bank
	state *progression.State
	prof  *profile.Profile
	opts  Options

	current  *questionbank.FormattedQuestion
	servedAt time.Time
}

// New creates an engine with fresh progression state and profile.
func New(bank *questionbank.Bank, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		id:    uuid.NewString(),
		bank:  bank,
		state: progression.NewState(),
		prof:  profile.New(opts.Now()),
		opts:  opts,
	}
}

// Resume creates an engine from a persisted snapshot. The session keeps
// the snapshot's session ID so the event log stays contiguous.
func Resume(bank *questionbank.Bank, data store.SnapshotData, opts Options) *Engine {
	e := New(bank, opts)
	e.state = progression.FromSnapshot(data.Progression)
	e.prof = profile.FromSnapshot(data.Profile, e.opts.Now())
	if data.SessionID != "" {
		e.id = data.SessionID
	}
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// State returns the live progression state.
func (e *Engine) State() *progression.State { return e.state }

// Profile returns the live learner profile.
func (e *Engine) Profile() *profile.Profile { return e.prof }

// Start records the session start and returns the companion's welcome
// message, if a companion is configured.
func (e *Engine) Start(ctx context.Context) string {
	kind := "started"
	if e.state.QuestionsAttempted > 0 {
		kind = "resumed"
	}
	e.appendSessionEvent(ctx, kind)

	if e.opts.Companion == nil {
		return ""
	}
	mctx := companion.BuildContext(e.prof, e.state, nil)
	return e.opts.Companion.Generate(ctx, companion.TypeWelcome, mctx)
}

// Example returns the current worked example with its computed steps
// when the stage is in its example phase.
func (e *Engine) Example() (questionbank.WorkedExample, rounding.Steps, bool) {
	if !e.state.ShowingExample {
		return questionbank.WorkedExample{}, rounding.Steps{}, false
	}
	ex, ok := questionbank.ExampleFor(e.state.CurrentStage, e.state.CurrentExample)
	if !ok {
		return questionbank.WorkedExample{}, rounding.Steps{}, false
	}
	steps, err := rounding.Analyze(ex.Number, ex.DecimalPlaces)
	if err != nil {
		// Examples ship with the binary; a parse failure is a data bug.
		fmt.Fprintf(warnWriter, "warning: worked example %q unanalyzable: %v\n", ex.Number, err)
		return questionbank.WorkedExample{}, rounding.Steps{}, false
	}
	return ex, steps, true
}

// AdvanceExample moves to the next worked example, or out of the
// example phase when the curriculum is exhausted.
func (e *Engine) AdvanceExample() {
	progression.NextExample(e.state)
}

// ServeQuestion selects and formats the next question for the current
// stage. The served question becomes the active question for
// SubmitAnswer.
func (e *Engine) ServeQuestion(ctx context.Context) (*questionbank.FormattedQuestion, error) {
	if e.state.CurrentStage.Terminal() {
		return nil, fmt.Errorf("session: stage %s serves no questions", e.state.CurrentStage)
	}

	q, err := e.bank.Select(e.state)
	if err != nil {
		return nil, fmt.Errorf("select question: %w", err)
	}

	fq, err := e.bank.Format(q)
	if err != nil {
		return nil, fmt.Errorf("format question: %w", err)
	}

	e.current = fq
	e.servedAt = e.opts.Now()
	return fq, nil
}

// Outcome is the full result of grading one answer.
type Outcome struct {
	Question   *questionbank.FormattedQuestion
	Result     diagnosis.Result
	Transition progression.Transition

	// Message is the companion's reaction, empty without a companion.
	Message string

	ResponseTimeSeconds float64
}

// SubmitAnswer grades the active question, advances the stage machine,
// updates the profile, and records events. The active question is
// consumed whether or not the answer was correct.
func (e *Engine) SubmitAnswer(ctx context.Context, letter string) (Outcome, error) {
	if e.current == nil {
		return Outcome{}, ErrNoActiveQuestion
	}

	fq := e.current
	responseTime := e.opts.Now().Sub(e.servedAt).Seconds()

	result, err := diagnosis.Verify(fq, letter)
	if err != nil {
		// Unknown letter: the question stays active so the learner can
		// answer again.
		return Outcome{}, err
	}
	e.current = nil

	stageBefore := e.state.CurrentStage
	transition := progression.Advance(e.state, result.IsCorrect)

	e.prof.CurrentStage = e.state.CurrentStage
	record := profile.QuestionResult{
		QuestionID:          fq.Source.ID(),
		Stage:               stageBefore,
		IsCorrect:           result.IsCorrect,
		StudentAnswer:       result.StudentValue,
		CorrectAnswer:       fq.Source.Answer,
		ResponseTimeSeconds: responseTime,
		Timestamp:           e.opts.Now(),
	}
	if result.Misconception != nil {
		record.MisconceptionType = result.Misconception.Type
	}
	e.prof.Record(record)

	e.appendAnswerEvent(ctx, fq, result, stageBefore, responseTime)
	if transition.Advanced {
		e.appendSessionEvent(ctx, "stage_advanced")
	}
	if e.state.CurrentStage.Terminal() {
		e.appendSessionEvent(ctx, "completed")
	}
	e.saveSnapshot(ctx)

	outcome := Outcome{
		Question:            fq,
		Result:              result,
		Transition:          transition,
		ResponseTimeSeconds: responseTime,
	}
	outcome.Message = e.companionReaction(ctx, result, transition)

	return outcome, nil
}

// Restart wipes the progression state and profile for a fresh run under
// the same session ID.
func (e *Engine) Restart(ctx context.Context) {
	e.state.Reset()
	e.prof = profile.New(e.opts.Now())
	e.current = nil
	e.appendSessionEvent(ctx, "reset")
	e.saveSnapshot(ctx)
}

// companionReaction picks the message type for the answer just graded.
// Priority: completion, stage transition, struggle, streak. Routine
// answers get no message to keep the companion from chattering.
func (e *Engine) companionReaction(ctx context.Context, result diagnosis.Result, transition progression.Transition) string {
	if e.opts.Companion == nil {
		return ""
	}

	mctx := companion.BuildContext(e.prof, e.state, result.Misconception)

	switch {
	case transition.To == progression.StageComplete:
		return e.opts.Companion.Generate(ctx, companion.TypeCompletion, mctx)
	case transition.Advanced:
		return e.opts.Companion.Generate(ctx, companion.TypeStageTransition, mctx.WithTransition(transition.From))
	case e.prof.IsStruggling():
		return e.opts.Companion.Generate(ctx, companion.TypeStruggleSupport, mctx)
	case result.IsCorrect && e.state.ConsecutiveCorrect >= 3:
		return e.opts.Companion.Generate(ctx, companion.TypeEncouragement, mctx)
	}
	return ""
}

func (e *Engine) appendAnswerEvent(ctx context.Context, fq *questionbank.FormattedQuestion, result diagnosis.Result, stage progression.Stage, responseTime float64) {
	if e.opts.Events == nil {
		return
	}

	data := store.AnswerEventData{
		SessionID:           e.id,
		QuestionID:          fq.Source.ID(),
		Stage:               string(stage),
		Number:              fq.Source.Number,
		DecimalPlaces:       fq.Source.DecimalPlaces,
		StudentLetter:       result.StudentLetter,
		StudentAnswer:       result.StudentValue,
		CorrectAnswer:       fq.Source.Answer,
		IsCorrect:           result.IsCorrect,
		ResponseTimeSeconds: responseTime,
	}
	if result.Misconception != nil {
		data.Misconception = string(result.Misconception.Type)
	}

	if err := e.opts.Events.AppendAnswer(ctx, data); err != nil {
		fmt.Fprintf(warnWriter, "warning: failed to record answer event: %v\n", err)
	}
}

func (e *Engine) appendSessionEvent(ctx context.Context, kind string) {
	if e.opts.Events == nil {
		return
	}
	err := e.opts.Events.AppendSession(ctx, store.SessionEventData{
		SessionID: e.id,
		Kind:      kind,
		Stage:     string(e.state.CurrentStage),
	})
	if err != nil {
		fmt.Fprintf(warnWriter, "warning: failed to record session event: %v\n", err)
	}
}

func (e *Engine) saveSnapshot(ctx context.Context) {
	if e.opts.Snapshots == nil {
		return
	}

	snap := &store.Snapshot{
		Sequence:  int64(e.prof.TotalQuestions),
		Timestamp: e.opts.Now(),
		Data: store.SnapshotData{
			Version:     1,
			SessionID:   e.id,
			Progression: e.state.ToSnapshot(),
			Profile:     e.prof.ToSnapshot(),
		},
	}
	if err := e.opts.Snapshots.Save(ctx, snap); err != nil {
		fmt.Fprintf(warnWriter, "warning: failed to save snapshot: %v\n", err)
		return
	}
	if err := e.opts.Snapshots.Prune(ctx, snapshotKeep); err != nil {
		fmt.Fprintf(warnWriter, "warning: failed to prune snapshots: %v\n", err)
	}
}
