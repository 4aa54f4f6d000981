package store

import (
	"context"
	"time"

	"github.com/abhisek/roundtutor/internal/profile"
	"github.com/abhisek/roundtutor/internal/progression"
)

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version     int                  `json:"version"`
	SessionID   string               `json:"session_id"`
	Progression progression.Snapshot `json:"progression"`
	Profile     profile.Snapshot     `json:"profile"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures a single graded answer.
type AnswerEventData struct {
	SessionID           string
	QuestionID          string
	Stage               string
	Number              string
	DecimalPlaces       int
	StudentLetter       string
	StudentAnswer       string
	CorrectAnswer       string
	IsCorrect           bool
	Misconception       string
	ResponseTimeSeconds float64
}

// SessionEventData captures a session lifecycle transition.
// Kind is one of "started", "resumed", "reset", "completed".
type SessionEventData struct {
	SessionID string
	Kind      string
	Stage     string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and aggregate-query access to domain
// events.
type EventRepo interface {
	// AppendAnswer records a graded answer event.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session lifecycle event.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// StageAccuracy aggregates answer events per stage.
	StageAccuracy(ctx context.Context) ([]StageStats, error)

	// MisconceptionCounts tallies wrong answers per misconception.
	MisconceptionCounts(ctx context.Context) ([]MisconceptionCount, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM requests per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
