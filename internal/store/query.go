package store

import (
	"context"
	"fmt"
)

// StageStats aggregates answer events for one stage.
type StageStats struct {
	Stage              string
	Attempted          int
	Correct            int
	AvgResponseSeconds float64
}

// MisconceptionCount tallies one misconception category across all
// wrong answers.
type MisconceptionCount struct {
	Misconception string
	Count         int
}

// LLMUsage aggregates LLM request events grouped by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// StageAccuracy returns per-stage answer totals in stage order of first
// appearance in the log.
func (r *eventRepo) StageAccuracy(ctx context.Context) ([]StageStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT stage, COUNT(*), SUM(is_correct), AVG(response_time_seconds)
		FROM answer_events
		GROUP BY stage
		ORDER BY MIN(sequence)`)
	if err != nil {
		return nil, fmt.Errorf("query stage accuracy: %w", err)
	}
	defer rows.Close()

	var stats []StageStats
	for rows.Next() {
		var s StageStats
		if err := rows.Scan(&s.Stage, &s.Attempted, &s.Correct, &s.AvgResponseSeconds); err != nil {
			return nil, fmt.Errorf("scan stage stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// MisconceptionCounts returns wrong-answer tallies by misconception,
// most frequent first.
func (r *eventRepo) MisconceptionCounts(ctx context.Context) ([]MisconceptionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT misconception, COUNT(*)
		FROM answer_events
		WHERE is_correct = 0 AND misconception != ''
		GROUP BY misconception
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query misconceptions: %w", err)
	}
	defer rows.Close()

	var counts []MisconceptionCount
	for rows.Next() {
		var c MisconceptionCount
		if err := rows.Scan(&c.Misconception, &c.Count); err != nil {
			return nil, fmt.Errorf("scan misconception count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// LLMUsageByPurpose aggregates LLM request events per purpose label.
func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "purpose")
}

// LLMUsageByModel aggregates LLM request events per model.
func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "model")
}

func (r *eventRepo) llmUsage(ctx context.Context, column string) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_request_events
		GROUP BY %s
		ORDER BY COUNT(*) DESC`, column, column))
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var usage []LLMUsage
	for rows.Next() {
		var u LLMUsage
		var key string
		if err := rows.Scan(&key, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		if column == "model" {
			u.Model = key
		} else {
			u.Purpose = key
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// Wipe deletes all learner data: snapshots and every event table. The
// sequence counter is left in place so new events keep ascending.
func (s *Store) Wipe(ctx context.Context) error {
	tables := []string{"snapshots", "answer_events", "session_events", "llm_request_events"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}
	return nil
}
