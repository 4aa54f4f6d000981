package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (sequence, timestamp, session_id, kind, stage)
		 VALUES (?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().Format(time.RFC3339Nano),
		data.SessionID, data.Kind, data.Stage,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}

	return nil
}
