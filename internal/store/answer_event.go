package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events (
			sequence, timestamp, session_id, question_id, stage,
			number, decimal_places, student_letter, student_answer,
			correct_answer, is_correct, misconception, response_time_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().Format(time.RFC3339Nano),
		data.SessionID, data.QuestionID, data.Stage,
		data.Number, data.DecimalPlaces, data.StudentLetter, data.StudentAnswer,
		data.CorrectAnswer, data.IsCorrect, data.Misconception, data.ResponseTimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}

	return nil
}
