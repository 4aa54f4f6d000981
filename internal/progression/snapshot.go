package progression

import "sort"

// Snapshot is the persisted form of State. Sets are serialized as
// sorted slices so snapshots of equal states are byte-identical.
type Snapshot struct {
	CurrentStage       string                `json:"current_stage"`
	CorrectAnswers     int                   `json:"correct_answers"`
	ConsecutiveCorrect int                   `json:"consecutive_correct"`
	QuestionsAttempted int                   `json:"questions_attempted"`
	StageResults       map[string]StageResult `json:"stage_results"`
	ShowingExample     bool                  `json:"showing_example"`
	CurrentExample     int                   `json:"current_example"`
	UsedQuestions      map[string][]int      `json:"used_questions"`
}

// ToSnapshot captures the state for persistence.
func (s *State) ToSnapshot() Snapshot {
	snap := Snapshot{
		CurrentStage:       string(s.CurrentStage),
		CorrectAnswers:     s.CorrectAnswers,
		ConsecutiveCorrect: s.ConsecutiveCorrect,
		QuestionsAttempted: s.QuestionsAttempted,
		ShowingExample:     s.ShowingExample,
		CurrentExample:     s.CurrentExample,
		StageResults:       make(map[string]StageResult, len(s.StageResults)),
		UsedQuestions:      make(map[string][]int, len(s.UsedQuestions)),
	}
	for stage, r := range s.StageResults {
		snap.StageResults[string(stage)] = *r
	}
	for stage, used := range s.UsedQuestions {
		indices := make([]int, 0, len(used))
		for idx := range used {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		snap.UsedQuestions[string(stage)] = indices
	}
	return snap
}

// FromSnapshot restores a State. Unknown stage tokens are dropped
// rather than failing the restore; the learner resumes with whatever
// validates.
func FromSnapshot(snap Snapshot) *State {
	s := NewState()

	if stage := Stage(snap.CurrentStage); stage.Valid() {
		s.CurrentStage = stage
	}
	s.CorrectAnswers = snap.CorrectAnswers
	s.ConsecutiveCorrect = snap.ConsecutiveCorrect
	s.QuestionsAttempted = snap.QuestionsAttempted
	s.ShowingExample = snap.ShowingExample
	if snap.CurrentExample > 0 {
		s.CurrentExample = snap.CurrentExample
	}

	for token, r := range snap.StageResults {
		if stage := Stage(token); stage.Valid() {
			result := r
			s.StageResults[stage] = &result
		}
	}
	for token, indices := range snap.UsedQuestions {
		stage := Stage(token)
		if !stage.Valid() {
			continue
		}
		used := make(map[int]bool, len(indices))
		for _, idx := range indices {
			used[idx] = true
		}
		s.UsedQuestions[stage] = used
	}
	return s
}
