package progression

// StageResult tracks attempts and correct answers within one stage.
type StageResult struct {
	Attempted int
	Correct   int
}

// State is the mutable progression record for a single learner session.
// It is a plain value passed explicitly into every operation; no global
// instance exists, so independent learners never share state.
type State struct {
	CurrentStage       Stage
	CorrectAnswers     int
	ConsecutiveCorrect int
	QuestionsAttempted int
	StageResults       map[Stage]*StageResult
	ShowingExample     bool
	CurrentExample     int // 1-based
	UsedQuestions      map[Stage]map[int]bool
}

// NewState returns the initial progression state: stage 1.1, showing
// the first worked example.
func NewState() *State {
	s := &State{
		CurrentStage:   Stage1NoRoundUp,
		ShowingExample: true,
		CurrentExample: 1,
		StageResults:   make(map[Stage]*StageResult, len(PoolStages)),
		UsedQuestions:  make(map[Stage]map[int]bool, len(PoolStages)+1),
	}
	for _, stage := range PoolStages {
		s.StageResults[stage] = &StageResult{}
		s.UsedQuestions[stage] = make(map[int]bool)
	}
	s.UsedQuestions[StageStretch] = make(map[int]bool)
	return s
}

// Reset restores the state to its initial values. Used on explicit
// lesson restart.
func (s *State) Reset() {
	*s = *NewState()
}

// OverallAccuracy returns total correct over total attempted across all
// recorded stages, or 0 when nothing has been attempted.
func (s *State) OverallAccuracy() float64 {
	attempted, correct := 0, 0
	for _, r := range s.StageResults {
		attempted += r.Attempted
		correct += r.Correct
	}
	if attempted == 0 {
		return 0
	}
	return float64(correct) / float64(attempted)
}

// MarkUsed records that the pool question at index idx was served for
// the given stage.
func (s *State) MarkUsed(stage Stage, idx int) {
	if used, ok := s.UsedQuestions[stage]; ok {
		used[idx] = true
	}
}

// Used returns the consumed pool indices for a stage. The returned map
// is the live set; callers must not mutate it.
func (s *State) Used(stage Stage) map[int]bool {
	return s.UsedQuestions[stage]
}

// ResetUsed clears the used-question tracking for one stage.
func (s *State) ResetUsed(stage Stage) {
	if _, ok := s.UsedQuestions[stage]; ok {
		s.UsedQuestions[stage] = make(map[int]bool)
	}
}
