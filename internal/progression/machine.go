package progression

// StretchAccuracyThreshold is the minimum overall accuracy (across all
// recorded stages) required to enter the stretch stage from 2.2.
const StretchAccuracyThreshold = 0.8

// Transition records a stage change for event logging and companion
// messages.
type Transition struct {
	From     Stage
	To       Stage
	Advanced bool
}

// Advance applies a correctness event to the state: unconditional
// bookkeeping first (attempt counters, streak, per-stage results), then
// the transition rules, which read the post-bookkeeping counters.
// Returns the resulting transition; From == To when no advancement
// happened.
func Advance(s *State, isCorrect bool) Transition {
	s.QuestionsAttempted++
	if r, ok := s.StageResults[s.CurrentStage]; ok {
		r.Attempted++
		if isCorrect {
			r.Correct++
		}
	}
	if isCorrect {
		s.CorrectAnswers++
		s.ConsecutiveCorrect++
	} else {
		s.ConsecutiveCorrect = 0
	}

	from := s.CurrentStage

	switch {
	case s.CurrentStage == Stage1NoRoundUp && isCorrect:
		s.CurrentStage = Stage1WithRoundUp
		s.ConsecutiveCorrect = 0
		s.ShowingExample = false

	case s.CurrentStage == Stage1WithRoundUp && isCorrect:
		s.CurrentStage = Stage1Mixed
		s.ConsecutiveCorrect = 0
		s.ShowingExample = false

	case s.CurrentStage == Stage1Mixed && s.ConsecutiveCorrect >= 2:
		s.CurrentStage = Stage2
		s.ConsecutiveCorrect = 0
		s.ShowingExample = true
		s.CurrentExample = 1

	case s.CurrentStage == Stage2 && s.ConsecutiveCorrect >= 2:
		s.CurrentStage = Stage2Harder
		s.ConsecutiveCorrect = 0
		s.ShowingExample = false

	case s.CurrentStage == Stage2Harder && isCorrect:
		if s.OverallAccuracy() >= StretchAccuracyThreshold {
			s.CurrentStage = StageStretch
			s.ConsecutiveCorrect = 0
			s.ShowingExample = true
			s.CurrentExample = 1
		} else {
			s.CurrentStage = StageComplete
		}
	}

	return Transition{From: from, To: s.CurrentStage, Advanced: from != s.CurrentStage}
}

// NextExample advances the worked-example sub-machine. Once the stage's
// example curriculum is exhausted the state switches to practice mode.
func NextExample(s *State) {
	s.CurrentExample++

	count := s.CurrentStage.ExampleCount()
	if count == 0 {
		s.ShowingExample = false
		return
	}

	if s.CurrentExample > count {
		s.ShowingExample = false
	}

	// Guard against a double-advance skipping an example: while still in
	// example mode the counter never passes the curriculum length.
	if s.ShowingExample && s.CurrentExample > count {
		s.CurrentExample = count
	}
}
