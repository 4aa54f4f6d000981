// Package progression owns the lesson stage graph and the mutable
// per-learner progression state. Stages advance only through the
// transition rules in Advance; nothing else mutates State.
package progression

// Stage identifies an ordered curriculum unit. The string values are
// stable tokens: they appear in persisted snapshots and event records
// and must never change.
type Stage string

const (
	// Stage1NoRoundUp: round to 1 dp, right digit always below 5.
	Stage1NoRoundUp Stage = "1.1"
	// Stage1WithRoundUp: round to 1 dp, right digit always 5 or above.
	Stage1WithRoundUp Stage = "1.2"
	// Stage1Mixed: round to 1 dp, both directions, 2-4 decimal digits.
	Stage1Mixed Stage = "1.3"
	// Stage2 and Stage2Harder: round to 2-3 dp.
	Stage2       Stage = "2.1"
	Stage2Harder Stage = "2.2"
	// StageStretch serves synthesized nine-boundary questions.
	StageStretch Stage = "stretch"
	// StageComplete is terminal.
	StageComplete Stage = "complete"
)

// Order lists every stage in curriculum order.
var Order = []Stage{
	Stage1NoRoundUp,
	Stage1WithRoundUp,
	Stage1Mixed,
	Stage2,
	Stage2Harder,
	StageStretch,
	StageComplete,
}

// PoolStages lists the stages that own a fixed question pool. The
// stretch stage synthesizes questions instead but still tracks used
// base indices.
var PoolStages = []Stage{
	Stage1NoRoundUp,
	Stage1WithRoundUp,
	Stage1Mixed,
	Stage2,
	Stage2Harder,
}

// Valid reports whether s is a known stage token.
func (s Stage) Valid() bool {
	for _, stage := range Order {
		if s == stage {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage has no outgoing transitions.
func (s Stage) Terminal() bool {
	return s == StageComplete
}

// HasExamples reports whether the stage opens with a worked-example
// sequence before practice questions.
func (s Stage) HasExamples() bool {
	return s == Stage1NoRoundUp || s == Stage2 || s == StageStretch
}

// ExampleCount returns the number of worked examples in the stage's
// curriculum.
func (s Stage) ExampleCount() int {
	if s.HasExamples() {
		return 2
	}
	return 0
}

// Description returns a learner-facing summary of what the stage covers.
func (s Stage) Description() string {
	switch s {
	case Stage1NoRoundUp:
		return "rounding to 1 decimal place without rounding up"
	case Stage1WithRoundUp:
		return "rounding to 1 decimal place with rounding up"
	case Stage1Mixed:
		return "rounding to 1 decimal place with mixed problems"
	case Stage2:
		return "rounding to 2 decimal places"
	case Stage2Harder:
		return "rounding to 2 decimal places with more complex numbers"
	case StageStretch:
		return "challenging rounding problems"
	case StageComplete:
		return "all rounding concepts"
	}
	return "rounding practice"
}
