package questionbank

import "github.com/abhisek/roundtutor/internal/progression"

// WorkedExample is a demonstration question shown before practice in
// the example-bearing stages. The TUI renders the analysis steps for it
// instead of asking for an answer.
type WorkedExample struct {
	Number        string
	DecimalPlaces int
}

var workedExamples = map[progression.Stage][]WorkedExample{
	progression.Stage1NoRoundUp: {
		{Number: "12.64", DecimalPlaces: 1},
		{Number: "5.462", DecimalPlaces: 1},
	},
	progression.Stage2: {
		{Number: "0.857", DecimalPlaces: 2},
		{Number: "21.6782", DecimalPlaces: 3},
	},
	progression.StageStretch: {
		{Number: "12.97", DecimalPlaces: 1},
		{Number: "0.952", DecimalPlaces: 1},
	},
}

// ExampleFor returns the n-th (1-based) worked example of a stage, or
// false when the stage has no example curriculum or n is out of range.
func ExampleFor(stage progression.Stage, n int) (WorkedExample, bool) {
	examples := workedExamples[stage]
	if n < 1 || n > len(examples) {
		return WorkedExample{}, false
	}
	return examples[n-1], true
}
