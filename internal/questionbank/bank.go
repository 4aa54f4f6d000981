package questionbank

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/roundtutor/internal/progression"
	"github.com/abhisek/roundtutor/internal/rounding"
)

//go:embed pools.yaml
var poolsYAML []byte

type poolFile struct {
	Stages map[string][]Question `yaml:"stages"`
}

// Bank owns the per-stage question pools and the selection policy.
// The random source is injected so tests can assert selection behavior
// with a fixed seed.
type Bank struct {
	pools map[progression.Stage][]Question
	rng   *rand.Rand
}

// New loads the embedded pools and verifies every question's recorded
// answer and rounding direction against the analyzer. A mismatch is a
// data bug in the pool asset and fails loading.
func New(rng *rand.Rand) (*Bank, error) {
	var file poolFile
	if err := yaml.Unmarshal(poolsYAML, &file); err != nil {
		return nil, fmt.Errorf("decode question pools: %w", err)
	}

	pools := make(map[progression.Stage][]Question, len(file.Stages))
	for token, questions := range file.Stages {
		stage := progression.Stage(token)
		if !stage.Valid() {
			return nil, fmt.Errorf("question pools: unknown stage %q", token)
		}
		for _, q := range questions {
			if err := checkGroundTruth(q); err != nil {
				return nil, fmt.Errorf("question pools: stage %s: %w", stage, err)
			}
		}
		pools[stage] = questions
	}

	for _, stage := range progression.PoolStages {
		if len(pools[stage]) == 0 {
			return nil, fmt.Errorf("question pools: stage %s has no questions", stage)
		}
	}

	return &Bank{pools: pools, rng: rng}, nil
}

func checkGroundTruth(q Question) error {
	steps, err := rounding.Analyze(q.Number, q.DecimalPlaces)
	if err != nil {
		return err
	}
	if steps.RoundUp != q.RoundingUp {
		return fmt.Errorf("question %s: recorded rounding_up=%v disagrees with analysis", q.ID(), q.RoundingUp)
	}
	answer, err := rounding.RoundHalfUp(q.Number, q.DecimalPlaces)
	if err != nil {
		return err
	}
	if answer != q.Answer {
		return fmt.Errorf("question %s: recorded answer %q, computed %q", q.ID(), q.Answer, answer)
	}
	return nil
}

// Pool returns the canonical questions for a stage. The returned slice
// must not be mutated.
func (b *Bank) Pool(stage progression.Stage) []Question {
	return b.pools[stage]
}

// Select draws a question for the state's current stage. Pool stages
// draw uniformly from not-yet-used indices, tracked on the progression
// state; when the pool is exhausted the used set is cleared and
// selection proceeds, so a stage can never run dry. The stretch stage
// synthesizes a fresh question instead.
func (b *Bank) Select(state *progression.State) (Question, error) {
	stage := state.CurrentStage
	if stage == progression.StageStretch {
		return b.synthesizeStretch()
	}

	pool, ok := b.pools[stage]
	if !ok {
		return Question{}, fmt.Errorf("no question pool for stage %s", stage)
	}

	used := state.Used(stage)
	available := make([]int, 0, len(pool))
	for i := range pool {
		if !used[i] {
			available = append(available, i)
		}
	}

	if len(available) == 0 {
		// Anti-repeat pool exhausted: reset and re-open the whole pool.
		// Informational only, the learner never sees this.
		fmt.Fprintf(os.Stderr, "question pool for stage %s exhausted, recycling\n", stage)
		state.ResetUsed(stage)
		available = available[:0]
		for i := range pool {
			available = append(available, i)
		}
	}

	idx := available[b.rng.IntN(len(available))]
	state.MarkUsed(stage, idx)
	return pool[idx], nil
}
