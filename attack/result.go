package attack

import (
	"time"
)

// Result is the outcome of the attack on one coefficient.
type Result struct {
	Index      int                `yaml:"index"`
	Guess      Guess              `yaml:"guess"`
	State      State              `yaml:"state"`
	Iterations int                `yaml:"iterations"`
	Epochs     int                `yaml:"epochs"`
	Discarded  uint64             `yaml:"discarded"`
	Confidence int                `yaml:"confidence"`
	Extended   bool               `yaml:"extended"`
	Ceiling    bool               `yaml:"ceiling"`
	Pattern    Pattern            `yaml:"-"`
	Means      [NbClasses]float64 `yaml:"-"`
	Elapsed    time.Duration      `yaml:"elapsed"`
}

// Results is the guess vector of a run together with the per-coefficient results.
// Guesses has one entry per secret coefficient; entries outside the attacked range
// stay [Unknown]. Each attacked entry is written once, when its coefficient is finalized.
type Results struct {
	Guesses      []Guess
	Coefficients []Result
	Elapsed      time.Duration
}

// NewResults allocates the Results of a run with the given parameters.
func NewResults(params Parameters) *Results {
	return &Results{
		Guesses:      make([]Guess, params.Total()),
		Coefficients: make([]Result, 0, params.Count()),
	}
}

func (r *Results) finalize(res Result) {
	r.Guesses[res.Index] = res.Guess
	r.Coefficients = append(r.Coefficients, res)
}

// Finalized returns the number of finalized coefficients.
func (r *Results) Finalized() int {
	return len(r.Coefficients)
}

// Score counts the finalized coefficients whose guess is correct, wrong or
// unknown with respect to truth.
func (r *Results) Score(truth []int16) (correct, wrong, unknown int) {
	for _, res := range r.Coefficients {
		switch {
		case !res.Guess.Known:
			unknown++
		case res.Guess.Value == truth[res.Index]:
			correct++
		default:
			wrong++
		}
	}
	return
}
