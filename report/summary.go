package report

import (
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/utils"
)

// Summary aggregates the results of a run.
type Summary struct {
	Coefficients int `yaml:"coefficients"`

	// Scored is false if no ground truth was available, in which case Correct and
	// Wrong are zero.
	Scored   bool    `yaml:"scored"`
	Correct  int     `yaml:"correct"`
	Wrong    int     `yaml:"wrong"`
	Unknown  int     `yaml:"unknown"`
	Accuracy float64 `yaml:"accuracy"`

	Converged int `yaml:"converged"`
	Exhausted int `yaml:"exhausted"`
	Extended  int `yaml:"extended"`
	Ceiling   int `yaml:"ceiling"`

	Iterations       int     `yaml:"iterations"`
	IterationsMean   float64 `yaml:"iterations_mean"`
	IterationsMedian float64 `yaml:"iterations_median"`
	IterationsP95    float64 `yaml:"iterations_p95"`
	Discarded        uint64  `yaml:"discarded"`

	Elapsed          time.Duration `yaml:"elapsed"`
	ElapsedMedian    time.Duration `yaml:"elapsed_median"`
	SamplesPerSecond float64       `yaml:"samples_per_second"`
}

// Summarize computes the summary of results. truth may be nil.
func Summarize(results *attack.Results, truth []int16) (sum Summary, err error) {

	sum.Coefficients = results.Finalized()
	sum.Elapsed = results.Elapsed

	if sum.Coefficients == 0 {
		return sum, nil
	}

	if truth != nil {
		if len(truth) != len(results.Guesses) {
			return sum, fmt.Errorf("cannot Summarize: truth has %d coefficients but results have %d", len(truth), len(results.Guesses))
		}
		sum.Scored = true
		sum.Correct, sum.Wrong, sum.Unknown = results.Score(truth)
		sum.Accuracy = float64(sum.Correct) / float64(sum.Coefficients)
	}

	iters := make([]int, sum.Coefficients)
	durations := make([]time.Duration, sum.Coefficients)

	for i, res := range results.Coefficients {

		if !sum.Scored && !res.Guess.Known {
			sum.Unknown++
		}

		switch res.State {
		case attack.Converged:
			sum.Converged++
		case attack.Exhausted:
			sum.Exhausted++
		}

		sum.Iterations += res.Iterations
		sum.Discarded += res.Discarded
		iters[i] = res.Iterations
		durations[i] = res.Elapsed
	}

	sum.Extended = utils.CountIf(results.Coefficients, func(r attack.Result) bool { return r.Extended })
	sum.Ceiling = utils.CountIf(results.Coefficients, func(r attack.Result) bool { return r.Ceiling })

	iterations := stats.Float64Data(utils.ToFloat64(iters))
	elapsed := stats.Float64Data(utils.ToFloat64(durations))

	if sum.IterationsMean, err = iterations.Mean(); err != nil {
		return sum, fmt.Errorf("cannot Summarize: %w", err)
	}
	if sum.IterationsMedian, err = iterations.Median(); err != nil {
		return sum, fmt.Errorf("cannot Summarize: %w", err)
	}
	if sum.IterationsP95, err = iterations.Percentile(95); err != nil {
		return sum, fmt.Errorf("cannot Summarize: %w", err)
	}

	median, err := elapsed.Median()
	if err != nil {
		return sum, fmt.Errorf("cannot Summarize: %w", err)
	}
	sum.ElapsedMedian = time.Duration(median)

	if s := sum.Elapsed.Seconds(); s > 0 {
		sum.SamplesPerSecond = float64(sum.Iterations) / s
	}

	return sum, nil
}

// WriteTo writes a human readable rendition of the summary on w.
func (s Summary) WriteTo(w io.Writer) (n int64, err error) {

	var lines []string

	if s.Scored {
		lines = append(lines, fmt.Sprintf("Coefficients: %d (correct %d / wrong %d / unknown %d, accuracy %.2f%%)",
			s.Coefficients, s.Correct, s.Wrong, s.Unknown, 100*s.Accuracy))
	} else {
		lines = append(lines, fmt.Sprintf("Coefficients: %d (unknown %d)", s.Coefficients, s.Unknown))
	}

	lines = append(lines,
		fmt.Sprintf("Stopping: converged %d / exhausted %d (extended %d, ceiling %d)", s.Converged, s.Exhausted, s.Extended, s.Ceiling),
		fmt.Sprintf("Iterations: total %d, mean %.0f, median %.0f, p95 %.0f, discarded %d", s.Iterations, s.IterationsMean, s.IterationsMedian, s.IterationsP95, s.Discarded),
		fmt.Sprintf("Time: %s (median %s per coefficient, %.0f measurements/s)", s.Elapsed.Round(time.Millisecond), s.ElapsedMedian.Round(time.Millisecond), s.SamplesPerSecond),
	)

	for _, line := range lines {
		m, err := fmt.Fprintln(w, line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
