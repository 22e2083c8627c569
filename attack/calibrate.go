package attack

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Calibration summarizes the timing noise of a victim and the gap between its
// two reference classes.
type Calibration struct {
	Samples int     `yaml:"samples"`
	Mean    float64 `yaml:"mean"`
	StdDev  float64 `yaml:"stddev"`
	Median  float64 `yaml:"median"`
	MAD     float64 `yaml:"mad"`
	P01     float64 `yaml:"p01"`
	P99     float64 `yaml:"p99"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`

	// Signal is the mean delta of the known-one class minus the mean delta of the
	// known-zero class.
	Signal float64 `yaml:"signal"`

	// SuggestedThreshold is an outlier threshold keeping the bulk of both the
	// noise and the signal.
	SuggestedThreshold float64 `yaml:"suggested_threshold"`
}

// MinCalibrationSamples is the smallest sample count for which the 1st and 99th
// percentiles are defined.
const MinCalibrationSamples = 100

// Calibrate takes n reference-versus-reference measurements, whose deltas are pure
// noise, then n measurements of each reference class of coefficient 0.
func Calibrate(victim Victim, clock Clock, n int) (cal Calibration, err error) {

	if n < MinCalibrationSamples {
		return cal, fmt.Errorf("cannot Calibrate: need at least %d samples but got %d", MinCalibrationSamples, n)
	}

	crafter := NewCrafter(victim.Parameters())

	reference, err := crafter.Reference()
	if err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}

	classes, err := crafter.Craft(0)
	if err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}

	// noise: the reference ciphertext in every class slot
	noise := make([][]byte, NbClasses)
	for i := range noise {
		noise[i] = reference
	}

	sampler := NewSampler(victim, clock, nil, reference)

	deltas := make(stats.Float64Data, n)
	if err = sampler.Load(noise); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	for i := range deltas {
		if deltas[i], err = sampler.Measure(KnownZero); err != nil {
			return cal, fmt.Errorf("cannot Calibrate: %w", err)
		}
	}

	if err = sampler.Load(classes); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	var zero, one float64
	for i := 0; i < n; i++ {
		d0, err := sampler.Measure(KnownZero)
		if err != nil {
			return cal, fmt.Errorf("cannot Calibrate: %w", err)
		}
		d1, err := sampler.Measure(KnownOne)
		if err != nil {
			return cal, fmt.Errorf("cannot Calibrate: %w", err)
		}
		zero += (d0 - zero) / float64(i+1)
		one += (d1 - one) / float64(i+1)
	}

	cal.Samples = n
	cal.Signal = one - zero

	if cal.Mean, err = deltas.Mean(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.StdDev, err = deltas.StandardDeviation(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.Median, err = deltas.Median(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.MAD, err = deltas.MedianAbsoluteDeviation(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.P01, err = stats.Percentile(deltas, 1); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.P99, err = stats.Percentile(deltas, 99); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.Min, err = deltas.Min(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}
	if cal.Max, err = deltas.Max(); err != nil {
		return cal, fmt.Errorf("cannot Calibrate: %w", err)
	}

	spread := math.Max(math.Abs(cal.P01), math.Abs(cal.P99))
	cal.SuggestedThreshold = math.Max(1, math.Ceil(4*spread+math.Abs(cal.Signal)))

	return cal, nil
}
