//go:build amd64

package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/klauspost/cpuid/v2"
)

// rdtsc reads the Time Stamp Counter between two LFENCE.
// Implemented in timer_amd64.s
func rdtsc() uint64

// rdtscp reads the Time Stamp Counter via RDTSCP followed by LFENCE.
// Implemented in timer_amd64.s
func rdtscp() uint64

var hasRDTSCP = cpuid.CPU.Supports(cpuid.RDTSCP)

func readTimer() uint64 {
	if hasRDTSCP {
		return rdtscp()
	}
	return rdtsc()
}

func timerName() string {
	if hasRDTSCP {
		return "rdtscp"
	}
	return "lfence+rdtsc"
}

var (
	tscOnce      sync.Once
	tscFrequency uint64
)

func timerFrequency() uint64 {
	tscOnce.Do(func() {
		tscFrequency = calibrateTSCFrequency()
	})
	return tscFrequency
}

// calibrateTSCFrequency estimates the TSC frequency against the wall clock
// and returns the median of a few measurements.
func calibrateTSCFrequency() uint64 {
	const measurements = 5
	const duration = 10 * time.Millisecond

	freqs := make([]uint64, measurements)
	for i := range freqs {
		start := readTimer()
		startTime := time.Now()
		time.Sleep(duration)
		end := readTimer()
		elapsed := time.Since(startTime)
		freqs[i] = uint64(float64(end-start) / elapsed.Seconds())
	}

	sort.Slice(freqs, func(i, j int) bool { return freqs[i] < freqs[j] })
	return freqs[measurements/2]
}
