//go:build !amd64 && !arm64

package timer

import (
	"time"
)

// Monotonic nanoseconds since package initialization.
var genericEpoch = time.Now()

func readTimer() uint64 {
	return uint64(time.Since(genericEpoch).Nanoseconds())
}

func timerName() string {
	return "time.Now"
}

func timerFrequency() uint64 {
	return 1_000_000_000
}
