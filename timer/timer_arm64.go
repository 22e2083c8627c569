//go:build arm64

package timer

// cntvct reads the virtual counter via CNTVCT_EL0 after an ISB.
// Implemented in timer_arm64.s
func cntvct() uint64

// cntfrq reads the counter frequency via CNTFRQ_EL0.
// Implemented in timer_arm64.s
func cntfrq() uint64

func readTimer() uint64 {
	return cntvct()
}

func timerName() string {
	return "cntvct_el0"
}

func timerFrequency() uint64 {
	return cntfrq()
}
