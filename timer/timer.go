// Package timer reads the platform cycle counter used to bracket a single
// decapsulation call. It is the only platform-specific code of the module:
// RDTSCP (or LFENCE; RDTSC) on amd64, CNTVCT_EL0 on arm64 and the monotonic
// clock elsewhere.
package timer

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// CycleCounter reads the platform cycle counter.
// Reads are serialized with the surrounding instructions where the platform allows it.
type CycleCounter struct{}

// Cycles returns the current counter value.
func (CycleCounter) Cycles() uint64 {
	return readTimer()
}

// Name returns the name of the counter instruction in use.
func Name() string {
	return timerName()
}

// Frequency returns the counter frequency in Hz.
func Frequency() uint64 {
	return timerFrequency()
}

// ResolutionNs returns the duration of one counter tick in nanoseconds.
func ResolutionNs() float64 {
	if f := Frequency(); f != 0 {
		return 1e9 / float64(f)
	}
	return 1
}

// Info describes the counter and the processor it runs on.
type Info struct {
	Timer        string  `yaml:"timer"`
	FrequencyHz  uint64  `yaml:"frequency_hz"`
	ResolutionNs float64 `yaml:"resolution_ns"`
	CPU          string  `yaml:"cpu"`
	Vendor       string  `yaml:"vendor"`
	Cores        int     `yaml:"cores"`
	Arch         string  `yaml:"arch"`
}

// Describe returns the Info of the running platform.
func Describe() Info {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown"
	}
	return Info{
		Timer:        Name(),
		FrequencyHz:  Frequency(),
		ResolutionNs: ResolutionNs(),
		CPU:          brand,
		Vendor:       cpuid.CPU.VendorString,
		Cores:        cpuid.CPU.PhysicalCores,
		Arch:         runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s @ %.3f GHz on %s (%s)", i.Timer, float64(i.FrequencyHz)/1e9, i.CPU, i.Arch)
}
