package oracle

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/antoonpurnal/clangover/kyber"
	"github.com/antoonpurnal/clangover/utils/sampling"
)

const (
	// DefaultBaseCycles is the simulated duration of a decapsulation whose
	// decrypted message is zero.
	DefaultBaseCycles = 90000

	// DefaultLeakCycles is the simulated extra duration per set message bit.
	DefaultLeakCycles = 40
)

// SimulationLiteral is the timing model of a [Simulated] oracle.
// A decapsulation of ct costs
//
//	BaseCycles + LeakCycles * popcount(DecryptCPA(ct)) + Jitter * N(0, 1)
//
// cycles, plus OutlierCycles with probability OutlierRate, and at least one cycle.
type SimulationLiteral struct {
	BaseCycles    uint64  `yaml:"base_cycles"`
	LeakCycles    uint64  `yaml:"leak_cycles"`
	Jitter        float64 `yaml:"jitter"`
	OutlierRate   float64 `yaml:"outlier_rate"`
	OutlierCycles uint64  `yaml:"outlier_cycles"`
}

// DefaultSimulation is a noisy model that the attack recovers with the default parameters.
var DefaultSimulation = SimulationLiteral{
	BaseCycles:    DefaultBaseCycles,
	LeakCycles:    DefaultLeakCycles,
	Jitter:        150,
	OutlierRate:   0.001,
	OutlierCycles: 50000,
}

// Validate returns an error if the model is inconsistent.
func (sl SimulationLiteral) Validate() error {
	switch {
	case sl.Jitter < 0 || math.IsNaN(sl.Jitter):
		return fmt.Errorf("invalid Jitter=%v", sl.Jitter)
	case sl.OutlierRate < 0 || sl.OutlierRate > 1 || math.IsNaN(sl.OutlierRate):
		return fmt.Errorf("OutlierRate=%v is not in [0, 1]", sl.OutlierRate)
	}
	return nil
}

// Simulated is a victim whose durations follow a [SimulationLiteral] on a virtual
// clock. It implements both attack.Victim and attack.Clock: Decapsulate advances
// the clock by the cost of the call and Cycles reads it.
type Simulated struct {
	sk    *kyber.PrivateKey
	model SimulationLiteral
	prng  io.Reader
	now   uint64
	calls uint64
}

// NewSimulated returns a simulated oracle of sk. prng drives the jitter and the
// outliers and may be nil if the model has neither.
func NewSimulated(sk *kyber.PrivateKey, model SimulationLiteral, prng io.Reader) (*Simulated, error) {

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("cannot NewSimulated: %w", err)
	}

	if prng == nil && (model.Jitter != 0 || model.OutlierRate != 0) {
		return nil, fmt.Errorf("cannot NewSimulated: a noisy model needs a PRNG")
	}

	return &Simulated{
		sk:    sk,
		model: model,
		prng:  prng,
	}, nil
}

// NewSimulatedFromSecret returns a simulated oracle whose secret vector has the given
// centered coefficients. The rest of the key and the noise are drawn from prng.
func NewSimulatedFromSecret(params kyber.Parameters, secret []int16, model SimulationLiteral, prng io.Reader) (*Simulated, error) {
	_, sk, err := kyber.NewKeyPairFromSecret(params, secret, prng)
	if err != nil {
		return nil, fmt.Errorf("cannot NewSimulatedFromSecret: %w", err)
	}
	return NewSimulated(sk, model, prng)
}

// Name implements attack.Victim.
func (s *Simulated) Name() string {
	return "simulated"
}

// Parameters implements attack.Victim.
func (s *Simulated) Parameters() kyber.Parameters {
	return s.sk.Parameters()
}

// Decapsulate implements attack.Victim. It decrypts ct and advances the clock by
// the cost of the decrypted message.
func (s *Simulated) Decapsulate(ct []byte) error {

	msg, err := s.sk.DecryptCPA(ct)
	if err != nil {
		return fmt.Errorf("cannot Decapsulate: %w", err)
	}

	var weight int
	for _, b := range msg {
		weight += bits.OnesCount8(b)
	}

	cost := float64(s.model.BaseCycles) + float64(s.model.LeakCycles)*float64(weight)

	if s.model.Jitter != 0 {
		e, err := sampling.NormFloat64(s.prng)
		if err != nil {
			return fmt.Errorf("cannot Decapsulate: %w", err)
		}
		cost += e * s.model.Jitter
	}

	if s.model.OutlierRate != 0 {
		u, err := sampling.RandFloat64(s.prng, 0, 1)
		if err != nil {
			return fmt.Errorf("cannot Decapsulate: %w", err)
		}
		if u < s.model.OutlierRate {
			cost += float64(s.model.OutlierCycles)
		}
	}

	s.now += uint64(math.Max(1, math.Round(cost)))
	s.calls++

	return nil
}

// Cycles implements attack.Clock.
func (s *Simulated) Cycles() uint64 {
	return s.now
}

// Calls returns the number of decapsulations so far.
func (s *Simulated) Calls() uint64 {
	return s.calls
}

// Model returns the timing model.
func (s *Simulated) Model() SimulationLiteral {
	return s.model
}

// SecretCoefficients implements GroundTruth.
func (s *Simulated) SecretCoefficients() ([]int16, error) {
	return s.sk.SecretCoefficients(), nil
}

// Fingerprint returns the fingerprint of the public key.
func (s *Simulated) Fingerprint() string {
	return s.sk.Public().Fingerprint()
}
