package attack

import (
	"fmt"
	"io"

	"github.com/antoonpurnal/clangover/utils/sampling"
)

// Sampler measures the decapsulation time of a randomly chosen class relative to
// the all-zero reference ciphertext.
type Sampler struct {
	victim    Victim
	clock     Clock
	prng      io.Reader
	reference []byte
	classes   [][]byte
}

// NewSampler creates a new Sampler. prng picks the classes and must be
// independent of the measured timings.
func NewSampler(victim Victim, clock Clock, prng io.Reader, reference []byte) *Sampler {
	return &Sampler{
		victim:    victim,
		clock:     clock,
		prng:      prng,
		reference: reference,
	}
}

// Load sets the NbClasses ciphertexts of the current coefficient.
func (s *Sampler) Load(classes [][]byte) error {
	if len(classes) != NbClasses {
		return fmt.Errorf("cannot Load: got %d ciphertexts but need %d", len(classes), NbClasses)
	}
	s.classes = classes
	return nil
}

// Sample draws a class uniformly and measures it with [Sampler.Measure].
func (s *Sampler) Sample() (class int, delta float64, err error) {

	if class, err = sampling.RandIntN(s.prng, NbClasses); err != nil {
		return 0, 0, fmt.Errorf("cannot Sample: %w", err)
	}

	if delta, err = s.Measure(class); err != nil {
		return 0, 0, fmt.Errorf("cannot Sample: %w", err)
	}

	return class, delta, nil
}

// Measure times one decapsulation of the reference ciphertext then one of the
// ciphertext of class, and returns the difference of the two durations in cycles.
func (s *Sampler) Measure(class int) (delta float64, err error) {

	if s.classes == nil {
		return 0, fmt.Errorf("no ciphertexts loaded")
	}
	ct := s.classes[class]

	refBefore := s.clock.Cycles()
	refErr := s.victim.Decapsulate(s.reference)
	refAfter := s.clock.Cycles()

	before := s.clock.Cycles()
	classErr := s.victim.Decapsulate(ct)
	after := s.clock.Cycles()

	if refErr != nil {
		return 0, fmt.Errorf("reference: %w", refErr)
	}
	if classErr != nil {
		return 0, fmt.Errorf("%s: %w", ClassName(class), classErr)
	}

	return float64(after-before) - float64(refAfter-refBefore), nil
}
