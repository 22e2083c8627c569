package attack

import (
	"github.com/antoonpurnal/clangover/kyber"
)

// Victim is a decapsulation oracle under a fixed secret key. Decapsulate must run
// the full decapsulation of ct; its result is discarded and only its duration is
// observed. An error means the oracle is unusable and aborts the attack.
type Victim interface {
	Name() string
	Parameters() kyber.Parameters
	Decapsulate(ct []byte) error
}

// Clock is a monotonic cycle counter whose reads are serialized with the
// surrounding instructions.
type Clock interface {
	Cycles() uint64
}
