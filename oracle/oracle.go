// Package oracle provides the decapsulation oracles attacked by the engine of
// package attack: the in-module Kyber implementation, the constant-time CIRCL
// implementation, and a simulated victim with a virtual clock and a tunable
// leakage model.
//
// Every oracle holds a fixed private key and exposes its secret coefficients
// through [GroundTruth] for scoring. The attack itself never reads them.
package oracle

import (
	"github.com/antoonpurnal/clangover/attack"
)

// GroundTruth is implemented by oracles that can reveal their secret vector, in
// the coefficient domain and centered, block by block.
type GroundTruth interface {
	SecretCoefficients() ([]int16, error)
}

// Oracle is a decapsulation oracle with a known key, as consumed by the command line.
type Oracle interface {
	attack.Victim
	GroundTruth
	Fingerprint() string
}
