package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/kyber"
	"github.com/antoonpurnal/clangover/oracle"
	"github.com/antoonpurnal/clangover/timer"
)

// newVictim builds the oracle selected by the flags of c together with the clock
// that times it.
func newVictim(c *cli.Context) (oracle.Oracle, attack.Clock, error) {

	keygen, err := newPRNG(c, "keygen")
	if err != nil {
		return nil, nil, err
	}

	switch name := c.String(victimFlag); name {

	case "reference":
		params, err := kyberParameters(c.String(schemeFlag))
		if err != nil {
			return nil, nil, err
		}
		encoding, err := kyber.ParseMessageEncoding(c.String(encodingFlag))
		if err != nil {
			return nil, nil, err
		}
		ref, err := oracle.NewReference(params, encoding, keygen)
		if err != nil {
			return nil, nil, err
		}
		return ref, timer.CycleCounter{}, nil

	case "circl":
		if c.IsSet(schemeFlag) && c.String(schemeFlag) != kyber.Kyber512.Name {
			return nil, nil, fmt.Errorf("the circl oracle only implements %s", kyber.Kyber512.Name)
		}
		victim, err := oracle.NewCIRCL(keygen)
		if err != nil {
			return nil, nil, err
		}
		return victim, timer.CycleCounter{}, nil

	case "simulated":
		params, err := kyberParameters(c.String(schemeFlag))
		if err != nil {
			return nil, nil, err
		}
		_, sk, err := kyber.GenerateKeyPair(params, keygen)
		if err != nil {
			return nil, nil, err
		}
		noise, err := newPRNG(c, "noise")
		if err != nil {
			return nil, nil, err
		}
		sim, err := oracle.NewSimulated(sk, oracle.SimulationLiteral{
			BaseCycles:    c.Uint64(simBaseFlag),
			LeakCycles:    c.Uint64(simLeakFlag),
			Jitter:        c.Float64(simJitterFlag),
			OutlierRate:   c.Float64(simOutlierRateFlag),
			OutlierCycles: c.Uint64(simOutlierFlag),
		}, noise)
		if err != nil {
			return nil, nil, err
		}
		return sim, sim, nil

	default:
		return nil, nil, fmt.Errorf("unknown victim %q", name)
	}
}
