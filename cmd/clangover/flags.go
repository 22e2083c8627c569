package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/kyber"
	"github.com/antoonpurnal/clangover/oracle"
	"github.com/antoonpurnal/clangover/utils/sampling"
)

const (
	victimFlag         = "victim"
	schemeFlag         = "scheme"
	encodingFlag       = "encoding"
	seedFlag           = "seed"
	simBaseFlag        = "sim-base"
	simLeakFlag        = "sim-leak"
	simJitterFlag      = "sim-jitter"
	simOutlierRateFlag = "sim-outlier-rate"
	simOutlierFlag     = "sim-outlier-cycles"
)

func victimFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  victimFlag,
			Value: "reference",
			Usage: "Decapsulation oracle {reference, circl, simulated}",
		},
		&cli.StringFlag{
			Name:  schemeFlag,
			Value: kyber.Kyber512.Name,
			Usage: "Parameter set of the reference and simulated oracles {Kyber512, Kyber768}",
		},
		&cli.StringFlag{
			Name:  encodingFlag,
			Value: kyber.Branching.String(),
			Usage: "Message expansion of the reference oracle {branching, constant-time}",
		},
		&cli.StringFlag{
			Name:  seedFlag,
			Usage: "Seed of the key generation, the class selection and the simulated noise; random if empty",
		},
		&cli.Uint64Flag{
			Name:  simBaseFlag,
			Value: oracle.DefaultSimulation.BaseCycles,
			Usage: "Simulated cycles of a decapsulation",
		},
		&cli.Uint64Flag{
			Name:  simLeakFlag,
			Value: oracle.DefaultSimulation.LeakCycles,
			Usage: "Simulated extra cycles per set message bit",
		},
		&cli.Float64Flag{
			Name:  simJitterFlag,
			Value: oracle.DefaultSimulation.Jitter,
			Usage: "Standard deviation of the simulated noise, in cycles",
		},
		&cli.Float64Flag{
			Name:  simOutlierRateFlag,
			Value: oracle.DefaultSimulation.OutlierRate,
			Usage: "Probability of a simulated interruption",
		},
		&cli.Uint64Flag{
			Name:  simOutlierFlag,
			Value: oracle.DefaultSimulation.OutlierCycles,
			Usage: "Cycles of a simulated interruption",
		},
	}
}

const (
	startFlag            = "start"
	countFlag            = "count"
	iterationsFlag       = "iterations"
	confidenceMehFlag    = "confidence-meh"
	confidenceHighFlag   = "confidence-high"
	evaluateMaskFlag     = "evaluate-mask"
	printMaskFlag        = "print-mask"
	outlierThresholdFlag = "outlier-threshold"
	maxIterationsFlag    = "max-iterations"
)

func attackParameterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  startFlag,
			Usage: "Index of the first attacked coefficient",
		},
		&cli.IntFlag{
			Name:  countFlag,
			Usage: "Number of attacked coefficients; all remaining if 0",
		},
		&cli.IntFlag{
			Name:  iterationsFlag,
			Value: attack.DefaultIterations,
			Usage: "Nominal number of measurements per coefficient",
		},
		&cli.IntFlag{
			Name:  confidenceMehFlag,
			Value: attack.DefaultConfidenceMeh,
			Usage: "Agreeing evaluations below which sampling continues past the nominal budget",
		},
		&cli.IntFlag{
			Name:  confidenceHighFlag,
			Value: attack.DefaultConfidenceHigh,
			Usage: "Agreeing evaluations after which a coefficient is finalized",
		},
		&cli.Uint64Flag{
			Name:  evaluateMaskFlag,
			Value: attack.DefaultEvaluateMask,
			Usage: "A guess is evaluated when iteration & mask == 0",
		},
		&cli.Uint64Flag{
			Name:  printMaskFlag,
			Value: attack.DefaultPrintMask,
			Usage: "The live report is redrawn when iteration & mask == 0",
		},
		&cli.Float64Flag{
			Name:  outlierThresholdFlag,
			Value: attack.DefaultOutlierThreshold,
			Usage: "Measurements with |delta| at or above this many cycles are discarded",
		},
		&cli.IntFlag{
			Name:  maxIterationsFlag,
			Value: attack.DefaultMaxIterations,
			Usage: "Hard ceiling on the measurements of a coefficient",
		},
	}
}

func attackParameters(c *cli.Context, rank int) (attack.Parameters, error) {
	return attack.NewParametersFromLiteral(attack.ParametersLiteral{
		Rank:              rank,
		Start:             c.Int(startFlag),
		Count:             c.Int(countFlag),
		DefaultIterations: c.Int(iterationsFlag),
		ConfidenceMeh:     c.Int(confidenceMehFlag),
		ConfidenceHigh:    c.Int(confidenceHighFlag),
		EvaluateMask:      c.Uint64(evaluateMaskFlag),
		PrintMask:         c.Uint64(printMaskFlag),
		OutlierThreshold:  c.Float64(outlierThresholdFlag),
		MaxIterations:     c.Int(maxIterationsFlag),
	})
}

func kyberParameters(name string) (kyber.Parameters, error) {
	for _, pl := range []kyber.ParametersLiteral{kyber.Kyber512, kyber.Kyber768} {
		if strings.EqualFold(pl.Name, name) {
			return kyber.NewParametersFromLiteral(pl)
		}
	}
	return kyber.Parameters{}, fmt.Errorf("unknown scheme %q", name)
}

// newPRNG returns the source of randomness of purpose: keyed by the seed if one
// is set, from crypto/rand otherwise.
func newPRNG(c *cli.Context, purpose string) (io.Reader, error) {
	seed := c.String(seedFlag)
	if seed == "" {
		return sampling.NewPRNG()
	}
	return sampling.NewSeededPRNG(seed, purpose)
}
