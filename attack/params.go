package attack

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/antoonpurnal/clangover/ring"
	"github.com/antoonpurnal/clangover/utils"
)

const (
	// DefaultRank is the module rank of Kyber512.
	DefaultRank = 2

	// DefaultIterations is the nominal number of measurements per coefficient.
	DefaultIterations = 100000

	// DefaultConfidenceMeh is the number of agreeing epochs below which sampling
	// continues past DefaultIterations.
	DefaultConfidenceMeh = 3

	// DefaultConfidenceHigh is the number of agreeing epochs after which sampling
	// stops, possibly before DefaultIterations.
	DefaultConfidenceHigh = 15

	// DefaultEvaluateMask sets the epoch length: a guess is evaluated whenever
	// iteration & mask == 0.
	DefaultEvaluateMask = 0x1FF

	// DefaultPrintMask sets how often an epoch is flagged for display.
	DefaultPrintMask = 0x1FFF

	// DefaultOutlierThreshold is the exclusive bound on |delta| of accepted samples, in cycles.
	DefaultOutlierThreshold = 2000

	// DefaultMaxIterations is the hard ceiling on the measurements of a single coefficient.
	DefaultMaxIterations = 1 << 24
)

// ParametersLiteral is a literal representation of the attack tunables.
// Zero fields take their default value in [NewParametersFromLiteral].
type ParametersLiteral struct {
	Rank              int     `yaml:"rank"`
	Start             int     `yaml:"start"`
	Count             int     `yaml:"count"`
	DefaultIterations int     `yaml:"default_iterations"`
	ConfidenceMeh     int     `yaml:"confidence_meh"`
	ConfidenceHigh    int     `yaml:"confidence_high"`
	EvaluateMask      uint64  `yaml:"evaluate_mask"`
	PrintMask         uint64  `yaml:"print_mask"`
	OutlierThreshold  float64 `yaml:"outlier_threshold"`
	MaxIterations     int     `yaml:"max_iterations"`
}

// Parameters is the checked, immutable set of attack tunables.
type Parameters struct {
	rank              int
	start             int
	count             int
	defaultIterations int
	confidenceMeh     int
	confidenceHigh    int
	evaluateMask      uint64
	printMask         uint64
	outlierThreshold  float64
	maxIterations     int
}

// NewParametersFromLiteral instantiates a set of attack parameters from a
// [ParametersLiteral]. Unset fields take their default value:
//   - Rank: [DefaultRank]
//   - Count: every coefficient from Start on
//   - DefaultIterations, ConfidenceHigh, OutlierThreshold, MaxIterations: the matching Default constant
//   - ConfidenceMeh: the smaller of [DefaultConfidenceMeh] and ConfidenceHigh
//   - EvaluateMask, PrintMask: [DefaultEvaluateMask], [DefaultPrintMask]
//
// It returns an error if the resulting parameters are inconsistent.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.Rank == 0 {
		pl.Rank = DefaultRank
	}
	if pl.DefaultIterations == 0 {
		pl.DefaultIterations = DefaultIterations
	}
	if pl.ConfidenceHigh == 0 {
		pl.ConfidenceHigh = DefaultConfidenceHigh
	}
	if pl.ConfidenceMeh == 0 {
		pl.ConfidenceMeh = utils.Min(DefaultConfidenceMeh, pl.ConfidenceHigh)
	}
	if pl.EvaluateMask == 0 {
		pl.EvaluateMask = DefaultEvaluateMask
	}
	if pl.PrintMask == 0 {
		pl.PrintMask = DefaultPrintMask
	}
	if pl.OutlierThreshold == 0 {
		pl.OutlierThreshold = DefaultOutlierThreshold
	}
	if pl.MaxIterations == 0 {
		pl.MaxIterations = utils.Max(DefaultMaxIterations, pl.DefaultIterations)
	}

	total := pl.Rank * ring.N

	if pl.Count == 0 {
		pl.Count = total - pl.Start
	}

	switch {
	case pl.Rank < 1:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: invalid Rank=%d", pl.Rank)
	case pl.Start < 0 || pl.Start >= total:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: Start=%d is not in [0, %d)", pl.Start, total)
	case pl.Count < 1 || pl.Start+pl.Count > total:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: Start+Count=%d exceeds %d coefficients", pl.Start+pl.Count, total)
	case pl.DefaultIterations < 1:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: invalid DefaultIterations=%d", pl.DefaultIterations)
	case pl.ConfidenceHigh < 1:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: invalid ConfidenceHigh=%d", pl.ConfidenceHigh)
	case pl.ConfidenceMeh < 0 || pl.ConfidenceMeh > pl.ConfidenceHigh:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: ConfidenceMeh=%d is not in [0, ConfidenceHigh=%d]", pl.ConfidenceMeh, pl.ConfidenceHigh)
	case !utils.IsMask(pl.EvaluateMask):
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: EvaluateMask=%#x is not a power of two minus one", pl.EvaluateMask)
	case !utils.IsMask(pl.PrintMask):
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: PrintMask=%#x is not a power of two minus one", pl.PrintMask)
	case pl.OutlierThreshold < 0:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: invalid OutlierThreshold=%v", pl.OutlierThreshold)
	case pl.MaxIterations < pl.DefaultIterations:
		return Parameters{}, fmt.Errorf("attack.NewParametersFromLiteral: MaxIterations=%d is smaller than DefaultIterations=%d", pl.MaxIterations, pl.DefaultIterations)
	}

	return Parameters{
		rank:              pl.Rank,
		start:             pl.Start,
		count:             pl.Count,
		defaultIterations: pl.DefaultIterations,
		confidenceMeh:     pl.ConfidenceMeh,
		confidenceHigh:    pl.ConfidenceHigh,
		evaluateMask:      pl.EvaluateMask,
		printMask:         pl.PrintMask,
		outlierThreshold:  pl.OutlierThreshold,
		maxIterations:     pl.MaxIterations,
	}, nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target Parameters,
// with every default made explicit.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Rank:              p.rank,
		Start:             p.start,
		Count:             p.count,
		DefaultIterations: p.defaultIterations,
		ConfidenceMeh:     p.confidenceMeh,
		ConfidenceHigh:    p.confidenceHigh,
		EvaluateMask:      p.evaluateMask,
		PrintMask:         p.printMask,
		OutlierThreshold:  p.outlierThreshold,
		MaxIterations:     p.maxIterations,
	}
}

// Rank returns the module rank K.
func (p Parameters) Rank() int {
	return p.rank
}

// RingDimension returns the ring degree N.
func (p Parameters) RingDimension() int {
	return ring.N
}

// Total returns the number of secret coefficients, Rank*N.
func (p Parameters) Total() int {
	return p.rank * ring.N
}

// Start returns the index of the first attacked coefficient.
func (p Parameters) Start() int {
	return p.start
}

// Count returns the number of attacked coefficients.
func (p Parameters) Count() int {
	return p.count
}

// DefaultIterations returns the nominal iteration budget per coefficient.
func (p Parameters) DefaultIterations() int {
	return p.defaultIterations
}

// ConfidenceMeh returns the low confidence threshold.
func (p Parameters) ConfidenceMeh() int {
	return p.confidenceMeh
}

// ConfidenceHigh returns the high confidence threshold.
func (p Parameters) ConfidenceHigh() int {
	return p.confidenceHigh
}

// EvaluateMask returns the epoch mask.
func (p Parameters) EvaluateMask() uint64 {
	return p.evaluateMask
}

// EpochLength returns the number of iterations between two evaluations.
func (p Parameters) EpochLength() int {
	return int(p.evaluateMask) + 1
}

// PrintMask returns the display mask.
func (p Parameters) PrintMask() uint64 {
	return p.printMask
}

// OutlierThreshold returns the exclusive bound on accepted |delta|.
func (p Parameters) OutlierThreshold() float64 {
	return p.outlierThreshold
}

// MaxIterations returns the hard ceiling on the iterations of a coefficient.
func (p Parameters) MaxIterations() int {
	return p.maxIterations
}

// Equal returns true if the two parameter sets are equal.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}
