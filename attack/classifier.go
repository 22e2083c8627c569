package attack

import (
	"github.com/antoonpurnal/clangover/utils"
)

// Bit returns true if mean is strictly closer to the known-one mean than to the
// known-zero mean. Equal distances give false.
func Bit(knownZero, knownOne, mean float64) bool {
	return utils.Abs(knownZero-mean) > utils.Abs(knownOne-mean)
}

// Classify returns the pattern of the attack classes given the means of all classes.
func Classify(means [NbClasses]float64) (p Pattern) {
	for class := range p {
		p[class] = Bit(means[KnownZero], means[KnownOne], means[class])
	}
	return
}
