package attack

import (
	"fmt"

	"github.com/antoonpurnal/clangover/ring"
)

const (
	// NbAttackClasses is the number of chosen ciphertexts whose decrypted message
	// bit depends on the target coefficient.
	NbAttackClasses = 7

	// NbClasses is the number of chosen ciphertexts per coefficient, the attack
	// classes followed by the two reference classes.
	NbClasses = NbAttackClasses + 2

	// KnownZero is the reference class whose decrypted message bit is always 0.
	KnownZero = NbAttackClasses

	// KnownOne is the reference class whose decrypted message bit is always 1.
	KnownOne = NbAttackClasses + 1
)

// uMagnitudes and vMagnitudes are the values written in the targeted coefficient
// of u and in the constant coefficient of v for each class. Before compression.
var (
	uMagnitudes = [NbClasses]uint16{140, 185, 106, 277, 64, 63, 267, 144, 0}
	vMagnitudes = [NbClasses]uint16{2132, 2923, 521, 3016, 936, 2548, 1142, 312, 937}
)

// Magnitudes returns the (u, v) magnitudes of a class.
func Magnitudes(class int) (u, v uint16) {
	return uMagnitudes[class], vMagnitudes[class]
}

// ClassName returns a short label of a class.
func ClassName(class int) string {
	switch class {
	case KnownZero:
		return "known[0]"
	case KnownOne:
		return "known[1]"
	default:
		return fmt.Sprintf("class[%d]", class)
	}
}

// Block returns the index of the polynomial of the secret vector holding
// coefficient index.
func Block(index int) int {
	return index / ring.N
}

// Position returns the coefficient of u's polynomial [Block] that multiplies
// secret coefficient index into the constant coefficient of <s, u>.
func Position(index int) int {
	return ring.Position(index % ring.N)
}

// Negated returns true if the contribution of coefficient index to the constant
// coefficient of <s, u> is negated, i.e. if its position in its block is not 0.
func Negated(index int) bool {
	return index%ring.N != 0
}
