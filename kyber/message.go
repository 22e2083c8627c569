package kyber

import (
	"fmt"
	"strings"

	"github.com/antoonpurnal/clangover/ring"
)

// MessageEncoding selects how a 32-byte message is expanded into a polynomial
// during encryption, and therefore during the re-encryption step of decapsulation.
type MessageEncoding int

const (
	// ConstantTime expands each bit with an arithmetic mask.
	ConstantTime MessageEncoding = iota

	// Branching expands each bit with a conditional store, the shape some compilers
	// turn the masked expansion into. Its running time depends on the message bits.
	Branching
)

var messageEncodingNames = map[MessageEncoding]string{
	ConstantTime: "constant-time",
	Branching:    "branching",
}

func (e MessageEncoding) String() string {
	if name, ok := messageEncodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("MessageEncoding(%d)", int(e))
}

// ParseMessageEncoding returns the MessageEncoding named by s.
func ParseMessageEncoding(s string) (MessageEncoding, error) {
	for e, name := range messageEncodingNames {
		if strings.EqualFold(s, name) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown message encoding %q", s)
}

// expand sets pol to the polynomial whose coefficient i is (Q+1)/2 if bit i of msg
// is set and 0 otherwise.
func (e MessageEncoding) expand(msg []byte, pol *ring.Poly) {
	const half = (ring.Q + 1) / 2

	switch e {
	case Branching:
		pol.Zero()
		for i := 0; i < MessageSize; i++ {
			for j := 0; j < 8; j++ {
				if (msg[i]>>j)&1 != 0 {
					pol.Coeffs[8*i+j] = half
				}
			}
		}
	default:
		for i := 0; i < MessageSize; i++ {
			for j := 0; j < 8; j++ {
				mask := -uint16((msg[i] >> j) & 1)
				pol.Coeffs[8*i+j] = mask & half
			}
		}
	}
}

// extract sets msg to the 1-bit compression of pol.
func extract(pol *ring.Poly, msg []byte) {
	for i := 0; i < MessageSize; i++ {
		msg[i] = 0
		for j := 0; j < 8; j++ {
			msg[i] |= byte(ring.Compress(pol.Coeffs[8*i+j], 1)) << j
		}
	}
}
