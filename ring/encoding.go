package ring

import (
	"fmt"
)

var masks = [8]uint16{0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff}

// EncodedSize returns the number of bytes taken by a polynomial whose
// coefficients are encoded on the given number of bits.
func EncodedSize(bits int) int {
	return N * bits / 8
}

// Encode packs the least significant bits of each coefficient of pol on out,
// little-endian, and returns the remainder of out.
// out must be at least EncodedSize(bits) bytes long.
func (pol *Poly) Encode(out []byte, bits int) []byte {
	var outByte byte
	outByteBits := 0

	for i := range pol.Coeffs {
		element := pol.Coeffs[i]
		elementBitsDone := 0

		for elementBitsDone < bits {
			chunkBits := bits - elementBitsDone
			outBitsRemaining := 8 - outByteBits
			if chunkBits >= outBitsRemaining {
				chunkBits = outBitsRemaining
				outByte |= byte(element&masks[chunkBits-1]) << outByteBits
				out[0] = outByte
				out = out[1:]
				outByteBits = 0
				outByte = 0
			} else {
				outByte |= byte(element&masks[chunkBits-1]) << outByteBits
				outByteBits += chunkBits
			}

			elementBitsDone += chunkBits
			element >>= chunkBits
		}
	}

	if outByteBits > 0 {
		out[0] = outByte
		out = out[1:]
	}

	return out
}

// Decode unpacks EncodedSize(bits) bytes of in into the coefficients of pol and
// returns the remainder of in. It returns an error if in is too short or if bits
// is LogQ and a decoded coefficient is not reduced.
func (pol *Poly) Decode(in []byte, bits int) ([]byte, error) {

	if len(in) < EncodedSize(bits) {
		return nil, fmt.Errorf("cannot Decode: need %d bytes but have %d", EncodedSize(bits), len(in))
	}

	var inByte byte
	inByteBitsLeft := 0

	for i := range pol.Coeffs {
		var element uint16
		elementBitsDone := 0

		for elementBitsDone < bits {
			if inByteBitsLeft == 0 {
				inByte = in[0]
				in = in[1:]
				inByteBitsLeft = 8
			}

			chunkBits := bits - elementBitsDone
			if chunkBits > inByteBitsLeft {
				chunkBits = inByteBitsLeft
			}

			element |= (uint16(inByte) & masks[chunkBits-1]) << elementBitsDone
			inByteBitsLeft -= chunkBits
			inByte >>= chunkBits

			elementBitsDone += chunkBits
		}

		if bits == LogQ && element >= Q {
			return nil, fmt.Errorf("cannot Decode: coefficient %d is %d >= Q", i, element)
		}
		pol.Coeffs[i] = element
	}

	return in, nil
}
