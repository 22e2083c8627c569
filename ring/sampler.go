package ring

import (
	"fmt"
	"io"
)

// Sampler is an interface for random polynomial samplers.
// It has a single Read method which takes as argument the polynomial to be
// populated according to the Sampler's distribution.
type Sampler interface {
	Read(pol *Poly) error
}

// UniformSampler samples polynomials with coefficients uniform in [0, Q) by
// rejection sampling on 12-bit chunks of an extendable-output stream.
// The number of bytes consumed depends on the stream, so it is not constant time;
// it is only used on public seeds.
type UniformSampler struct {
	xof io.Reader
}

// NewUniformSampler creates a new UniformSampler reading from xof.
func NewUniformSampler(xof io.Reader) *UniformSampler {
	return &UniformSampler{xof: xof}
}

// Read samples a uniform polynomial into pol.
func (us *UniformSampler) Read(pol *Poly) error {
	var buf [3]byte
	for i := 0; i < N; {
		if _, err := io.ReadFull(us.xof, buf[:]); err != nil {
			return fmt.Errorf("cannot UniformSampler.Read: %w", err)
		}
		d1 := uint16(buf[0]) + 256*uint16(buf[1]%16)
		d2 := uint16(buf[1])/16 + 16*uint16(buf[2])
		if d1 < Q {
			pol.Coeffs[i] = d1
			i++
		}
		if d2 < Q && i < N {
			pol.Coeffs[i] = d2
			i++
		}
	}
	return nil
}

// CenteredBinomialSampler samples polynomials with coefficients following the
// centered binomial distribution of parameter Eta, i.e. in [-Eta, Eta].
type CenteredBinomialSampler struct {
	prf io.Reader
	eta int
}

// NewCenteredBinomialSampler creates a new CenteredBinomialSampler reading 64*eta bytes
// from prf per polynomial. eta must be 2 or 3.
func NewCenteredBinomialSampler(prf io.Reader, eta int) (*CenteredBinomialSampler, error) {
	if eta != 2 && eta != 3 {
		return nil, fmt.Errorf("invalid CenteredBinomialSampler: eta=%d must be 2 or 3", eta)
	}
	return &CenteredBinomialSampler{prf: prf, eta: eta}, nil
}

// EntropySize returns the number of bytes needed to sample one polynomial with parameter eta.
func EntropySize(eta int) int {
	return 2 * eta * N / 8
}

// Read samples a polynomial into pol.
// Coefficient i is a - b where a and b are the sums of the Eta consecutive bits
// starting at bit 2*Eta*i and 2*Eta*i + Eta of the little-endian entropy stream.
func (cbs *CenteredBinomialSampler) Read(pol *Poly) error {

	entropy := make([]byte, EntropySize(cbs.eta))
	if _, err := io.ReadFull(cbs.prf, entropy); err != nil {
		return fmt.Errorf("cannot CenteredBinomialSampler.Read: %w", err)
	}

	bit := func(k int) uint16 {
		return uint16(entropy[k>>3]>>(k&7)) & 1
	}

	for i := range pol.Coeffs {
		offset := 2 * cbs.eta * i
		value := uint16(Q)
		for j := 0; j < cbs.eta; j++ {
			value += bit(offset + j)
			value -= bit(offset + cbs.eta + j)
		}
		pol.Coeffs[i] = CRed(value)
	}

	return nil
}
