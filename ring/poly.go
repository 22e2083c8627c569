package ring

import (
	"fmt"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficients are always reduced, i.e. in [0, Q).
type Poly struct {
	Coeffs [N]uint16
}

// NewPoly creates a new polynomial with all coefficients set to zero.
func NewPoly() *Poly {
	return new(Poly)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol *Poly) Zero() {
	clear(pol.Coeffs[:])
}

// CopyNew creates an exact copy of the target polynomial.
func (pol *Poly) CopyNew() (p1 *Poly) {
	p1 = NewPoly()
	p1.Coeffs = pol.Coeffs
	return
}

// Copy copies the coefficients of p1 on the target polynomial.
func (pol *Poly) Copy(p1 *Poly) {
	if pol != p1 {
		pol.Coeffs = p1.Coeffs
	}
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
func (pol *Poly) Equal(other *Poly) bool {
	if pol == other {
		return true
	}
	return pol != nil && other != nil && pol.Coeffs == other.Coeffs
}

// Add sets pol to pol + p1.
func (pol *Poly) Add(p1 *Poly) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = CRed(pol.Coeffs[i] + p1.Coeffs[i])
	}
}

// Sub sets pol to pol - p1.
func (pol *Poly) Sub(p1 *Poly) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = CRed(pol.Coeffs[i] - p1.Coeffs[i] + Q)
	}
}

// SetCentered sets the coefficients of pol to the residues of the signed integers in coeffs.
// It returns an error if len(coeffs) != N.
func (pol *Poly) SetCentered(coeffs []int16) (err error) {
	if len(coeffs) != N {
		return fmt.Errorf("cannot SetCentered: len(coeffs)=%d but ring degree is %d", len(coeffs), N)
	}
	for i := range coeffs {
		pol.Coeffs[i] = Uncenter(coeffs[i])
	}
	return
}

// Centered writes the coefficients of pol, mapped to (-Q/2, Q/2], on out.
// It returns an error if len(out) != N.
func (pol *Poly) Centered(out []int16) (err error) {
	if len(out) != N {
		return fmt.Errorf("cannot Centered: len(out)=%d but ring degree is %d", len(out), N)
	}
	for i := range out {
		out[i] = Center(pol.Coeffs[i])
	}
	return
}
