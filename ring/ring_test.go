package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antoonpurnal/clangover/utils/sampling"
)

func testString(opname string, bits int) string {
	return fmt.Sprintf("%s/N=%d/Q=%d/bits=%d", opname, N, Q, bits)
}

func newTestPRNG(t *testing.T) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG([]byte("ring test"))
	require.NoError(t, err)
	return prng
}

func randomPoly(t *testing.T, prng sampling.PRNG) *Poly {
	pol := NewPoly()
	require.NoError(t, NewUniformSampler(prng).Read(pol))
	return pol
}

// naiveMul returns p0 * p1 mod (X^N+1) by schoolbook multiplication.
func naiveMul(p0, p1 *Poly) *Poly {
	var acc [N]int64
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			v := int64(p0.Coeffs[i]) * int64(p1.Coeffs[j])
			if i+j < N {
				acc[i+j] += v
			} else {
				acc[i+j-N] -= v
			}
		}
	}
	out := NewPoly()
	for i := range acc {
		r := acc[i] % Q
		if r < 0 {
			r += Q
		}
		out.Coeffs[i] = uint16(r)
	}
	return out
}

func TestRing(t *testing.T) {
	testModularReduction(t)
	testNTT(t)
	testPosition(t)
	testCompression(t)
	testEncoding(t)
	testSampler(t)
	testVector(t)
}

func testModularReduction(t *testing.T) {

	t.Run("CRed", func(t *testing.T) {
		for x := uint16(0); x < 2*Q; x++ {
			require.Equal(t, x%Q, CRed(x))
		}
		require.Panics(t, func() { CRed(2 * Q) })
	})

	t.Run("BRed", func(t *testing.T) {
		for _, x := range []uint32{0, 1, Q - 1, Q, 2*Q*Q - 1, Q + 2*Q*Q - 1, 123456789 % (Q + 2*Q*Q)} {
			require.Equal(t, uint16(x%Q), BRed(x), x)
		}
		require.Panics(t, func() { BRed(Q + 2*Q*Q) })
	})

	t.Run("Center", func(t *testing.T) {
		require.Equal(t, int16(0), Center(0))
		require.Equal(t, int16(HalfQ), Center(HalfQ))
		require.Equal(t, int16(-HalfQ), Center(HalfQ+1))
		require.Equal(t, int16(-1), Center(Q-1))
		for x := int16(-HalfQ); x <= HalfQ; x++ {
			require.Equal(t, x, Center(Uncenter(x)))
		}
		require.Equal(t, uint16(Q-3), Uncenter(-3))
	})
}

func testNTT(t *testing.T) {

	prng := newTestPRNG(t)

	t.Run("NTT/INTT", func(t *testing.T) {
		p0 := randomPoly(t, prng)
		p1 := p0.CopyNew()
		p1.NTT()
		require.False(t, p0.Equal(p1))
		p1.INTT()
		require.True(t, p0.Equal(p1))
	})

	t.Run("MulCoeffsNTT", func(t *testing.T) {
		p0 := randomPoly(t, prng)
		p1 := randomPoly(t, prng)
		want := naiveMul(p0, p1)

		a, b := p0.CopyNew(), p1.CopyNew()
		a.NTT()
		b.NTT()
		have := NewPoly()
		have.MulCoeffsNTT(a, b)
		have.INTT()

		require.Equal(t, want.Coeffs, have.Coeffs)
	})
}

func testPosition(t *testing.T) {

	t.Run("Position", func(t *testing.T) {

		require.Equal(t, 0, Position(0))
		require.Equal(t, N-1, Position(1))
		require.Equal(t, 1, Position(N-1))

		prng := newTestPRNG(t)
		secret := randomPoly(t, prng)

		for _, p := range []int{0, 1, 17, 128, N - 1} {
			monomial := NewPoly()
			monomial.Coeffs[Position(p)] = 1
			product := naiveMul(secret, monomial)
			if p == 0 {
				require.Equal(t, secret.Coeffs[p], product.Coeffs[0])
			} else {
				require.Equal(t, CRed(Q-secret.Coeffs[p]), product.Coeffs[0])
			}
		}
	})
}

func testCompression(t *testing.T) {

	for _, d := range []int{1, 4, 10, 11} {
		t.Run(testString("Compress", d), func(t *testing.T) {
			bound := int((Q + (1 << (d + 1)) - 1) >> (d + 1)) // ceil(Q/2^(d+1))
			for x := uint16(0); x < Q; x++ {
				c := Compress(x, d)
				require.Less(t, c, uint16(1<<d))
				y := Decompress(c, d)
				diff := int(Center(CRed(y + Q - x)))
				if diff < 0 {
					diff = -diff
				}
				require.LessOrEqual(t, diff, bound, "x=%d", x)
			}
		})
	}

	t.Run("Compress/Message", func(t *testing.T) {
		require.Equal(t, uint16(0), Compress(0, 1))
		require.Equal(t, uint16(0), Compress(832, 1))
		require.Equal(t, uint16(1), Compress(833, 1))
		require.Equal(t, uint16(1), Compress(2496, 1))
		require.Equal(t, uint16(0), Compress(2497, 1))
		require.Equal(t, uint16(1665), Decompress(1, 1))
	})
}

func testEncoding(t *testing.T) {

	prng := newTestPRNG(t)

	for _, bits := range []int{1, 4, 10, 12} {
		t.Run(testString("Encode/Decode", bits), func(t *testing.T) {
			p0 := randomPoly(t, prng)
			for i := range p0.Coeffs {
				p0.Coeffs[i] &= (1 << bits) - 1
				if p0.Coeffs[i] >= Q {
					p0.Coeffs[i] -= Q
				}
			}

			buf := make([]byte, EncodedSize(bits)+3)
			rem := p0.Encode(buf, bits)
			require.Len(t, rem, 3)

			p1 := NewPoly()
			rem, err := p1.Decode(buf, bits)
			require.NoError(t, err)
			require.Len(t, rem, 3)
			require.True(t, p0.Equal(p1))
		})
	}

	t.Run("Decode/Errors", func(t *testing.T) {
		p := NewPoly()
		_, err := p.Decode(make([]byte, EncodedSize(LogQ)-1), LogQ)
		require.Error(t, err)

		buf := make([]byte, EncodedSize(LogQ))
		buf[0], buf[1] = 0xff, 0x0f // first coefficient 4095
		_, err = p.Decode(buf, LogQ)
		require.Error(t, err)
	})
}

func testSampler(t *testing.T) {

	prng := newTestPRNG(t)

	t.Run("UniformSampler", func(t *testing.T) {
		p := randomPoly(t, prng)
		for i := range p.Coeffs {
			require.Less(t, p.Coeffs[i], uint16(Q))
		}
	})

	for _, eta := range []int{2, 3} {
		t.Run(fmt.Sprintf("CenteredBinomialSampler/eta=%d", eta), func(t *testing.T) {
			cbs, err := NewCenteredBinomialSampler(prng, eta)
			require.NoError(t, err)

			p := NewPoly()
			require.NoError(t, cbs.Read(p))

			coeffs := make([]int16, N)
			require.NoError(t, p.Centered(coeffs))

			var nonZero int
			for _, c := range coeffs {
				require.GreaterOrEqual(t, c, int16(-eta))
				require.LessOrEqual(t, c, int16(eta))
				if c != 0 {
					nonZero++
				}
			}
			require.Greater(t, nonZero, 0)
		})
	}

	t.Run("CenteredBinomialSampler/Bits", func(t *testing.T) {
		// 0b000111 per coefficient: a = 3, b = 0
		entropy := make([]byte, EntropySize(3))
		for k := 0; k < 8*len(entropy); k++ {
			if k%6 < 3 {
				entropy[k>>3] |= 1 << (k & 7)
			}
		}
		cbs, err := NewCenteredBinomialSampler(&fixedReader{entropy}, 3)
		require.NoError(t, err)
		p := NewPoly()
		require.NoError(t, cbs.Read(p))
		for i := range p.Coeffs {
			require.Equal(t, uint16(3), p.Coeffs[i])
		}
	})

	t.Run("CenteredBinomialSampler/InvalidEta", func(t *testing.T) {
		_, err := NewCenteredBinomialSampler(prng, 4)
		require.Error(t, err)
	})
}

func testVector(t *testing.T) {

	prng := newTestPRNG(t)

	t.Run("Vector/InnerProduct", func(t *testing.T) {
		a := NewVector(2)
		b := NewVector(2)
		for i := range a {
			a[i] = *randomPoly(t, prng)
			b[i] = *randomPoly(t, prng)
		}

		want := naiveMul(&a[0], &b[0])
		want.Add(naiveMul(&a[1], &b[1]))

		an, bn := a.CopyNew(), b.CopyNew()
		an.NTT()
		bn.NTT()
		have := NewPoly()
		have.InnerProduct(an, bn)
		have.INTT()

		require.True(t, want.Equal(have))
	})

	t.Run("Vector/Encode/Decode", func(t *testing.T) {
		v := NewVector(3)
		for i := range v {
			v[i] = *randomPoly(t, prng)
		}
		buf := make([]byte, 3*EncodedSize(LogQ))
		require.Empty(t, v.Encode(buf, LogQ))

		w := NewVector(3)
		rem, err := w.Decode(buf, LogQ)
		require.NoError(t, err)
		require.Empty(t, rem)
		require.True(t, v.Equal(w))
		require.False(t, v.Equal(w[:2]))
	})

	t.Run("Matrix/MulVector", func(t *testing.T) {
		m := NewMatrix(2)
		for i := range m {
			for j := range m[i] {
				m[i][j] = *randomPoly(t, prng)
			}
		}
		v := NewVector(2)
		for i := range v {
			v[i] = *randomPoly(t, prng)
		}

		out := NewVector(2)
		outT := NewVector(2)
		m.MulVector(v, out)
		m.MulVectorTranspose(v, outT)

		for i := 0; i < 2; i++ {
			want := NewPoly()
			wantT := NewPoly()
			for j := 0; j < 2; j++ {
				want.MulCoeffsNTTThenAdd(&m[i][j], &v[j])
				wantT.MulCoeffsNTTThenAdd(&m[j][i], &v[j])
			}
			require.True(t, want.Equal(&out[i]))
			require.True(t, wantT.Equal(&outT[i]))
		}
	})
}

type fixedReader struct {
	buf []byte
}

func (r *fixedReader) Read(p []byte) (int, error) {
	n := copy(p, r.buf)
	return n, nil
}
