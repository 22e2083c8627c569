package ring

import (
	"testing"

	"github.com/antoonpurnal/clangover/utils/sampling"
)

func BenchmarkNTT(b *testing.B) {

	prng, _ := sampling.NewKeyedPRNG(nil)
	pol := NewPoly()
	if err := NewUniformSampler(prng).Read(pol); err != nil {
		b.Fatal(err)
	}

	b.Run("NTT", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pol.NTT()
		}
	})

	b.Run("INTT", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pol.INTT()
		}
	})

	b.Run("MulCoeffsNTT", func(b *testing.B) {
		out := NewPoly()
		for i := 0; i < b.N; i++ {
			out.MulCoeffsNTT(pol, pol)
		}
	})
}
