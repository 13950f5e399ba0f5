package winding

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func benchPoly(degree int) []complex128 {
	rng := rand.New(rand.NewSource(5))

	roots := make([]complex128, degree)
	for i := range roots {
		mod := 0.3 + 0.4*rng.Float64()
		if i%2 == 0 {
			mod = 1.5 + rng.Float64()
		}

		roots[i] = cmplx.Rect(mod, 2*3.14159*rng.Float64())
	}

	return testutil.FromRoots(roots...)
}

func BenchmarkNumber(b *testing.B) {
	cases := []struct {
		name   string
		degree int
		n      int
	}{
		{"deg4_n256", 4, 256},
		{"deg8_n1K", 8, 1024},
		{"deg16_n4K", 16, 4096},
	}

	for _, testCase := range cases {
		b.Run(testCase.name, func(b *testing.B) {
			coeffs := benchPoly(testCase.degree)

			b.ResetTimer()

			for range b.N {
				_, _ = Number(coeffs, 1, testCase.n)
			}
		})
	}
}

func BenchmarkCountInside(b *testing.B) {
	coeffs := benchPoly(8)

	b.ResetTimer()

	for range b.N {
		_, _ = CountInside(coeffs, 1)
	}
}
