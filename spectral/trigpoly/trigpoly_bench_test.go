package trigpoly

import (
	"math/rand"
	"testing"
)

func BenchmarkMul(b *testing.B) {
	degrees := []struct {
		name   string
		degree int
	}{
		{"4", 4},
		{"16", 16},
		{"64", 64},
	}

	for _, testCase := range degrees {
		b.Run(testCase.name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			p := randomPoly(rng, testCase.degree)
			q := randomPoly(rng, testCase.degree)

			b.ResetTimer()

			for range b.N {
				_ = p.Mul(q)
			}
		})
	}
}

func BenchmarkNormSq(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	p := randomPoly(rng, 32)

	b.ResetTimer()

	for range b.N {
		_ = p.NormSq()
	}
}

func BenchmarkEval(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	p := randomPoly(rng, 32)

	b.ResetTimer()

	for i := range b.N {
		_ = p.Eval(float64(i % 628) / 100)
	}
}
