package fejer

import (
	"math/rand"
	"testing"
)

func BenchmarkFactorize(b *testing.B) {
	degrees := []struct {
		name   string
		degree int
	}{
		{"deg2", 2},
		{"deg4", 4},
		{"deg8", 8},
	}

	for _, testCase := range degrees {
		b.Run(testCase.name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(2))
			r := randomAnalytic(rng, testCase.degree).NormSq()

			b.ResetTimer()

			for range b.N {
				_, _ = Factorize(r)
			}
		})
	}
}

func BenchmarkNewPairing(b *testing.B) {
	records := []RootRecord{
		{Root: 0.5, Multiplicity: 1, Class: ClassInside},
		{Root: 2, Multiplicity: 1, Class: ClassOutside},
		{Root: 0.25i, Multiplicity: 2, Class: ClassInside},
		{Root: 4i, Multiplicity: 2, Class: ClassOutside},
		{Root: 1i, Multiplicity: 2, Class: ClassOnCircle},
	}

	b.ResetTimer()

	for range b.N {
		_, _ = NewPairing(records, 0)
	}
}
