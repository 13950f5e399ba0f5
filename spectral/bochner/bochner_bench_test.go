package bochner

import (
	"math"
	"math/cmplx"
	"testing"
)

func BenchmarkCheckFinitePD(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"64", 64},
		{"1K", 1024},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			values := make([]complex128, testCase.size)
			for m := range values {
				theta := 2 * math.Pi * float64(m) / float64(testCase.size)
				values[m] = complex(1+math.Cos(theta), 0)
			}

			b.ResetTimer()

			for range b.N {
				_ = CheckFinitePD(values)
			}
		})
	}
}

func BenchmarkApproximate(b *testing.B) {
	f := func(theta float64) complex128 {
		return 0.25 + 0.5*cmplx.Exp(complex(0, theta)) + 0.25*cmplx.Exp(complex(0, -3*theta))
	}

	b.ResetTimer()

	for range b.N {
		_, _ = Approximate(f, 1e-8)
	}
}
