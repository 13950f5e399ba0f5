package bochner

import (
	"fmt"
	"math/cmplx"
	"sort"
)

// Measure is a non-negative summable mapping from integer frequencies to
// real weights. Constructed once, never mutated.
type Measure struct {
	weights map[int]float64
}

// NewMeasure builds a Measure from a frequency-to-weight map. Negative
// weights are rejected; zero weights are dropped. The input map is copied.
func NewMeasure(weights map[int]float64) (Measure, error) {
	m := make(map[int]float64, len(weights))

	for k, w := range weights {
		if w < 0 {
			return Measure{}, fmt.Errorf("bochner: negative weight %g at frequency %d", w, k)
		}

		if w > 0 {
			m[k] = w
		}
	}

	return Measure{weights: m}, nil
}

// Weight returns the mass at frequency k (zero off the support).
func (m Measure) Weight(k int) float64 {
	return m.weights[k]
}

// Support returns the sorted frequencies with positive mass.
func (m Measure) Support() []int {
	out := make([]int, 0, len(m.weights))
	for k := range m.weights {
		out = append(out, k)
	}

	sort.Ints(out)

	return out
}

// Total returns the total mass ∑ w_k, which equals the represented
// function's value at zero.
func (m Measure) Total() float64 {
	total := 0.0
	for _, w := range m.weights {
		total += w
	}

	return total
}

// ExpSum evaluates the exponential sum ∑ w_k·e^{ikθ}, recovering the
// represented positive-definite function at theta.
func (m Measure) ExpSum(theta float64) complex128 {
	var sum complex128
	for k, w := range m.weights {
		sum += complex(w, 0) * cmplx.Exp(complex(0, float64(k)*theta))
	}

	return sum
}
