package fejer_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/spectral/fejer"
	"github.com/cwbudde/algo-spectral/spectral/trigpoly"
)

func ExampleFactorize() {
	// r(θ) = 2 + cosθ
	r := trigpoly.New(map[int]complex128{-1: 0.5, 0: 2, 1: 0.5})

	p, err := fejer.Factorize(r)
	if err != nil {
		panic(err)
	}

	// The analytic factor has frequencies 0..1 and |p|² = r.
	fmt.Println(p.Degree(), p.NormSq().Equal(r, 1e-8))

	// Output:
	// 1 true
}

func ExampleFactorize_rejection() {
	// cosθ is negative at θ=π and cannot be factorized.
	r := trigpoly.New(map[int]complex128{-1: 0.5, 1: 0.5})

	_, err := fejer.Factorize(r)
	fmt.Println(err != nil)

	// Output:
	// true
}
