package dft_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/spectral/dft"
)

func ExampleTransform() {
	// The character χ_1 on Z/4Z transforms to the indicator of frequency 1.
	f := dft.CharVector(4, 1)

	coeffs, _ := dft.Transform(f)
	for k, c := range coeffs {
		fmt.Printf("%d:%.0f ", k, cmplx.Abs(c))
	}
	fmt.Println()

	// Output:
	// 0:0 1:1 2:0 3:0
}

func ExampleInnerProduct() {
	a := dft.CharVector(6, 2)
	b := dft.CharVector(6, 2)

	ip, _ := dft.InnerProduct(a, b)
	fmt.Printf("%.0f\n", real(ip))

	// Output:
	// 1
}
