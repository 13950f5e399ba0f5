package dft

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrEmptyInput is returned for zero-length sample vectors.
	ErrEmptyInput = errors.New("dft: input must not be empty")
	// ErrLengthMismatch is returned when paired vectors differ in length.
	ErrLengthMismatch = errors.New("dft: input lengths must match")
)

// Char evaluates the character χ_k of Z/nZ at m: exp(2πi·k·m/n).
// k and m may be any integers; only their residues mod n matter.
func Char(n, k, m int) complex128 {
	if n <= 0 {
		return cmplx.NaN()
	}

	r := ((k % n) * (m % n)) % n
	if r < 0 {
		r += n
	}

	angle := 2 * math.Pi * float64(r) / float64(n)

	return complex(math.Cos(angle), math.Sin(angle))
}

// CharVector returns χ_k sampled over all of Z/nZ.
func CharVector(n, k int) []complex128 {
	if n <= 0 {
		return nil
	}

	out := make([]complex128, n)
	for m := range out {
		out[m] = Char(n, k, m)
	}

	return out
}

// InnerProduct computes the normalized inner product
// (1/N)·∑ a[m]·conj(b[m]). By character orthogonality,
// InnerProduct(CharVector(n,k), CharVector(n,j)) is 1 iff k ≡ j (mod n)
// and 0 otherwise.
func InnerProduct(a, b []complex128) (complex128, error) {
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}

	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}

	var sum complex128
	for i := range a {
		sum += a[i] * cmplx.Conj(b[i])
	}

	return sum / complex(float64(len(a)), 0), nil
}
