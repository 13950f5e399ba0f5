package dft

import (
	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-spectral/spectral/core"
)

// Transform computes the normalized DFT of f on Z/NZ:
//
//	Transform(f)[k] = (1/N)·∑_m f[m]·χ_k(−m)
//
// Power-of-two sizes use an FFT plan; other sizes use direct summation.
func Transform(f []complex128) ([]complex128, error) {
	n := len(f)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if core.IsPowerOf2(n) {
		if out, err := fftForward(f); err == nil {
			return out, nil
		}
	}

	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for m, v := range f {
			sum += v * Char(n, k, -m)
		}

		out[k] = sum / complex(float64(n), 0)
	}

	return out, nil
}

// Inverse reconstructs the sample vector from its normalized DFT:
//
//	Inverse(c)[m] = ∑_k c[k]·χ_k(m)
//
// Inverse(Transform(f)) equals f exactly on finite data (up to float
// rounding); the round trip is an identity, not an approximation.
func Inverse(coeffs []complex128) ([]complex128, error) {
	n := len(coeffs)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if core.IsPowerOf2(n) {
		if out, err := fftInverse(coeffs); err == nil {
			return out, nil
		}
	}

	out := make([]complex128, n)
	for m := range out {
		var sum complex128
		for k, c := range coeffs {
			sum += c * Char(n, k, m)
		}

		out[m] = sum
	}

	return out, nil
}

// fftForward computes the normalized DFT through an algo-fft plan.
// The plan's forward transform is unnormalized, so the result is scaled
// by 1/N to match the Transform convention.
func fftForward(f []complex128) ([]complex128, error) {
	n := len(f)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, f); err != nil {
		return nil, err
	}

	inv := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= inv
	}

	return out, nil
}

// fftInverse computes the unnormalized inverse through an algo-fft plan.
// The plan's inverse transform carries a 1/N factor, so the result is
// scaled back by N to match the Inverse convention.
func fftInverse(coeffs []complex128) ([]complex128, error) {
	n := len(coeffs)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := plan.Inverse(out, coeffs); err != nil {
		return nil, err
	}

	scale := complex(float64(n), 0)
	for i := range out {
		out[i] *= scale
	}

	return out, nil
}
