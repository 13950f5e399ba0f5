package bochner

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/spectral/core"
	"github.com/cwbudde/algo-spectral/spectral/dft"
)

var (
	// ErrNotPositiveDefinite is returned when a finite sample fails the
	// positive-definiteness check: some character carries a negative
	// coefficient.
	ErrNotPositiveDefinite = errors.New("bochner: function is not positive-definite")

	// ErrNotContinuous is returned when the sampled function is not finite
	// at a grid point or its sampled modulus of continuity fails to decay
	// under refinement.
	ErrNotContinuous = errors.New("bochner: function does not appear continuous")

	// ErrNotConverged is returned when the sampling ladder exhausts its
	// budget before the coefficient vectors stabilize within tolerance.
	ErrNotConverged = errors.New("bochner: refinement budget exhausted")
)

// pdRel is the relative tolerance below which a negative real coefficient
// is attributed to rounding rather than to a PD violation.
const pdRel = 1e-9

// FiniteSample is a function sampled on Z/NZ together with its discrete
// Fourier coefficients and positive-definiteness flag.
type FiniteSample struct {
	N      int
	Values []complex128
	Coeffs []complex128
	PD     bool
}

// SampleFunc samples f at n equally spaced angles 2πm/n, computes the
// discrete Fourier coefficients and checks finite positive definiteness.
// Non-finite sample values fail with ErrNotContinuous.
func SampleFunc(f func(float64) complex128, n int) (FiniteSample, error) {
	if f == nil {
		return FiniteSample{}, fmt.Errorf("bochner: sample function must not be nil")
	}

	if n <= 0 {
		return FiniteSample{}, fmt.Errorf("bochner: sample count must be > 0: %d", n)
	}

	values := make([]complex128, n)

	for m := range values {
		theta := 2 * math.Pi * float64(m) / float64(n)

		v := f(theta)
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return FiniteSample{}, fmt.Errorf("%w: non-finite value at theta=%g", ErrNotContinuous, theta)
		}

		values[m] = v
	}

	coeffs, err := dft.Transform(values)
	if err != nil {
		return FiniteSample{}, err
	}

	return FiniteSample{
		N:      n,
		Values: values,
		Coeffs: coeffs,
		PD:     CheckFinitePD(values) == nil,
	}, nil
}

// CheckFinitePD reports whether a function on Z/nZ is positive-definite.
// By character orthogonality this is exactly: for every character χ_k, the
// real part of the normalized inner product ⟨f, χ_k⟩ is non-negative, and
// the imaginary part vanishes (the function is hermitian). A violation
// returns ErrNotPositiveDefinite naming the offending character.
func CheckFinitePD(values []complex128) error {
	coeffs, err := dft.Transform(values)
	if err != nil {
		return err
	}

	scale := 1.0
	for _, m := range dft.Magnitude(coeffs) {
		if m > scale {
			scale = m
		}
	}

	floor := pdRel * scale
	re := dft.RealParts(coeffs)

	for k, c := range coeffs {
		if math.Abs(imag(c)) > floor {
			return fmt.Errorf("%w: character %d carries non-real coefficient %v", ErrNotPositiveDefinite, k, c)
		}

		if re[k] < -floor {
			return fmt.Errorf("%w: character %d carries negative coefficient %g", ErrNotPositiveDefinite, k, re[k])
		}
	}

	return nil
}

// Term is one strictly positive character weight in a finite Bochner
// decomposition.
type Term struct {
	Index  int
	Weight float64
}

// FiniteDecomposition expresses a positive-definite function on Z/nZ as a
// combination of characters with strictly positive weights, collapsing
// zero-weight characters out of the representation. Recombining the terms
// reproduces the input exactly:
//
//	values[m] = ∑ Weight·χ_Index(m)
func FiniteDecomposition(values []complex128) ([]Term, error) {
	if err := CheckFinitePD(values); err != nil {
		return nil, err
	}

	coeffs, err := dft.Transform(values)
	if err != nil {
		return nil, err
	}

	scale := 1.0
	for _, m := range dft.Magnitude(coeffs) {
		if m > scale {
			scale = m
		}
	}

	out := make([]Term, 0, len(coeffs))

	for k, w := range dft.RealParts(coeffs) {
		if w > pdRel*scale {
			out = append(out, Term{Index: k, Weight: w})
		}
	}

	return out, nil
}

// Approximate computes a non-negative spectral measure representing the
// continuous periodic positive-definite function f, within tol.
//
// The ladder doubles the sample count; every rung is verified finitely
// positive-definite (a violation refutes the caller's witness and fails
// with ErrNotPositiveDefinite). Coefficients of consecutive rungs are
// Riemann sums of the same Fourier integrals, so under continuity they
// stabilize; two consecutive agreements within tol accept the rung.
// A sampled modulus of continuity that stops decaying marks the function
// discontinuous. The accepted coefficients are clamped at the tolerance
// and packaged as an immutable Measure.
func Approximate(f func(float64) complex128, tol float64, opts ...core.RefineOption) (Measure, error) {
	cfg := core.ApplyRefineOptions(opts...)
	if tol <= 0 {
		tol = cfg.Tolerance
	}

	var (
		prev       FiniteSample
		havePrev   bool
		agreements int
		strikes    int
		prevDelta  = math.Inf(1)
	)

	n := 16

	for range cfg.MaxRefinements {
		if n > cfg.MaxN {
			break
		}

		sample, err := SampleFunc(f, n)
		if err != nil {
			return Measure{}, err
		}

		if !sample.PD {
			return Measure{}, CheckFinitePD(sample.Values)
		}

		delta := maxGridStep(sample.Values)

		if delta >= 0.9*prevDelta && delta > tol {
			strikes++
			if strikes >= 3 {
				return Measure{}, fmt.Errorf("%w: sampled modulus of continuity stuck at %g", ErrNotContinuous, delta)
			}
		} else {
			strikes = 0
		}

		if havePrev {
			if coeffDistance(prev, sample) <= tol {
				agreements++
				if agreements >= 2 {
					return buildMeasure(sample, tol)
				}
			} else {
				agreements = 0
			}
		}

		prev = sample
		havePrev = true
		prevDelta = delta
		n *= 2
	}

	return Measure{}, fmt.Errorf("%w: tolerance %g not reached", ErrNotConverged, tol)
}

// maxGridStep returns the largest jump between cyclically consecutive
// samples, an estimate of the modulus of continuity at the grid spacing.
func maxGridStep(values []complex128) float64 {
	maxStep := 0.0

	for i := range values {
		next := values[(i+1)%len(values)]
		if d := cmplx.Abs(next - values[i]); d > maxStep {
			maxStep = d
		}
	}

	return maxStep
}

// coeffDistance compares the coefficient vectors of two rungs over the
// frequencies both resolve.
func coeffDistance(a, b FiniteSample) float64 {
	half := a.N/2 - 1
	if bh := b.N/2 - 1; bh < half {
		half = bh
	}

	maxDiff := 0.0

	for k := -half; k <= half; k++ {
		ca := a.Coeffs[mod(k, a.N)]
		cb := b.Coeffs[mod(k, b.N)]

		if d := cmplx.Abs(ca - cb); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff
}

func buildMeasure(sample FiniteSample, tol float64) (Measure, error) {
	weights := make(map[int]float64)
	half := sample.N / 2

	for k := -half + 1; k <= half; k++ {
		w := real(sample.Coeffs[mod(k, sample.N)])
		if w > tol {
			weights[k] = w
		}
	}

	return NewMeasure(weights)
}

func mod(k, n int) int {
	r := k % n
	if r < 0 {
		r += n
	}

	return r
}
