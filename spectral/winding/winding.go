package winding

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/internal/polyroot"
	"github.com/cwbudde/algo-spectral/spectral/core"
)

var (
	// ErrRootOnBoundary is returned when a sample of |Q| on the chosen
	// circle falls to zero within tolerance: the radius violates the
	// no-root-on-boundary precondition.
	ErrRootOnBoundary = errors.New("winding: root on the sampling circle")

	// ErrUnresolved is returned when a consecutive-sample argument jump
	// reaches π, so the discretization cannot certify the winding number.
	// Raising n may succeed on the same input.
	ErrUnresolved = errors.New("winding: discretization too coarse to certify")

	// ErrNotConverged is returned by CountInside when the refinement budget
	// is exhausted before a certified value is obtained.
	ErrNotConverged = errors.New("winding: refinement budget exhausted")
)

// boundaryRel is the relative magnitude floor below which a sample counts
// as a root on the sampling circle.
const boundaryRel = 1e-12

// jumpLimit is the largest accepted argument increment between consecutive
// samples. Kept just below π so that ambiguous wraps fail toward
// ErrUnresolved.
const jumpLimit = math.Pi - 1e-6

// Number returns the discretized winding number of Q(r·e^{iθ}) around the
// origin: the net argument change over n equally spaced samples, divided by
// 2π and rounded. Q is given by ascending coefficients.
//
// The value is provably exact once n reaches Threshold for the root
// configuration; below that the observed-jump gate may pass while the
// discrete polygon misses turns near the circle. CountInside adds the
// sampling-independent certificate that closes this gap.
func Number(coeffs []complex128, r float64, n int) (int, error) {
	if err := validate(coeffs, r); err != nil {
		return 0, err
	}

	if n < 4 {
		return 0, fmt.Errorf("winding: discretization count must be >= 4: %d", n)
	}

	samples := Curve(coeffs, r, n)

	maxMag := 0.0
	for _, s := range samples {
		if m := cmplx.Abs(s); m > maxMag {
			maxMag = m
		}
	}

	if maxMag == 0 {
		return 0, ErrRootOnBoundary
	}

	floor := boundaryRel * maxMag

	phases := make([]float64, n)
	for i, s := range samples {
		if cmplx.Abs(s) <= floor {
			return 0, ErrRootOnBoundary
		}

		phases[i] = cmplx.Phase(s)
	}

	total := 0.0

	for i := 1; i <= n; i++ {
		delta := core.WrapAngle(phases[i%n] - phases[i-1])
		if math.Abs(delta) >= jumpLimit {
			return 0, ErrUnresolved
		}

		total += delta
	}

	w := total / (2 * math.Pi)
	rounded := math.Round(w)

	// The curve is closed, so the accumulated increments must already be an
	// integer multiple of 2π up to rounding noise.
	if math.Abs(w-rounded) > 0.25 {
		return 0, ErrUnresolved
	}

	return int(rounded), nil
}

// Curve samples the closed curve Q(r·e^{iθ}) at n equally spaced angles.
func Curve(coeffs []complex128, r float64, n int) []complex128 {
	if n <= 0 {
		return nil
	}

	out := make([]complex128, n)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / float64(n)
		z := cmplx.Rect(r, theta)
		out[i] = polyroot.EvalAsc(coeffs, z)
	}

	return out
}

// Threshold returns a discretization count N₀ such that for all n ≥ N₀ the
// consecutive-sample argument jumps of Q(r·e^{iθ}) stay below π and the
// rounded winding number equals the count of roots with modulus < r,
// multiplicity included.
//
// The bound follows from the Lipschitz estimate on the argument: every root
// at distance ≥ minGap from the circle contributes at most r/minGap to
// |d(arg Q)/dθ|, so degree·r/minGap bounds the total and
// n > 4·degree·r/minGap keeps each jump under π/2.
func Threshold(degree int, r, minGap float64) (int, error) {
	if degree < 0 {
		return 0, fmt.Errorf("winding: degree must be >= 0: %d", degree)
	}

	if r <= 0 {
		return 0, fmt.Errorf("winding: radius must be > 0: %g", r)
	}

	if minGap <= 0 {
		return 0, fmt.Errorf("winding: minimal root gap must be > 0: %g", minGap)
	}

	n := int(math.Ceil(4*float64(degree)*r/minGap)) + 4
	if n < 8 {
		n = 8
	}

	return n, nil
}

// variationBound bounds |dQ(r·e^{iθ})/dθ| over the whole circle:
// ∑ k·|c_k|·r^k.
func variationBound(coeffs []complex128, r float64) float64 {
	v := 0.0
	rk := 1.0 // r^k

	for k, c := range coeffs {
		if k > 0 {
			v += float64(k) * cmplx.Abs(c) * rk
		}

		rk *= r
	}

	return v
}

// CountInside returns the number of roots of Q with modulus < r,
// multiplicity included, by refining the discretization until the winding
// value is certified. Certification is sampling-independent: with
// V = ∑ k·|c_k|·r^k bounding the curve speed, each inter-sample arc varies
// by at most V·2π/n, and once that variation is below half the smallest
// sampled |Q| the discrete polygon provably has the winding number of the
// continuous curve. Uncertified rungs are discarded, never blended; each
// step doubles n. Budget exhaustion yields ErrNotConverged; a root on the
// circle of radius r yields ErrRootOnBoundary.
func CountInside(coeffs []complex128, r float64, opts ...core.RefineOption) (int, error) {
	if err := validate(coeffs, r); err != nil {
		return 0, err
	}

	cfg := core.ApplyRefineOptions(opts...)
	v := variationBound(coeffs, r)

	n := 16
	if d := len(coeffs) - 1; n < 4*d {
		n = core.NextPowerOf2(4 * d)
	}

	for range cfg.MaxRefinements {
		if n > cfg.MaxN {
			break
		}

		samples := Curve(coeffs, r, n)

		minMag := math.Inf(1)
		maxMag := 0.0

		for _, s := range samples {
			m := cmplx.Abs(s)
			if m < minMag {
				minMag = m
			}

			if m > maxMag {
				maxMag = m
			}
		}

		if minMag <= boundaryRel*maxMag {
			return 0, ErrRootOnBoundary
		}

		if v*2*math.Pi/float64(n) < 0.5*minMag {
			count, err := Number(coeffs, r, n)
			if err == nil {
				return count, nil
			}

			if !errors.Is(err, ErrUnresolved) {
				return 0, err
			}
		}

		n *= 2
	}

	return 0, fmt.Errorf("%w: radius %g", ErrNotConverged, r)
}

func validate(coeffs []complex128, r float64) error {
	nonzero := false

	for _, c := range coeffs {
		if c != 0 {
			nonzero = true
			break
		}
	}

	if !nonzero {
		return fmt.Errorf("winding: polynomial must be nonzero")
	}

	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("winding: radius must be > 0: %g", r)
	}

	return nil
}
