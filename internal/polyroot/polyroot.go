// Package polyroot provides polynomial root-finding utilities shared by the
// factorization and winding-number packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ClusteredRoot is an approximate root with the multiplicity of the cluster
// of iterates that converged to it.
type ClusteredRoot struct {
	Root         complex128
	Multiplicity int
}

// Roots finds all roots of a polynomial given in ascending power order
// (c[0] + c[1]*z + c[2]*z^2 + ...), multiplicity included, and clusters
// coincident iterates into ClusteredRoot records. Leading zero coefficients
// are trimmed first; a zero polynomial is degenerate.
func Roots(coeffs []complex128, clusterTol float64) ([]ClusteredRoot, error) {
	trimmed := trimAsc(coeffs)
	if len(trimmed) < 2 {
		if len(trimmed) == 1 && trimmed[0] != 0 {
			return nil, nil // nonzero constant, no roots
		}

		return nil, ErrDegeneratePolynomial
	}

	desc := make([]complex128, len(trimmed))
	for i, c := range trimmed {
		desc[len(trimmed)-1-i] = c
	}

	raw, err := DurandKerner(desc)
	if err != nil {
		return nil, err
	}

	return Cluster(raw, clusterTol), nil
}

// trimAsc drops trailing (highest-power) zero coefficients.
func trimAsc(coeffs []complex128) []complex128 {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}

	return coeffs[:n]
}

// Cluster groups approximate roots into (center, multiplicity) records. Roots
// within tol of a cluster center are merged into it; the center becomes the
// running mean of the cluster members.
func Cluster(roots []complex128, tol float64) []ClusteredRoot {
	if tol <= 0 {
		tol = 1e-8
	}

	out := make([]ClusteredRoot, 0, len(roots))

	for _, r := range roots {
		matched := false

		for i := range out {
			if cmplx.Abs(r-out[i].Root) <= tol*math.Max(1, cmplx.Abs(out[i].Root)) {
				m := out[i].Multiplicity
				out[i].Root = (out[i].Root*complex(float64(m), 0) + r) / complex(float64(m+1), 0)
				out[i].Multiplicity = m + 1
				matched = true

				break
			}
		}

		if !matched {
			out = append(out, ClusteredRoot{Root: r, Multiplicity: 1})
		}
	}

	return out
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 1000
		tol     = 1e-13
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := Eval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(Eval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// Eval evaluates a polynomial at x using Horner's method. Coefficients are in
// descending power order: coeff[0]*x^n + ... + coeff[n].
func Eval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// EvalAsc evaluates a polynomial in ascending power order:
// coeff[0] + coeff[1]*x + ... + coeff[n]*x^n.
func EvalAsc(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[len(coeff)-1]
	for i := len(coeff) - 2; i >= 0; i-- {
		v = v*x + coeff[i]
	}

	return v
}

// CoefficientBound returns a Cauchy inclusion radius for all roots of an
// ascending-order polynomial: 1 + max|c_i/c_n|. Every root has modulus at
// most this value.
func CoefficientBound(coeffs []complex128) (float64, error) {
	trimmed := trimAsc(coeffs)
	if len(trimmed) == 0 {
		return 0, ErrDegeneratePolynomial
	}

	lead := trimmed[len(trimmed)-1]
	maxRatio := 0.0

	for _, c := range trimmed[:len(trimmed)-1] {
		if r := cmplx.Abs(c) / cmplx.Abs(lead); r > maxRatio {
			maxRatio = r
		}
	}

	return 1 + maxRatio, nil
}
