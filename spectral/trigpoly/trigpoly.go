package trigpoly

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-spectral/spectral/core"
)

// TrigPoly is an immutable finite-support mapping from integer frequencies
// to complex coefficients. The zero value is the zero polynomial.
type TrigPoly struct {
	coeffs map[int]complex128
}

// New builds a TrigPoly from a frequency-to-coefficient map. Exact-zero
// coefficients are dropped so the support stays minimal. The input map is
// copied and never retained.
func New(coeffs map[int]complex128) TrigPoly {
	m := make(map[int]complex128, len(coeffs))
	for k, c := range coeffs {
		if c != 0 {
			m[k] = c
		}
	}

	return TrigPoly{coeffs: m}
}

// FromSlice builds a TrigPoly from consecutive coefficients starting at
// frequency lo: coeffs[i] becomes the coefficient at lo+i.
func FromSlice(lo int, coeffs []complex128) TrigPoly {
	m := make(map[int]complex128, len(coeffs))
	for i, c := range coeffs {
		if c != 0 {
			m[lo+i] = c
		}
	}

	return TrigPoly{coeffs: m}
}

// Zero returns the zero polynomial.
func Zero() TrigPoly {
	return TrigPoly{coeffs: map[int]complex128{}}
}

// Const returns the constant polynomial c.
func Const(c complex128) TrigPoly {
	return Harmonic(0, c)
}

// Harmonic returns c·e^{ikθ}.
func Harmonic(k int, c complex128) TrigPoly {
	if c == 0 {
		return Zero()
	}

	return TrigPoly{coeffs: map[int]complex128{k: c}}
}

// Coeff returns the coefficient at frequency k (zero off the support).
func (p TrigPoly) Coeff(k int) complex128 {
	return p.coeffs[k]
}

// Support returns the sorted frequencies carrying nonzero coefficients.
func (p TrigPoly) Support() []int {
	out := make([]int, 0, len(p.coeffs))
	for k := range p.coeffs {
		out = append(out, k)
	}

	sort.Ints(out)

	return out
}

// Degree returns the largest |k| with a nonzero coefficient; the zero
// polynomial has degree 0.
func (p TrigPoly) Degree() int {
	deg := 0
	for k := range p.coeffs {
		if k < 0 {
			k = -k
		}

		if k > deg {
			deg = k
		}
	}

	return deg
}

// IsZero reports whether the polynomial has empty support.
func (p TrigPoly) IsZero() bool {
	return len(p.coeffs) == 0
}

// Eval computes ∑ c_k·e^{ikθ}.
func (p TrigPoly) Eval(theta float64) complex128 {
	var sum complex128
	for k, c := range p.coeffs {
		sum += c * cmplx.Exp(complex(0, float64(k)*theta))
	}

	return sum
}

// Real evaluates p at theta and returns the real part. It errors when the
// imaginary part exceeds eps, which signals a polynomial that is not real
// on the circle.
func (p TrigPoly) Real(theta, eps float64) (float64, error) {
	if eps <= 0 {
		eps = core.DefaultEpsilon
	}

	v := p.Eval(theta)
	scale := 1 + cmplx.Abs(v)

	if im := imag(v); im > eps*scale || im < -eps*scale {
		return 0, fmt.Errorf("trigpoly: value at theta=%g is not real: %v", theta, v)
	}

	return real(v), nil
}

// Add returns p + q.
func (p TrigPoly) Add(q TrigPoly) TrigPoly {
	m := make(map[int]complex128, len(p.coeffs)+len(q.coeffs))
	for k, c := range p.coeffs {
		m[k] = c
	}

	for k, c := range q.coeffs {
		s := m[k] + c
		if s == 0 {
			delete(m, k)
		} else {
			m[k] = s
		}
	}

	return TrigPoly{coeffs: m}
}

// Sub returns p − q.
func (p TrigPoly) Sub(q TrigPoly) TrigPoly {
	return p.Add(q.Scale(-1))
}

// Scale returns c·p.
func (p TrigPoly) Scale(c complex128) TrigPoly {
	if c == 0 {
		return Zero()
	}

	m := make(map[int]complex128, len(p.coeffs))
	for k, v := range p.coeffs {
		m[k] = c * v
	}

	return TrigPoly{coeffs: m}
}

// Mul returns the product p·q. Coefficients combine by convolution; the
// support of the product is the Minkowski sum of the operand supports.
func (p TrigPoly) Mul(q TrigPoly) TrigPoly {
	m := make(map[int]complex128, len(p.coeffs)*len(q.coeffs))
	for kp, cp := range p.coeffs {
		for kq, cq := range q.coeffs {
			m[kp+kq] += cp * cq
		}
	}

	for k, c := range m {
		if c == 0 {
			delete(m, k)
		}
	}

	return TrigPoly{coeffs: m}
}

// ConjReflect maps the coefficient at k to the conjugate of the coefficient
// at −k. On the circle this is pointwise complex conjugation of p.
func (p TrigPoly) ConjReflect() TrigPoly {
	m := make(map[int]complex128, len(p.coeffs))
	for k, c := range p.coeffs {
		m[-k] = cmplx.Conj(c)
	}

	return TrigPoly{coeffs: m}
}

// NormSq returns p · ConjReflect(p), the squared modulus of p as a
// trigonometric polynomial. It is real and non-negative everywhere on the
// circle for any p.
func (p TrigPoly) NormSq() TrigPoly {
	return p.Mul(p.ConjReflect())
}

// IsRealOnCircle reports whether p takes only real values on the circle,
// which holds exactly when the coefficient at −k is the conjugate of the
// coefficient at k for every k, within eps.
func (p TrigPoly) IsRealOnCircle(eps float64) bool {
	if eps <= 0 {
		eps = core.DefaultEpsilon
	}

	for k, c := range p.coeffs {
		if !core.NearlyEqualComplex(c, cmplx.Conj(p.coeffs[-k]), eps) {
			return false
		}
	}

	return true
}

// Equal reports coefficient-wise equality within eps over the union of the
// two supports.
func (p TrigPoly) Equal(q TrigPoly, eps float64) bool {
	for k, c := range p.coeffs {
		if !core.NearlyEqualComplex(c, q.coeffs[k], eps) {
			return false
		}
	}

	for k, c := range q.coeffs {
		if _, seen := p.coeffs[k]; seen {
			continue
		}

		if !core.NearlyEqualComplex(c, 0, eps) {
			return false
		}
	}

	return true
}

// Chop returns a copy with every coefficient whose modulus is at most eps
// removed from the support. Useful after chains of products that accumulate
// floating-point residue.
func (p TrigPoly) Chop(eps float64) TrigPoly {
	if eps <= 0 {
		eps = core.DefaultEpsilon
	}

	m := make(map[int]complex128, len(p.coeffs))
	for k, c := range p.coeffs {
		if cmplx.Abs(c) > eps {
			m[k] = c
		}
	}

	return TrigPoly{coeffs: m}
}

// ToPoly converts p to an ordinary polynomial under the substitution
// z = e^{iθ}. It returns ascending coefficients q and the lowest frequency
// lo of the support, so that p(θ) = e^{i·lo·θ} · Q(e^{iθ}) with
// Q(z) = q[0] + q[1]z + … . The zero polynomial yields (nil, 0).
func (p TrigPoly) ToPoly() ([]complex128, int) {
	if len(p.coeffs) == 0 {
		return nil, 0
	}

	support := p.Support()
	lo := support[0]
	hi := support[len(support)-1]

	out := make([]complex128, hi-lo+1)
	for k, c := range p.coeffs {
		out[k-lo] = c
	}

	return out, lo
}
