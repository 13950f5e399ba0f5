package core

import (
	"math"
	"math/cmplx"
)

const defaultEpsilon = 1e-12

// DefaultEpsilon is the package-wide comparison tolerance used when a caller
// passes a non-positive eps.
const DefaultEpsilon = defaultEpsilon

// NearlyEqual reports whether a and b are equal within eps, using a relative
// comparison for large magnitudes and an absolute one near zero.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// NearlyEqualComplex reports whether a and b agree within eps in modulus.
func NearlyEqualComplex(a, b complex128, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := cmplx.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(cmplx.Abs(a), cmplx.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Chop converts values within eps of zero to exact zero.
func Chop(x, eps float64) float64 {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	if x > -eps && x < eps {
		return 0
	}

	return x
}

// ChopComplex chops real and imaginary parts independently.
func ChopComplex(z complex128, eps float64) complex128 {
	return complex(Chop(real(z), eps), Chop(imag(z), eps))
}

// WrapAngle reduces an angle to the interval (-pi, pi].
func WrapAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	}

	if theta <= -math.Pi {
		theta += 2 * math.Pi
	}

	return theta
}

// NextPowerOf2 returns the smallest power of two not below n.
// Returns 1 for n <= 1.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
