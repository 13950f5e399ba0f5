// Package trigpoly implements finite-support trigonometric polynomials on
// the circle group.
//
// A trigonometric polynomial is a finite complex linear combination of the
// exponentials e^{ikθ}, represented as an immutable mapping from integer
// frequencies to complex coefficients. All arithmetic (Add, Mul,
// ConjReflect, NormSq) produces new values; the support of a product is the
// Minkowski sum of the operand supports.
//
// NormSq(p) = p · ConjReflect(p) is real and non-negative everywhere on the
// circle for any p. This is the construction feeding the Fejér–Riesz
// factorization in package fejer, which inverts it.
package trigpoly
