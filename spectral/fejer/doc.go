// Package fejer computes explicit Fejér–Riesz factorizations.
//
// Given a trigonometric polynomial R that is real and non-negative on the
// circle, Factorize produces an analytic factor P with frequencies 0..d such
// that |P(θ)|² reproduces R coefficient-wise. The construction runs through
// the roots of the ordinary polynomial Q obtained from R by the substitution
// z = e^{iθ}: non-negativity forces those roots into conjugate-reciprocal
// pairs {α, 1/conj(α)} (the spiral symmetry), with roots on the unit circle
// carrying even multiplicity. One representative per pair, scaled by the
// square root of Q's Mahler measure, assembles the factor.
//
// Root enumeration goes through the Oracle seam. The default oracle runs the
// Durand–Kerner iteration from internal/polyroot; CertifiedOracle wraps any
// oracle and certifies the returned multiset against winding-number counts
// at radii between the root shells, polishing the records with a
// multiplicity-aware Newton iteration beforehand.
package fejer
