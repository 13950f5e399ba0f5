// Package winding counts polynomial roots inside a circle by discretized
// winding numbers (the argument principle).
//
// Number samples Q(r·e^{iθ}) at n equally spaced angles, accumulates the
// wrapped argument increments, and returns the net argument change divided
// by 2π. The value is only meaningful when every consecutive increment is
// certified below π; when that certificate fails the routine returns
// ErrUnresolved instead of a number, and CountInside doubles n until the
// certificate holds or the refinement budget runs out.
//
// Threshold computes an a-priori discretization count N₀ from the degree,
// the radius and the minimal gap between any root modulus and the radius:
// for n ≥ N₀ the certificate is guaranteed and the result equals the number
// of roots of modulus < r, multiplicity included. A root exactly on the
// sampling circle is a precondition violation (ErrRootOnBoundary), never
// silently absorbed.
package winding
