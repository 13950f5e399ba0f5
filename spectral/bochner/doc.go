// Package bochner makes Bochner's theorem constructive by finite sampling.
//
// A continuous periodic positive-definite function is represented, in the
// limit, by a non-negative summable measure on the integers whose
// exponential sum recovers the function pointwise. The engine samples the
// function on Z/NZ for an increasing ladder of N, verifies positive
// definiteness of each finite sample through its discrete Fourier
// coefficients (finite PD is exactly non-negativity of the real character
// inner products, by orthogonality), and identifies the N-th coefficient
// vector as a Riemann sum of the true Fourier integral. Continuity gives a
// quantitative convergence bound, non-negativity passes to the limit, and
// the result is packaged as an immutable Measure.
//
// The purely finite analogue is also provided: CheckFinitePD and
// FiniteDecomposition realize the exact Bochner representation on a cyclic
// group, with zero-weight characters collapsed out of the decomposition.
package bochner
