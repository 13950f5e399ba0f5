// Package core provides shared numeric helpers and configuration types for
// the spectral packages.
//
// The helpers here deal with tolerance-based comparison of real and complex
// values and with the refinement budget shared by the iterative engines
// (winding-number certification, factorization root refinement, Bochner
// sampling). Nothing in this package performs spectral computation itself.
package core
