// Package dft implements characters of finite cyclic groups and the
// normalized discrete Fourier transform built on them.
//
// The single algebraic fact everything downstream relies on is character
// orthogonality: the average over Z/NZ of χ_k·conj(χ_j) is 1 when k ≡ j
// (mod N) and 0 otherwise. Transform and Inverse are exact inverses of each
// other on finite data; power-of-two sizes route through an FFT plan from
// github.com/MeKo-Christian/algo-fft, all other sizes use direct summation.
//
// The normalization convention is analysis-side: Transform divides by N, so
// transforming the samples of a trigonometric polynomial at N points
// recovers its coefficients directly.
package dft
