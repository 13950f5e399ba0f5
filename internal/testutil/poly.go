package testutil

// FromRoots expands the monic polynomial ∏ (z - root) into ascending
// coefficients. With no roots it returns the constant 1.
func FromRoots(roots ...complex128) []complex128 {
	coeffs := []complex128{1}

	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] -= r * c
			next[i+1] += c
		}

		coeffs = next
	}

	return coeffs
}
