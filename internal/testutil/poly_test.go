package testutil

import (
	"testing"
)

func TestFromRoots(t *testing.T) {
	// (z-1)(z+1) = z² - 1.
	got := FromRoots(1, -1)
	RequireComplexSliceNearlyEqual(t, got, []complex128{-1, 0, 1}, 1e-15)

	// (z-i)(z+i) = z² + 1.
	got = FromRoots(1i, -1i)
	RequireComplexSliceNearlyEqual(t, got, []complex128{1, 0, 1}, 1e-15)

	if got := FromRoots(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("empty root set: got %v, want [1]", got)
	}
}
