package fejer

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
	"github.com/cwbudde/algo-spectral/spectral/trigpoly"
)

func randomAnalytic(rng *rand.Rand, degree int) trigpoly.TrigPoly {
	m := make(map[int]complex128, degree+1)
	for k := 0; k <= degree; k++ {
		m[k] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return trigpoly.New(m)
}

func TestFactorizeTwoPlusCos(t *testing.T) {
	r := trigpoly.New(map[int]complex128{-1: 0.5, 0: 2, 1: 0.5})

	p, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if p.Degree() != 1 {
		t.Fatalf("factor degree=%d want=1", p.Degree())
	}

	support := p.Support()
	if support[0] < 0 {
		t.Fatalf("factor must be analytic (non-negative frequencies): %v", support)
	}

	if !p.NormSq().Equal(r, 1e-8) {
		t.Fatalf("NormSq(p) must reproduce r coefficient-wise")
	}

	for i := range 32 {
		theta := 2 * math.Pi * float64(i) / 32

		got := cmplx.Abs(p.Eval(theta))
		want := 2 + math.Cos(theta)

		if math.Abs(got*got-want) > 1e-8 {
			t.Fatalf("|p|² mismatch at theta=%f: got=%g want=%g", theta, got*got, want)
		}
	}
}

func TestFactorizeNormSqRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for degree := 1; degree <= 4; degree++ {
		for trial := range 5 {
			q := randomAnalytic(rng, degree)
			r := q.NormSq()

			p, err := Factorize(r)
			if err != nil {
				t.Fatalf("degree=%d trial=%d: Factorize error: %v", degree, trial, err)
			}

			if !p.NormSq().Equal(r, 1e-6) {
				t.Fatalf("degree=%d trial=%d: NormSq(p) != r", degree, trial)
			}

			if p.Degree() != r.Degree() {
				t.Fatalf("degree=%d trial=%d: factor degree=%d want=%d",
					degree, trial, p.Degree(), r.Degree())
			}
		}
	}
}

func TestFactorizeOnCircleRoots(t *testing.T) {
	// 2 - 2cosθ = |1 - e^{iθ}|² has a double root of Q on the unit circle.
	r := trigpoly.New(map[int]complex128{-1: -1, 0: 2, 1: -1})

	p, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if !p.NormSq().Equal(r, 1e-5) {
		t.Fatalf("NormSq(p) must reproduce 2-2cosθ")
	}
}

func TestFactorizeOnCircleQuadrupleRoot(t *testing.T) {
	// (2 - 2cosθ)² puts a multiplicity-4 root of Q on the unit circle. The
	// iteration resolves it only to about noise^(1/4), so its fragments
	// straddle the circle and must be rejoined before classification.
	base := trigpoly.New(map[int]complex128{-1: -1, 0: 2, 1: -1})
	r := base.Mul(base)

	p, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if p.Degree() != 2 {
		t.Fatalf("factor degree=%d want=2", p.Degree())
	}

	if support := p.Support(); support[0] < 0 {
		t.Fatalf("factor must be analytic (non-negative frequencies): %v", support)
	}

	if !p.NormSq().Equal(r, 1e-6) {
		t.Fatalf("NormSq(p) must reproduce (2-2cosθ)²")
	}

	pc, err := Factorize(r, WithOracle(CertifiedOracle{}))
	if err != nil {
		t.Fatalf("Factorize with certified oracle error: %v", err)
	}

	if !pc.NormSq().Equal(r, 1e-6) {
		t.Fatalf("certified factor must reproduce (2-2cosθ)²")
	}
}

func TestFactorizeQuadrupleWithSeparatedPair(t *testing.T) {
	// An on-circle quadruple root at e^{0.4i} next to an ordinary
	// inside/outside pair from 2 + cosθ.
	phase := cmplx.Exp(0.4i)
	base := trigpoly.New(map[int]complex128{-1: -phase, 0: 2, 1: -cmplx.Conj(phase)})
	r := base.Mul(base).Mul(trigpoly.New(map[int]complex128{-1: 0.5, 0: 2, 1: 0.5}))

	p, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if p.Degree() != 3 {
		t.Fatalf("factor degree=%d want=3", p.Degree())
	}

	if !p.NormSq().Equal(r, 1e-5) {
		t.Fatalf("NormSq(p) must reproduce the input")
	}
}

func TestCoalesceRejoinsFragments(t *testing.T) {
	coeffs := testutil.FromRoots(1, 1, 1, 1)

	delta := 3e-6
	records := []RootRecord{
		{Root: complex(1+delta, 0), Multiplicity: 1},
		{Root: complex(1, delta), Multiplicity: 1},
		{Root: complex(1-delta, 0), Multiplicity: 1},
		{Root: complex(1, -delta), Multiplicity: 1},
	}

	out := coalesce(coeffs, records)
	if len(out) != 1 {
		t.Fatalf("coalesce returned %d records, want 1", len(out))
	}

	if out[0].Multiplicity != 4 {
		t.Fatalf("merged multiplicity=%d want=4", out[0].Multiplicity)
	}

	if cmplx.Abs(out[0].Root-1) > 1e-9 {
		t.Fatalf("merged root %v strays from 1", out[0].Root)
	}
}

func TestCoalesceKeepsDistinctRoots(t *testing.T) {
	// Two genuinely distinct simple roots close enough to be considered for
	// merging must survive as separate records.
	coeffs := testutil.FromRoots(0.5, 0.503, -2, 3i)

	records := []RootRecord{
		{Root: 0.5, Multiplicity: 1},
		{Root: 0.503, Multiplicity: 1},
		{Root: -2, Multiplicity: 1},
		{Root: 3i, Multiplicity: 1},
	}

	out := coalesce(coeffs, records)
	if len(out) != 4 {
		t.Fatalf("coalesce returned %d records, want 4", len(out))
	}

	total := 0
	for _, rec := range out {
		total += rec.Multiplicity
	}

	if total != 4 {
		t.Fatalf("total multiplicity=%d want=4", total)
	}
}

func TestFactorizeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	q := randomAnalytic(rng, 3)
	r := q.NormSq()

	p1, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	p2, err := Factorize(r)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if !p1.Equal(p2, 0) {
		t.Fatalf("Factorize must be deterministic on identical input")
	}

	// A unit phase on q leaves NormSq unchanged, so the canonical factor
	// must agree as well.
	r2 := q.Scale(cmplx.Exp(0.7i)).NormSq()

	p3, err := Factorize(r2)
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if !p1.Equal(p3, 1e-6) {
		t.Fatalf("factor must be invariant under input phase")
	}
}

func TestFactorizeRejectsNegative(t *testing.T) {
	// cosθ is real but negative on half the circle.
	r := trigpoly.New(map[int]complex128{-1: 0.5, 1: 0.5})

	if _, err := Factorize(r); !errors.Is(err, ErrNotNonNegative) {
		t.Fatalf("expected ErrNotNonNegative, got %v", err)
	}
}

func TestFactorizeRejectsNonReal(t *testing.T) {
	r := trigpoly.Harmonic(1, 1)

	if _, err := Factorize(r); !errors.Is(err, ErrNotNonNegative) {
		t.Fatalf("expected ErrNotNonNegative for non-real input, got %v", err)
	}
}

func TestFactorizeZeroAndConstant(t *testing.T) {
	p, err := Factorize(trigpoly.Zero())
	if err != nil || !p.IsZero() {
		t.Fatalf("Factorize(0) must be 0: %v %v", p, err)
	}

	p, err = Factorize(trigpoly.Const(4))
	if err != nil {
		t.Fatalf("Factorize error: %v", err)
	}

	if cmplx.Abs(p.Coeff(0)-2) > 1e-12 || len(p.Support()) != 1 {
		t.Fatalf("Factorize(4) must be the constant 2: %v", p.Support())
	}

	if _, err := Factorize(trigpoly.Const(-1)); !errors.Is(err, ErrNotNonNegative) {
		t.Fatalf("expected ErrNotNonNegative for negative constant, got %v", err)
	}
}

func TestFactorizeCertifiedOracle(t *testing.T) {
	// Roots at 0.5 and 0.3i give well-separated shells for the
	// winding-number certification.
	q := trigpoly.FromSlice(0, []complex128{0.15i, -0.5 - 0.3i, 1})
	r := q.NormSq()

	p, err := Factorize(r, WithOracle(CertifiedOracle{}))
	if err != nil {
		t.Fatalf("Factorize with certified oracle: %v", err)
	}

	if !p.NormSq().Equal(r, 1e-6) {
		t.Fatalf("certified factorization must reproduce r")
	}
}

type fakeOracle struct {
	records []RootRecord
}

func (f fakeOracle) Roots([]complex128) ([]RootRecord, error) {
	return f.records, nil
}

func TestFactorizeOracleInvariants(t *testing.T) {
	r := trigpoly.New(map[int]complex128{-1: 0.5, 0: 2, 1: 0.5})

	// Wrong total multiplicity.
	_, err := Factorize(r, WithOracle(fakeOracle{records: []RootRecord{
		{Root: 0.5, Multiplicity: 1},
	}}))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation for bad multiplicity sum, got %v", err)
	}

	// Correct total but no reciprocal partner.
	_, err = Factorize(r, WithOracle(fakeOracle{records: []RootRecord{
		{Root: 0.5, Multiplicity: 2},
	}}))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation for unpaired roots, got %v", err)
	}
}

func TestVerifyNonNegative(t *testing.T) {
	good := trigpoly.New(map[int]complex128{-1: 0.5, 0: 2, 1: 0.5})
	if err := VerifyNonNegative(good, 0, 0); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}

	bad := trigpoly.New(map[int]complex128{-1: 0.5, 0: -2, 1: 0.5})
	if err := VerifyNonNegative(bad, 0, 0); !errors.Is(err, ErrNotNonNegative) {
		t.Fatalf("expected ErrNotNonNegative, got %v", err)
	}
}

func TestMahlerMeasure(t *testing.T) {
	records := []RootRecord{
		{Root: 0.5, Multiplicity: 1},
		{Root: 2, Multiplicity: 2},
		{Root: complex(0, 1), Multiplicity: 3},
	}

	got := MahlerMeasure(0.5, records)
	want := 0.5 * 4.0

	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("MahlerMeasure=%g want=%g", got, want)
	}
}

func TestClassify(t *testing.T) {
	records := Classify([]RootRecord{
		{Root: 0.5, Multiplicity: 1},
		{Root: complex(0, 1), Multiplicity: 2},
		{Root: 3, Multiplicity: 1},
	}, 1e-9)

	if records[0].Class != ClassInside || records[1].Class != ClassOnCircle || records[2].Class != ClassOutside {
		t.Fatalf("unexpected classes: %v %v %v", records[0].Class, records[1].Class, records[2].Class)
	}
}

func TestNewPairingOddOnCircle(t *testing.T) {
	records := []RootRecord{
		{Root: 1, Multiplicity: 3, Class: ClassOnCircle},
	}

	if _, err := NewPairing(records, 0); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation for odd on-circle multiplicity, got %v", err)
	}
}

func TestNewPairingMultiplicityMismatch(t *testing.T) {
	records := []RootRecord{
		{Root: 0.5, Multiplicity: 2, Class: ClassInside},
		{Root: 2, Multiplicity: 1, Class: ClassOutside},
		{Root: 2, Multiplicity: 1, Class: ClassOutside},
	}

	if _, err := NewPairing(records, 0); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation for multiplicity mismatch, got %v", err)
	}
}

func TestPairingRepresentatives(t *testing.T) {
	records := []RootRecord{
		{Root: 0.5, Multiplicity: 1, Class: ClassInside},
		{Root: 2, Multiplicity: 1, Class: ClassOutside},
		{Root: complex(0, 1), Multiplicity: 2, Class: ClassOnCircle},
	}

	pairing, err := NewPairing(records, 0)
	if err != nil {
		t.Fatalf("NewPairing error: %v", err)
	}

	reps := pairing.Representatives()
	if len(reps) != 2 {
		t.Fatalf("expected 2 representatives, got %d", len(reps))
	}

	// Smaller modulus first.
	if cmplx.Abs(reps[0].Root-0.5) > 1e-12 {
		t.Fatalf("canonical order must start at the smallest modulus: %v", reps[0].Root)
	}

	if reps[1].Multiplicity != 1 {
		t.Fatalf("on-circle representative must carry half multiplicity, got %d", reps[1].Multiplicity)
	}

	if pairing.Degree() != 2 {
		t.Fatalf("pairing degree=%d want=2", pairing.Degree())
	}
}
