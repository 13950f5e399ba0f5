package fejer

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/spectral/core"
	"github.com/cwbudde/algo-spectral/spectral/trigpoly"
)

type config struct {
	oracle   Oracle
	classTol float64
	matchTol float64
	eps      float64
	gridSize int
}

// Option configures Factorize.
type Option func(*config)

func defaultConfig() config {
	return config{
		oracle:   DefaultOracle{},
		classTol: 1e-6,
		matchTol: 1e-5,
		eps:      1e-6,
	}
}

// WithOracle selects the root oracle.
func WithOracle(o Oracle) Option {
	return func(c *config) {
		if o != nil {
			c.oracle = o
		}
	}
}

// WithClassTolerance sets the on-circle classification tolerance.
func WithClassTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.classTol = tol
		}
	}
}

// WithMatchTolerance sets the conjugate-reciprocal matching tolerance.
func WithMatchTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.matchTol = tol
		}
	}
}

// WithTolerance sets the verification and postcondition tolerance.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.eps = eps
		}
	}
}

// WithGridSize sets the non-negativity sampling grid size (0 selects a grid
// from the degree).
func WithGridSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.gridSize = n
		}
	}
}

// Classify locates each record's root relative to the unit circle within
// tol and returns classified copies.
func Classify(records []RootRecord, tol float64) []RootRecord {
	if tol <= 0 {
		tol = 1e-6
	}

	out := make([]RootRecord, len(records))

	for i, rec := range records {
		mod := cmplx.Abs(rec.Root)

		switch {
		case math.Abs(mod-1) <= tol:
			rec.Class = ClassOnCircle
		case mod < 1:
			rec.Class = ClassInside
		default:
			rec.Class = ClassOutside
		}

		out[i] = rec
	}

	return out
}

// VerifyNonNegative checks that r is real on the circle and non-negative on
// a sampling grid of the given size (0 selects a grid from the degree).
// Violations return ErrNotNonNegative with the offending angle.
func VerifyNonNegative(r trigpoly.TrigPoly, gridSize int, eps float64) error {
	if eps <= 0 {
		eps = 1e-9
	}

	if !r.IsRealOnCircle(eps) {
		return fmt.Errorf("%w: not real-valued on the circle", ErrNotNonNegative)
	}

	if gridSize <= 0 {
		gridSize = 8*r.Degree() + 17
	}

	scale := 1.0
	for _, k := range r.Support() {
		scale += cmplx.Abs(r.Coeff(k))
	}

	for i := range gridSize {
		theta := 2 * math.Pi * float64(i) / float64(gridSize)

		v, err := r.Real(theta, eps)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotNonNegative, err)
		}

		if v < -eps*scale {
			return fmt.Errorf("%w: value %g at theta=%g", ErrNotNonNegative, v, theta)
		}
	}

	return nil
}

// MahlerMeasure returns |leading| times the product of max(1, |root|) over
// the multiset, multiplicity included. It equals the squared leading
// coefficient modulus of the analytic factor.
func MahlerMeasure(leading complex128, records []RootRecord) float64 {
	m := cmplx.Abs(leading)
	for _, rec := range records {
		if mod := cmplx.Abs(rec.Root); mod > 1 {
			m *= math.Pow(mod, float64(rec.Multiplicity))
		}
	}

	return m
}

// Factorize computes the Fejér–Riesz factorization of r: an analytic factor
// p with frequencies 0..d whose squared modulus NormSq(p) reproduces r
// coefficient-wise. r must be real and non-negative on the circle;
// violations fail with ErrNotNonNegative. A root multiset that breaks the
// spiral symmetry fails with ErrInvariantViolation, and oracle refinement
// budgets surface as ErrNotConverged.
func Factorize(r trigpoly.TrigPoly, opts ...Option) (trigpoly.TrigPoly, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if r.IsZero() {
		return trigpoly.Zero(), nil
	}

	// Shed float residue so the support symmetry check below sees the
	// polynomial's true shape.
	scale := maxCoeff(r)
	r = r.Chop(core.DefaultEpsilon * scale)

	if r.IsZero() {
		return trigpoly.Zero(), nil
	}

	if err := VerifyNonNegative(r, cfg.gridSize, cfg.eps); err != nil {
		return trigpoly.TrigPoly{}, err
	}

	coeffs, lo := r.ToPoly()
	degree := len(coeffs) - 1

	if degree%2 != 0 || lo != -degree/2 {
		return trigpoly.TrigPoly{}, fmt.Errorf("%w: support is not symmetric", ErrNotNonNegative)
	}

	half := degree / 2

	records, err := cfg.oracle.Roots(coeffs)
	if err != nil {
		return trigpoly.TrigPoly{}, err
	}

	total := 0
	for _, rec := range records {
		total += rec.Multiplicity
	}

	if total != degree {
		return trigpoly.TrigPoly{}, fmt.Errorf("%w: oracle multiplicities sum to %d, degree is %d",
			ErrInvariantViolation, total, degree)
	}

	// Rejoin multiple roots the iteration scattered into fragments before
	// reading circle positions off the records.
	records = coalesce(coeffs, records)

	pairing, err := NewPairing(Classify(records, cfg.classTol), cfg.matchTol)
	if err != nil {
		return trigpoly.TrigPoly{}, err
	}

	if pairing.Degree() != half {
		return trigpoly.TrigPoly{}, fmt.Errorf("%w: pairing degree %d, expected %d",
			ErrInvariantViolation, pairing.Degree(), half)
	}

	factor := assemble(coeffs[degree], pairing)

	// Postcondition: recompute |p|² and compare coefficient-wise.
	if !factor.NormSq().Equal(r, cfg.eps*scale) {
		return trigpoly.TrigPoly{}, fmt.Errorf("%w: reassembled polynomial does not match input",
			ErrInvariantViolation)
	}

	return factor, nil
}

// assemble expands the representative roots into the analytic factor and
// normalizes its leading coefficient through the Mahler measure of Q, which
// makes NormSq reproduce the source coefficients exactly rather than up to
// scale.
func assemble(leading complex128, pairing *Pairing) trigpoly.TrigPoly {
	reps := pairing.Representatives()

	all := make([]RootRecord, 0, 2*len(reps))
	for _, pair := range pairing.Pairs() {
		all = append(all,
			RootRecord{Root: pair.Inside.Root, Multiplicity: pair.Inside.Multiplicity},
			RootRecord{Root: pair.Outside.Root, Multiplicity: pair.Outside.Multiplicity})
	}

	gain := complex(math.Sqrt(MahlerMeasure(leading, all)), 0)

	coeffs := []complex128{1}
	for _, rec := range reps {
		for range rec.Multiplicity {
			next := make([]complex128, len(coeffs)+1)
			for i, c := range coeffs {
				next[i] -= rec.Root * c
				next[i+1] += c
			}

			coeffs = next
		}
	}

	for i := range coeffs {
		coeffs[i] *= gain
	}

	return trigpoly.FromSlice(0, coeffs)
}

func maxCoeff(r trigpoly.TrigPoly) float64 {
	m := 0.0
	for _, k := range r.Support() {
		if v := cmplx.Abs(r.Coeff(k)); v > m {
			m = v
		}
	}

	if m == 0 {
		return 1
	}

	return m
}
