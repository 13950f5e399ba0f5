package fejer

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-spectral/internal/polyroot"
	"github.com/cwbudde/algo-spectral/spectral/core"
	"github.com/cwbudde/algo-spectral/spectral/winding"
)

// RootClass locates a root relative to the unit circle.
type RootClass int

const (
	ClassUnknown RootClass = iota
	ClassInside
	ClassOnCircle
	ClassOutside
)

// String returns a short class name.
func (c RootClass) String() string {
	switch c {
	case ClassInside:
		return "inside"
	case ClassOnCircle:
		return "on-circle"
	case ClassOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// RootRecord is one root of the factor polynomial with its multiplicity and
// its location relative to the unit circle. Records are produced once by the
// oracle and never mutated afterwards.
type RootRecord struct {
	Root         complex128
	Multiplicity int
	Class        RootClass
}

// Oracle enumerates the root multiset of a polynomial given by ascending
// coefficients. Multiplicities must sum to the degree; Class may be left
// ClassUnknown, Factorize classifies with its configured tolerance.
type Oracle interface {
	Roots(coeffs []complex128) ([]RootRecord, error)
}

// DefaultOracle enumerates roots with the Durand–Kerner iteration and
// clusters coincident iterates into multiplicities.
type DefaultOracle struct {
	// ClusterTol merges iterates within this relative distance into one
	// multiple root. Non-positive values select a default suited to the
	// iteration's accuracy on multiple roots.
	ClusterTol float64
}

// Roots implements Oracle.
func (o DefaultOracle) Roots(coeffs []complex128) ([]RootRecord, error) {
	tol := o.ClusterTol
	if tol <= 0 {
		tol = 1e-6
	}

	clusters, err := polyroot.Roots(coeffs, tol)
	if err != nil {
		return nil, fmt.Errorf("fejer: root enumeration failed: %w", err)
	}

	out := make([]RootRecord, len(clusters))
	for i, c := range clusters {
		out[i] = RootRecord{Root: c.Root, Multiplicity: c.Multiplicity}
	}

	return out, nil
}

// CertifiedOracle wraps a base oracle and certifies its output against the
// argument principle: the cumulative multiplicity below each root shell must
// match the winding number at a radius between shells, at a discretization
// at or above the computed threshold. Records are polished by a
// multiplicity-aware Newton iteration before certification. Certification
// failure on a structurally sound multiset surfaces as ErrNotConverged when
// the budget runs out.
type CertifiedOracle struct {
	// Base supplies the approximate multiset; nil selects DefaultOracle{}.
	Base Oracle
	// Refine bounds the certification and polish budgets.
	Refine []core.RefineOption
}

// Roots implements Oracle.
func (o CertifiedOracle) Roots(coeffs []complex128) ([]RootRecord, error) {
	base := o.Base
	if base == nil {
		base = DefaultOracle{}
	}

	records, err := base.Roots(coeffs)
	if err != nil {
		return nil, err
	}

	records = coalesce(coeffs, records)

	polished, err := polishRecords(coeffs, records)
	if err != nil {
		return nil, err
	}

	cfg := core.ApplyRefineOptions(o.Refine...)

	if err := certifyShells(coeffs, polished, cfg); err != nil {
		return nil, err
	}

	return polished, nil
}

// polishRecords refines every record with the multiplicity-aware Newton
// iteration z -= m·Q/Q'. Records whose residual already sits at the
// evaluation noise floor are kept where they are.
func polishRecords(coeffs []complex128, records []RootRecord) ([]RootRecord, error) {
	out := make([]RootRecord, len(records))
	copy(out, records)

	for i := range out {
		root, ok := settleRoot(coeffs, out[i].Root, out[i].Multiplicity)
		if !ok {
			return nil, fmt.Errorf("%w: newton polish at %v", ErrNotConverged, out[i].Root)
		}

		out[i].Root = root
	}

	return out, nil
}

const (
	// fragmentNoise is the coefficient-level perturbation assumed when
	// bounding how far iterates of a multiple root can stray from it.
	fragmentNoise = 1e-14

	// fragmentSpan widens the scatter bound to absorb the iteration's own
	// stopping slack.
	fragmentSpan = 20.0
)

// fragmentRadius bounds the scatter of iterates around a root of
// multiplicity m: a coefficient perturbation of size fragmentNoise moves the
// root by its m-th power root.
func fragmentRadius(m int) float64 {
	if m < 1 {
		m = 1
	}

	return fragmentSpan * math.Pow(fragmentNoise, 1/float64(m))
}

// coalesce merges root records that are fragments of one multiple root. The
// iteration resolves a multiplicity-m root only to about noise^(1/m), which
// for m >= 3 exceeds the clustering tolerance, so the root arrives split
// into fragments of the wrong multiplicities. A candidate group merges only
// when the residual at its multiplicity-weighted center reaches the
// evaluation noise floor and every fragment sits within the scatter bound
// for the combined multiplicity; groups mixing genuinely distinct roots fail
// both tests and are split back apart. Total multiplicity is preserved.
func coalesce(coeffs []complex128, records []RootRecord) []RootRecord {
	if len(records) < 2 {
		return records
	}

	degree := 0
	for _, rec := range records {
		degree += rec.Multiplicity
	}

	out := make([]RootRecord, 0, len(records))
	for _, group := range groupByDistance(records, fragmentRadius(degree)) {
		out = append(out, resolveGroup(coeffs, group)...)
	}

	return out
}

// groupByDistance partitions records into transitive closures of the
// "within radius" relation.
func groupByDistance(records []RootRecord, radius float64) [][]RootRecord {
	assigned := make([]bool, len(records))

	var groups [][]RootRecord

	for i := range records {
		if assigned[i] {
			continue
		}

		group := []RootRecord{records[i]}
		assigned[i] = true

		for grew := true; grew; {
			grew = false

			for j := range records {
				if assigned[j] {
					continue
				}

				for _, member := range group {
					if cmplx.Abs(records[j].Root-member.Root) <= radius {
						group = append(group, records[j])
						assigned[j] = true
						grew = true

						break
					}
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// resolveGroup merges a candidate group into one record when it is
// consistent with a single multiple root, otherwise splits it at the widest
// internal gap and recurses on the halves.
func resolveGroup(coeffs []complex128, group []RootRecord) []RootRecord {
	if len(group) < 2 {
		return group
	}

	m := 0

	var center complex128

	for _, rec := range group {
		m += rec.Multiplicity
		center += rec.Root * complex(float64(rec.Multiplicity), 0)
	}

	center /= complex(float64(m), 0)

	if z, ok := settleRoot(coeffs, center, m); ok && withinFragmentRadius(group, z, m) {
		return []RootRecord{{Root: z, Multiplicity: m}}
	}

	a, b := splitByWidestPair(group)
	if len(a) == 0 || len(b) == 0 {
		return group
	}

	return append(resolveGroup(coeffs, a), resolveGroup(coeffs, b)...)
}

func withinFragmentRadius(group []RootRecord, z complex128, m int) bool {
	radius := fragmentRadius(m)

	for _, rec := range group {
		if cmplx.Abs(rec.Root-z) > radius {
			return false
		}
	}

	return true
}

// splitByWidestPair partitions a group around its two most distant members.
func splitByWidestPair(group []RootRecord) (a, b []RootRecord) {
	pi, pj, widest := 0, 0, -1.0

	for i := range group {
		for j := i + 1; j < len(group); j++ {
			if d := cmplx.Abs(group[i].Root - group[j].Root); d > widest {
				widest, pi, pj = d, i, j
			}
		}
	}

	if widest <= 0 {
		return nil, nil
	}

	for _, rec := range group {
		if cmplx.Abs(rec.Root-group[pi].Root) <= cmplx.Abs(rec.Root-group[pj].Root) {
			a = append(a, rec)
		} else {
			b = append(b, rec)
		}
	}

	return a, b
}

// settleRoot drives z toward a root of multiplicity m with the modified
// Newton step m·Q/Q' and reports whether the residual reached the
// evaluation noise floor. Starting points already at the floor are returned
// unchanged: pointwise evaluation cannot locate a multiple root more
// precisely, and the fragment centroid is the better estimate there. For
// genuinely distinct roots the overshooting step oscillates instead of
// contracting, so the floor is never reached.
func settleRoot(coeffs []complex128, z complex128, m int) (complex128, bool) {
	if cmplx.Abs(polyroot.EvalAsc(coeffs, z)) <= noiseFloor(coeffs, z) {
		return z, true
	}

	deriv := derivative(coeffs)

	for range 48 {
		f := polyroot.EvalAsc(coeffs, z)
		if cmplx.Abs(f) <= noiseFloor(coeffs, z) {
			return z, true
		}

		d := polyroot.EvalAsc(deriv, z)
		if d == 0 {
			return 0, false
		}

		z -= complex(float64(m), 0) * f / d
	}

	return z, cmplx.Abs(polyroot.EvalAsc(coeffs, z)) <= noiseFloor(coeffs, z)
}

// noiseFloor bounds the rounding error of a Horner evaluation at z, which
// grows with the magnitudes the intermediate sums pass through.
func noiseFloor(coeffs []complex128, z complex128) float64 {
	sum := 1.0
	zp := 1.0
	az := cmplx.Abs(z)

	for _, c := range coeffs {
		sum += cmplx.Abs(c) * zp
		zp *= az
	}

	return 1e-13 * sum
}

// certifyShells checks winding-number counts at radii between distinct root
// moduli against cumulative multiplicities.
func certifyShells(coeffs []complex128, records []RootRecord, cfg core.RefineConfig) error {
	degree := len(trim(coeffs)) - 1
	if degree <= 0 {
		return nil
	}

	bound, err := polyroot.CoefficientBound(coeffs)
	if err != nil {
		return fmt.Errorf("fejer: certification bound: %w", err)
	}

	for _, rec := range records {
		if cmplx.Abs(rec.Root) > bound*(1+1e-9) {
			return fmt.Errorf("%w: root %v outside the Cauchy radius %g",
				ErrInvariantViolation, rec.Root, bound)
		}
	}

	shells := moduliShells(records)
	if len(shells) == 0 {
		return nil
	}

	cumulative := 0

	for i, shell := range shells {
		cumulative += shell.multiplicity

		var r, gap float64

		if i+1 < len(shells) {
			next := shells[i+1].modulus
			r = (shell.modulus + next) / 2
			gap = (next - shell.modulus) / 2
		} else {
			r = shell.modulus + 1
			gap = 1
		}

		n0, err := winding.Threshold(degree, r, gap)
		if err != nil {
			return fmt.Errorf("fejer: certification threshold: %w", err)
		}

		if n0 > cfg.MaxN {
			return fmt.Errorf("%w: certification needs n=%d beyond budget %d", ErrNotConverged, n0, cfg.MaxN)
		}

		count, err := winding.Number(coeffs, r, n0)
		if err != nil {
			return fmt.Errorf("fejer: certification at radius %g: %w", r, err)
		}

		if count != cumulative {
			return fmt.Errorf("%w: winding count %d at radius %g, oracle claims %d",
				ErrInvariantViolation, count, r, cumulative)
		}
	}

	return nil
}

type shell struct {
	modulus      float64
	multiplicity int
}

// moduliShells groups records into shells of equal modulus, merging moduli
// within a small relative tolerance, sorted ascending.
func moduliShells(records []RootRecord) []shell {
	shells := make([]shell, 0, len(records))

	for _, rec := range records {
		m := cmplx.Abs(rec.Root)
		merged := false

		for i := range shells {
			if math.Abs(shells[i].modulus-m) <= 1e-6*(1+m) {
				shells[i].multiplicity += rec.Multiplicity
				merged = true
				break
			}
		}

		if !merged {
			shells = append(shells, shell{modulus: m, multiplicity: rec.Multiplicity})
		}
	}

	sort.Slice(shells, func(i, j int) bool { return shells[i].modulus < shells[j].modulus })

	return shells
}

// derivative returns the ascending coefficients of Q'.
func derivative(coeffs []complex128) []complex128 {
	if len(coeffs) < 2 {
		return []complex128{0}
	}

	out := make([]complex128, len(coeffs)-1)
	for k := 1; k < len(coeffs); k++ {
		out[k-1] = complex(float64(k), 0) * coeffs[k]
	}

	return out
}

func trim(coeffs []complex128) []complex128 {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}

	return coeffs[:n]
}
