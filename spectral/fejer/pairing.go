package fejer

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Pair is one conjugate-reciprocal root pair {α, 1/conj(α)}. For a root on
// the unit circle both members coincide and carry half the original
// multiplicity each.
type Pair struct {
	Inside   RootRecord
	Outside  RootRecord
	OnCircle bool
}

// Pairing is a perfect matching of a root multiset into conjugate-reciprocal
// pairs, as forced by non-negativity of the source polynomial on the circle.
type Pairing struct {
	pairs []Pair
}

// NewPairing matches classified root records into conjugate-reciprocal
// pairs. Roots on the unit circle must carry even multiplicity, split evenly
// between the matched halves; every inside root must find its reciprocal
// partner outside with equal multiplicity. Any defect breaks a structural
// guarantee of non-negative polynomials and yields ErrInvariantViolation.
func NewPairing(records []RootRecord, matchTol float64) (*Pairing, error) {
	if matchTol <= 0 {
		matchTol = 1e-5
	}

	var inside, outside []RootRecord
	pairs := make([]Pair, 0, len(records))

	for _, rec := range records {
		switch rec.Class {
		case ClassOnCircle:
			if rec.Multiplicity%2 != 0 {
				return nil, fmt.Errorf("%w: odd multiplicity %d for on-circle root %v",
					ErrInvariantViolation, rec.Multiplicity, rec.Root)
			}

			half := RootRecord{Root: rec.Root, Multiplicity: rec.Multiplicity / 2, Class: ClassOnCircle}
			pairs = append(pairs, Pair{Inside: half, Outside: half, OnCircle: true})
		case ClassInside:
			inside = append(inside, rec)
		case ClassOutside:
			outside = append(outside, rec)
		default:
			return nil, fmt.Errorf("%w: unclassified root %v", ErrInvariantViolation, rec.Root)
		}
	}

	used := make([]bool, len(outside))

	for _, in := range inside {
		target := 1 / cmplx.Conj(in.Root)
		best := -1
		bestDist := math.MaxFloat64

		for j, out := range outside {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(out.Root - target); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || bestDist > matchTol*math.Max(1, cmplx.Abs(target)) {
			return nil, fmt.Errorf("%w: no reciprocal partner for root %v", ErrInvariantViolation, in.Root)
		}

		if outside[best].Multiplicity != in.Multiplicity {
			return nil, fmt.Errorf("%w: multiplicity mismatch %d vs %d for pair {%v, %v}",
				ErrInvariantViolation, in.Multiplicity, outside[best].Multiplicity, in.Root, outside[best].Root)
		}

		used[best] = true
		pairs = append(pairs, Pair{Inside: in, Outside: outside[best]})
	}

	for j, u := range used {
		if !u {
			return nil, fmt.Errorf("%w: unmatched outside root %v", ErrInvariantViolation, outside[j].Root)
		}
	}

	sortPairs(pairs)

	return &Pairing{pairs: pairs}, nil
}

// Pairs returns the matched pairs, ordered canonically.
func (p *Pairing) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)

	return out
}

// Representatives returns the chosen member of each pair: the smaller
// modulus, with ties broken by smaller principal argument. On-circle pairs
// contribute their root at half the original multiplicity. The returned set
// is the root multiset of the analytic factor.
func (p *Pairing) Representatives() []RootRecord {
	out := make([]RootRecord, 0, len(p.pairs))
	for _, pair := range p.pairs {
		if pair.Inside.Multiplicity > 0 {
			out = append(out, pair.Inside)
		}
	}

	return out
}

// Degree returns the degree of the analytic factor the pairing induces.
func (p *Pairing) Degree() int {
	d := 0
	for _, pair := range p.pairs {
		d += pair.Inside.Multiplicity
	}

	return d
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		mi, mj := cmplx.Abs(pairs[i].Inside.Root), cmplx.Abs(pairs[j].Inside.Root)
		if math.Abs(mi-mj) > 1e-12 {
			return mi < mj
		}

		return cmplx.Phase(pairs[i].Inside.Root) < cmplx.Phase(pairs[j].Inside.Root)
	})
}
