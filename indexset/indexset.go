package indexset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/combin"
)

// ErrInvalidTruncation indicates a bad index-set request: dimension < 1,
// order < 0, or anisotropic weights that are missing, non-positive, or of the
// wrong length.
var ErrInvalidTruncation = errors.New("indexset: invalid truncation request")

// Index is an ordered tuple of non-negative per-dimension polynomial degrees.
type Index []int

// Total returns the sum of the degrees.
func (ix Index) Total() int {
	var s int
	for _, d := range ix {
		s += d
	}

	return s
}

// IsZero reports whether every degree is zero (the constant basis function).
func (ix Index) IsZero() bool {
	for _, d := range ix {
		if d != 0 {
			return false
		}
	}

	return true
}

// ActiveDims returns the dimensions with non-zero degree.
func (ix Index) ActiveDims() []int {
	var dims []int
	for d, deg := range ix {
		if deg != 0 {
			dims = append(dims, d)
		}
	}

	return dims
}

// String renders the tuple as "(a,b,...)".
func (ix Index) String() string {
	parts := make([]string, len(ix))
	for i, d := range ix {
		parts[i] = strconv.Itoa(d)
	}

	return "(" + strings.Join(parts, ",") + ")"
}

// PolicyKind tags the truncation rule of a Policy.
type PolicyKind int

const (
	// Tensor admits indices with every coordinate ≤ order.
	Tensor PolicyKind = iota
	// TotalOrder admits indices whose coordinate sum is ≤ order.
	TotalOrder
	// HyperbolicCross admits indices with ∏(coordinate+1) ≤ order+1.
	HyperbolicCross
	// Anisotropic admits indices with Σ weights[d]·coordinate[d] ≤ order.
	Anisotropic
)

// String returns the lowercase policy name.
func (k PolicyKind) String() string {
	switch k {
	case Tensor:
		return "tensor"
	case TotalOrder:
		return "total-order"
	case HyperbolicCross:
		return "hyperbolic-cross"
	case Anisotropic:
		return "anisotropic"
	default:
		return fmt.Sprintf("policy(%d)", int(k))
	}
}

// Policy is a tagged truncation rule: a kind plus, for Anisotropic, the
// per-dimension importance weights. Construct with the XxxPolicy helpers.
type Policy struct {
	kind    PolicyKind
	weights []float64
}

// TensorPolicy admits the full (p+1)^d tensor grid of degrees.
func TensorPolicy() Policy { return Policy{kind: Tensor} }

// TotalOrderPolicy admits all indices of total degree ≤ p.
func TotalOrderPolicy() Policy { return Policy{kind: TotalOrder} }

// HyperbolicCrossPolicy admits indices with ∏(α_d+1) ≤ p+1.
func HyperbolicCrossPolicy() Policy { return Policy{kind: HyperbolicCross} }

// AnisotropicPolicy admits indices with Σ w_d·α_d ≤ p. Weights must be
// strictly positive and match the build dimension.
func AnisotropicPolicy(weights []float64) Policy {
	w := make([]float64, len(weights))
	copy(w, weights)

	return Policy{kind: Anisotropic, weights: w}
}

// Kind reports the policy tag.
func (p Policy) Kind() PolicyKind { return p.kind }

// admits is the pure inclusion predicate over a candidate index.
func (p Policy) admits(ix Index, order int) bool {
	switch p.kind {
	case Tensor:
		for _, deg := range ix {
			if deg > order {
				return false
			}
		}

		return true
	case TotalOrder:
		return ix.Total() <= order
	case HyperbolicCross:
		prod := 1
		for _, deg := range ix {
			prod *= deg + 1
			if prod > order+1 {
				return false
			}
		}

		return true
	case Anisotropic:
		var s float64
		for d, deg := range ix {
			s += p.weights[d] * float64(deg)
		}

		return s <= float64(order)+1e-12
	default:
		return false
	}
}

// capFor bounds the per-dimension degree the enumerator needs to visit.
func (p Policy) capFor(dim, order int) int {
	if p.kind == Anisotropic {
		return int(math.Floor(float64(order)/p.weights[dim] + 1e-12))
	}

	return order
}

// validate rejects malformed build requests with ErrInvalidTruncation.
func (p Policy) validate(dim, order int) error {
	if dim < 1 {
		return fmt.Errorf("dimension %d: %w", dim, ErrInvalidTruncation)
	}
	if order < 0 {
		return fmt.Errorf("order %d: %w", order, ErrInvalidTruncation)
	}
	if p.kind == Anisotropic {
		if len(p.weights) != dim {
			return fmt.Errorf("anisotropic weights length %d for dimension %d: %w", len(p.weights), dim, ErrInvalidTruncation)
		}
		for d, w := range p.weights {
			if !(w > 0) {
				return fmt.Errorf("anisotropic weight[%d] = %g must be positive: %w", d, w, ErrInvalidTruncation)
			}
		}
	}

	return nil
}

// Set is an immutable, canonically ordered collection of multi-indices.
type Set struct {
	dim, order int
	policy     Policy
	elems      []Index
	pos        map[string]int
}

// Build enumerates all indices of the given dimension admitted by the policy
// at the given order, in graded-lexicographic order.
func Build(dim, order int, policy Policy) (*Set, error) {
	if err := policy.validate(dim, order); err != nil {
		return nil, err
	}

	var elems []Index
	switch policy.kind {
	case TotalOrder:
		elems = make([]Index, 0, combin.Binomial(order+dim, dim))
	case Tensor:
		size := 1
		for d := 0; d < dim && size < 1<<20; d++ {
			size *= order + 1
		}
		elems = make([]Index, 0, size)
	}
	candidate := make(Index, dim)
	var walk func(d int)
	walk = func(d int) {
		if d == dim {
			if policy.admits(candidate, order) {
				elems = append(elems, append(Index(nil), candidate...))
			}

			return
		}
		limit := policy.capFor(d, order)
		for deg := 0; deg <= limit; deg++ {
			candidate[d] = deg
			walk(d + 1)
		}
		candidate[d] = 0
	}
	walk(0)

	sort.SliceStable(elems, func(i, j int) bool { return gradedLess(elems[i], elems[j]) })

	pos := make(map[string]int, len(elems))
	for i, ix := range elems {
		pos[ix.String()] = i
	}

	return &Set{dim: dim, order: order, policy: policy, elems: elems, pos: pos}, nil
}

// gradedLess orders by total degree first, then lexicographically.
func gradedLess(a, b Index) bool {
	ta, tb := a.Total(), b.Total()
	if ta != tb {
		return ta < tb
	}
	for d := range a {
		if a[d] != b[d] {
			return a[d] < b[d]
		}
	}

	return false
}

// Len reports the number of indices in the set.
func (s *Set) Len() int { return len(s.elems) }

// Dimension reports the tuple length.
func (s *Set) Dimension() int { return s.dim }

// Order reports the truncation order the set was built with.
func (s *Set) Order() int { return s.order }

// Policy reports the truncation rule the set was built with.
func (s *Set) Policy() Policy { return s.policy }

// At returns a copy of the i-th index in canonical order.
func (s *Set) At(i int) Index {
	return append(Index(nil), s.elems[i]...)
}

// Position returns the canonical position of ix, or false if absent.
func (s *Set) Position(ix Index) (int, bool) {
	i, ok := s.pos[ix.String()]

	return i, ok
}

// MaxDegrees returns, per dimension, the largest degree occurring in the set.
func (s *Set) MaxDegrees() []int {
	maxes := make([]int, s.dim)
	for _, ix := range s.elems {
		for d, deg := range ix {
			if deg > maxes[d] {
				maxes[d] = deg
			}
		}
	}

	return maxes
}
