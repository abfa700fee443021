package quadrature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrIllConditionedRule indicates the Jacobi eigenproblem produced
	// repeated nodes or a negative weight where strict positivity is a Gauss
	// invariant; both signal corrupted recurrence coefficients upstream.
	ErrIllConditionedRule = errors.New("quadrature: ill-conditioned rule (repeated nodes or negative Gauss weight)")

	// ErrBadRule indicates malformed composition input: no rules, a nil
	// rule, or an empty index set.
	ErrBadRule = errors.New("quadrature: invalid rule request")
)

// Rule is an n-dimensional integration rule: Nodes[i] is the i-th point (a
// tuple of Dimension coordinates) and Weights[i] its weight. Node order is
// semantically meaningful and deterministic: ascending in dimension one,
// lexicographic otherwise.
type Rule struct {
	Nodes     [][]float64
	Weights   []float64
	Dimension int
}

// Len reports the number of integration points.
func (r *Rule) Len() int { return len(r.Weights) }

// Mass returns the sum of the weights, the total measure mass the rule
// represents (1 for probability measures, for sparse rules up to cancellation
// round-off).
func (r *Rule) Mass() float64 { return floats.Sum(r.Weights) }

// Nodes1D returns the flat node coordinates of a one-dimensional rule.
// It panics on multidimensional rules (programmer error).
func (r *Rule) Nodes1D() []float64 {
	if r.Dimension != 1 {
		panic(fmt.Sprintf("quadrature: Nodes1D on %d-dimensional rule", r.Dimension))
	}
	out := make([]float64, len(r.Nodes))
	for i, node := range r.Nodes {
		out[i] = node[0]
	}

	return out
}

// HasNegativeWeights reports whether any weight is negative. Expected (and
// legitimate) for sparse Smolyak rules; an invariant violation for pure
// Gauss and tensor rules, which reject it at construction.
func (r *Rule) HasNegativeWeights() bool {
	for _, w := range r.Weights {
		if w < 0 {
			return true
		}
	}

	return false
}

// Integrate applies the rule to f: Σ w_i·f(x_i).
func (r *Rule) Integrate(f func(x []float64) float64) float64 {
	var sum float64
	for i, node := range r.Nodes {
		sum += r.Weights[i] * f(node)
	}

	return sum
}
