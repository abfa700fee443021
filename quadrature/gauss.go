package quadrature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

// nodeSeparationTol is the relative spacing below which two eigenvalues are
// treated as a repeated node. Gauss nodes are provably distinct for positive
// b_k, so a collision indicates broken coefficients.
const nodeSeparationTol = 1e-12

// Gauss builds the n-point Gauss rule for the monic recurrence coefficients
// via Golub–Welsch. Nodes live on the coefficients' own domain (canonical for
// closed-form families); they come back sorted ascending with strictly
// positive weights summing to the coefficient mass.
func Gauss(coeffs recurrence.Coefficients, n int) (*Rule, error) {
	if n < 1 || coeffs.Order() < n {
		return nil, fmt.Errorf("need %d coefficient pairs, have %d: %w", n, coeffs.Order(), ErrBadRule)
	}
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}

	// Symmetric tridiagonal Jacobi matrix: diagonal a_k, off-diagonal √b_k.
	jacobi := mat.NewSymDense(n, nil)
	for k := 0; k < n; k++ {
		jacobi.SetSym(k, k, coeffs.A[k])
		if k > 0 {
			jacobi.SetSym(k-1, k, math.Sqrt(coeffs.B[k]))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(jacobi, true); !ok {
		return nil, fmt.Errorf("eigendecomposition failed at n=%d: %w", n, ErrIllConditionedRule)
	}
	nodes := eig.Values(nil) // ascending
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	rule := &Rule{
		Nodes:     make([][]float64, n),
		Weights:   make([]float64, n),
		Dimension: 1,
	}
	mass := coeffs.Mass()
	scale := math.Abs(nodes[n-1]) + math.Abs(nodes[0]) + 1
	for i := 0; i < n; i++ {
		if i > 0 && nodes[i]-nodes[i-1] <= nodeSeparationTol*scale {
			return nil, fmt.Errorf("repeated node %g at position %d: %w", nodes[i], i, ErrIllConditionedRule)
		}
		first := vecs.At(0, i)
		w := mass * first * first
		if !(w > 0) {
			return nil, fmt.Errorf("non-positive weight %g at node %g: %w", w, nodes[i], ErrIllConditionedRule)
		}
		rule.Nodes[i] = []float64{nodes[i]}
		rule.Weights[i] = w
	}

	return rule, nil
}

// GaussFor builds the n-point Gauss rule for a measure, generating (and
// caching) recurrence coefficients and mapping canonical nodes back onto the
// measure's physical support.
func GaussFor(m measure.Measure, cache *recurrence.Cache, n int, opts recurrence.Options) (*Rule, error) {
	coeffs, err := cache.Generate(m, n, opts)
	if err != nil {
		return nil, err
	}
	rule, err := Gauss(coeffs, n)
	if err != nil {
		return nil, err
	}
	for i := range rule.Nodes {
		rule.Nodes[i][0] = m.FromCanonical(rule.Nodes[i][0])
	}

	return rule, nil
}
