package recurrence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/polychaos/measure"
)

// meshFloor is the minimum automatic Fejér mesh size; meshPerOrder scales the
// mesh with the requested order so the discrete rule resolves degree 2n
// integrands comfortably.
const (
	meshFloor    = 250
	meshPerOrder = 8
)

// stieltjes runs the discretized Stieltjes procedure for an Arbitrary
// measure: discretize the support with a Fejér quadrature mesh weighted by
// the measure density, then advance the monic three-term recurrence from
// discrete inner products, reorthogonalizing against all previous
// polynomials. Bounded, iterative, no recursion.
func stieltjes(m measure.Measure, n int, opts Options) (Coefficients, error) {
	lower, upper := m.Support()
	mesh := opts.MeshSize
	if mesh <= 0 {
		mesh = meshFloor
		if v := meshPerOrder * n; v > mesh {
			mesh = v
		}
	}
	if mesh < 2*n {
		return Coefficients{}, fmt.Errorf("mesh %d cannot resolve order %d: %w", mesh, n, ErrDegenerateMeasure)
	}

	// Discrete measure: Fejér nodes/weights on [-1,1] mapped to the support,
	// scaled by the density. λ_i = w_i · half · W(x_i).
	half := (upper - lower) / 2
	mid := (lower + upper) / 2
	nodes, weights := fejer(mesh)
	x := make([]float64, mesh)
	lam := make([]float64, mesh)
	for i := range nodes {
		x[i] = mid + half*nodes[i]
		lam[i] = weights[i] * half * m.Weight(x[i])
	}

	mass := floats.Sum(lam)
	if !(mass > 0) {
		return Coefficients{}, fmt.Errorf("zero total mass over [%g,%g]: %w", lower, upper, ErrDegenerateMeasure)
	}

	c := Coefficients{A: make([]float64, n), B: make([]float64, n)}
	c.B[0] = mass

	// pi holds the discretized monic polynomials generated so far; nrm their
	// squared discrete norms.
	pi := make([][]float64, 1, n+1)
	pi[0] = ones(mesh)
	nrm := make([]float64, 1, n+1)
	nrm[0] = mass

	xp := make([]float64, mesh) // scratch: x·π_k(x) pointwise
	for k := 0; k < n; k++ {
		cur := pi[k]
		for i := range xp {
			xp[i] = x[i] * cur[i]
		}
		c.A[k] = weightedDot(lam, xp, cur) / nrm[k]
		if k > 0 {
			c.B[k] = nrm[k] / nrm[k-1]
			if !(c.B[k] > 0) || nrm[k]/nrm[0] < degeneracyFloor {
				return Coefficients{}, fmt.Errorf("b_%d = %g at mesh %d: %w", k, c.B[k], mesh, ErrDegenerateMeasure)
			}
		}
		if k == n-1 {
			break // final pair computed; no need to advance the recurrence
		}

		next := make([]float64, mesh)
		prevB := 0.0
		if k > 0 {
			prevB = c.B[k]
		}
		for i := range next {
			next[i] = (x[i] - c.A[k]) * cur[i]
			if k > 0 {
				next[i] -= prevB * pi[k-1][i]
			}
		}
		// Reorthogonalize against every earlier polynomial in the discrete
		// inner product; projections onto lower degrees leave the monic
		// leading term untouched.
		for j := 0; j <= k; j++ {
			proj := weightedDot(lam, next, pi[j]) / nrm[j]
			floats.AddScaled(next, -proj, pi[j])
		}

		pi = append(pi, next)
		nrm = append(nrm, weightedDot(lam, next, next))
	}

	return c, nil
}

// degeneracyFloor is the relative squared-norm threshold below which the
// discrete polynomials are considered numerically dependent.
const degeneracyFloor = 1e-300

// fejer returns the m-point Fejér (first kind) quadrature nodes and weights
// on [-1,1]: x_i = cos θ_i at the Chebyshev angles θ_i = (2i−1)π/(2m).
// Weights are positive and sum to 2. O(m²) assembly, which is negligible
// next to the Stieltjes sweeps that consume the mesh.
func fejer(m int) (nodes, weights []float64) {
	nodes = make([]float64, m)
	weights = make([]float64, m)
	for i := 0; i < m; i++ {
		theta := float64(2*i+1) * math.Pi / float64(2*m)
		var sum float64
		for j := 1; j <= m/2; j++ {
			sum += math.Cos(2*float64(j)*theta) / float64(4*j*j-1)
		}
		// ascending node order (θ decreasing in cos)
		nodes[m-1-i] = math.Cos(theta)
		weights[m-1-i] = 2.0 / float64(m) * (1 - 2*sum)
	}

	return nodes, weights
}

// weightedDot computes Σ λ_i·u_i·v_i.
func weightedDot(lam, u, v []float64) float64 {
	var sum float64
	for i := range lam {
		sum += lam[i] * u[i] * v[i]
	}

	return sum
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}
