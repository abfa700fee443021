package basis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/polychaos/indexset"
	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

var (
	// ErrDimensionMismatch indicates points, coefficients, and index set
	// disagree on dimension.
	ErrDimensionMismatch = errors.New("basis: dimension mismatch")

	// ErrInsufficientCoefficients indicates the recurrence coefficients do
	// not reach the requested degree (degree p needs p+1 pairs).
	ErrInsufficientCoefficients = errors.New("basis: not enough recurrence coefficients for requested degree")
)

// Univariate evaluates the orthonormal polynomials φ_0..φ_maxDegree at the
// given points. Row k of the result holds φ_k at every point. Points are on
// the coefficients' own domain (canonical for closed-form families).
func Univariate(coeffs recurrence.Coefficients, maxDegree int, points []float64) (*mat.Dense, error) {
	vals, _, err := univariate(coeffs, maxDegree, points, false)

	return vals, err
}

// UnivariateDeriv evaluates orthonormal polynomials and their first
// derivatives: rows are degrees, columns points, in both returned matrices.
func UnivariateDeriv(coeffs recurrence.Coefficients, maxDegree int, points []float64) (values, derivs *mat.Dense, err error) {
	return univariate(coeffs, maxDegree, points, true)
}

// univariate runs the forward orthonormal recurrence, optionally carrying
// the derivative recurrence alongside.
func univariate(coeffs recurrence.Coefficients, maxDegree int, points []float64, wantDeriv bool) (*mat.Dense, *mat.Dense, error) {
	if maxDegree < 0 {
		return nil, nil, fmt.Errorf("degree %d: %w", maxDegree, ErrInsufficientCoefficients)
	}
	if coeffs.Order() < maxDegree+1 {
		return nil, nil, fmt.Errorf("degree %d needs %d pairs, have %d: %w",
			maxDegree, maxDegree+1, coeffs.Order(), ErrInsufficientCoefficients)
	}
	if err := coeffs.Validate(); err != nil {
		return nil, nil, err
	}

	rows, cols := maxDegree+1, len(points)
	vals := mat.NewDense(rows, cols, nil)
	var derivs *mat.Dense
	if wantDeriv {
		derivs = mat.NewDense(rows, cols, nil)
	}

	phi0 := 1 / math.Sqrt(coeffs.B[0])
	for j := range points {
		vals.Set(0, j, phi0)
	}
	// derivative of the constant stays zero

	for k := 0; k < maxDegree; k++ {
		sqB := math.Sqrt(coeffs.B[k+1])
		var sqPrev float64
		if k > 0 {
			sqPrev = math.Sqrt(coeffs.B[k])
		}
		for j, x := range points {
			cur := vals.At(k, j)
			var prev float64
			if k > 0 {
				prev = vals.At(k-1, j)
			}
			vals.Set(k+1, j, ((x-coeffs.A[k])*cur-sqPrev*prev)/sqB)

			if wantDeriv {
				dcur := derivs.At(k, j)
				var dprev float64
				if k > 0 {
					dprev = derivs.At(k-1, j)
				}
				derivs.Set(k+1, j, ((x-coeffs.A[k])*dcur+cur-sqPrev*dprev)/sqB)
			}
		}
	}

	return vals, derivs, nil
}

// Evaluate evaluates the multivariate orthonormal basis selected by the
// index set at canonical-domain points. Row i of the result corresponds to
// set.At(i), columns to points; entry (i, j) is ∏_d φ_{α_d}(x_j[d]).
func Evaluate(set *indexset.Set, perDim []recurrence.Coefficients, points [][]float64) (*mat.Dense, error) {
	uni, err := perDimensionTables(set, perDim, points)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(set.Len(), len(points), nil)
	for i := 0; i < set.Len(); i++ {
		ix := set.At(i)
		for j := range points {
			prod := 1.0
			for d, deg := range ix {
				prod *= uni[d].At(deg, j)
			}
			out.Set(i, j, prod)
		}
	}

	return out, nil
}

// Gradient evaluates per-dimension partial derivatives of the multivariate
// basis: grads[v] has rows = basis indices, columns = points, holding
// ∂/∂x_v of each basis function.
func Gradient(set *indexset.Set, perDim []recurrence.Coefficients, points [][]float64) ([]*mat.Dense, error) {
	if err := checkShapes(set, perDim, points); err != nil {
		return nil, err
	}

	dim := set.Dimension()
	maxes := set.MaxDegrees()
	vals := make([]*mat.Dense, dim)
	ders := make([]*mat.Dense, dim)
	for d := 0; d < dim; d++ {
		coords := column(points, d)
		v, dv, err := UnivariateDeriv(perDim[d], maxes[d], coords)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", d, err)
		}
		vals[d], ders[d] = v, dv
	}

	grads := make([]*mat.Dense, dim)
	for v := 0; v < dim; v++ {
		g := mat.NewDense(set.Len(), len(points), nil)
		for i := 0; i < set.Len(); i++ {
			ix := set.At(i)
			for j := range points {
				prod := 1.0
				for d, deg := range ix {
					if d == v {
						prod *= ders[d].At(deg, j)
					} else {
						prod *= vals[d].At(deg, j)
					}
				}
				g.Set(i, j, prod)
			}
		}
		grads[v] = g
	}

	return grads, nil
}

// EvaluateFor maps physical-domain points onto each measure's canonical
// domain, generates coefficients through the cache, and evaluates the
// multivariate basis, the convenience path used by solvers.
func EvaluateFor(measures []measure.Measure, set *indexset.Set, points [][]float64, cache *recurrence.Cache, opts recurrence.Options) (*mat.Dense, error) {
	canonical, perDim, err := prepare(measures, set, points, cache, opts)
	if err != nil {
		return nil, err
	}

	return Evaluate(set, perDim, canonical)
}

// GradientFor is the physical-domain companion of Gradient. The chain-rule
// factor of each dimension's canonical mapping is applied, so the result is
// a true physical-space gradient.
func GradientFor(measures []measure.Measure, set *indexset.Set, points [][]float64, cache *recurrence.Cache, opts recurrence.Options) ([]*mat.Dense, error) {
	canonical, perDim, err := prepare(measures, set, points, cache, opts)
	if err != nil {
		return nil, err
	}
	grads, err := Gradient(set, perDim, canonical)
	if err != nil {
		return nil, err
	}
	// d/dx φ(t(x)) = φ'(t)·t'(x); the canonical maps are affine, so t'(x) is
	// a constant per dimension.
	for v, g := range grads {
		slope := canonicalSlope(measures[v])
		if slope != 1 {
			g.Scale(slope, g)
		}
	}

	return grads, nil
}

// prepare validates shapes, maps points to canonical coordinates, and
// generates per-dimension coefficients sized to the set's maximum degrees.
func prepare(measures []measure.Measure, set *indexset.Set, points [][]float64, cache *recurrence.Cache, opts recurrence.Options) ([][]float64, []recurrence.Coefficients, error) {
	if set == nil || len(measures) != set.Dimension() {
		return nil, nil, fmt.Errorf("%d measures for %d-dimensional set: %w", len(measures), dimOf(set), ErrDimensionMismatch)
	}
	for j, pt := range points {
		if len(pt) != set.Dimension() {
			return nil, nil, fmt.Errorf("point %d has %d coordinates, want %d: %w", j, len(pt), set.Dimension(), ErrDimensionMismatch)
		}
	}

	canonical := make([][]float64, len(points))
	for j, pt := range points {
		cpt := make([]float64, len(pt))
		for d, x := range pt {
			cpt[d] = measures[d].ToCanonical(x)
		}
		canonical[j] = cpt
	}

	maxes := set.MaxDegrees()
	orders := make([]int, len(maxes))
	for d, deg := range maxes {
		orders[d] = deg + 1
	}
	perDim, err := recurrence.GenerateAll(cache, measures, orders, opts)
	if err != nil {
		return nil, nil, err
	}

	return canonical, perDim, nil
}

// checkShapes validates Evaluate/Gradient inputs sharing one dimension.
func checkShapes(set *indexset.Set, perDim []recurrence.Coefficients, points [][]float64) error {
	if set == nil || len(perDim) != set.Dimension() {
		return fmt.Errorf("%d coefficient sets for %d-dimensional set: %w", len(perDim), dimOf(set), ErrDimensionMismatch)
	}
	for j, pt := range points {
		if len(pt) != set.Dimension() {
			return fmt.Errorf("point %d has %d coordinates, want %d: %w", j, len(pt), set.Dimension(), ErrDimensionMismatch)
		}
	}

	return nil
}

// perDimensionTables evaluates each dimension's univariate family up to the
// set's maximum degree at that dimension's coordinates.
func perDimensionTables(set *indexset.Set, perDim []recurrence.Coefficients, points [][]float64) ([]*mat.Dense, error) {
	if err := checkShapes(set, perDim, points); err != nil {
		return nil, err
	}

	maxes := set.MaxDegrees()
	uni := make([]*mat.Dense, set.Dimension())
	for d := 0; d < set.Dimension(); d++ {
		vals, err := Univariate(perDim[d], maxes[d], column(points, d))
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", d, err)
		}
		uni[d] = vals
	}

	return uni, nil
}

// canonicalSlope returns the constant derivative dt/dx of a measure's
// canonical mapping.
func canonicalSlope(m measure.Measure) float64 {
	lower, upper := m.Support()
	switch m.Kind() {
	case measure.Uniform:
		return 2 / (upper - lower)
	case measure.Gaussian:
		_, sigma := m.GaussianParams()

		return 1 / sigma
	case measure.Beta:
		return 1 / (upper - lower)
	default:
		return 1
	}
}

func column(points [][]float64, d int) []float64 {
	out := make([]float64, len(points))
	for j, pt := range points {
		out[j] = pt[d]
	}

	return out
}

func dimOf(set *indexset.Set) int {
	if set == nil {
		return 0
	}

	return set.Dimension()
}
