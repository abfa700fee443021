package solver

import (
	"fmt"

	"github.com/katalvlaran/polychaos/basis"
	"github.com/katalvlaran/polychaos/measure"
	"github.com/katalvlaran/polychaos/recurrence"
)

// Surrogate is a fitted expansion packaged for pointwise evaluation: the
// polynomial stand-in for the sampled function, in physical coordinates.
type Surrogate struct {
	coeffs   *CoefficientVector
	measures []measure.Measure
	cache    *recurrence.Cache
	opts     recurrence.Options
}

// NewSurrogate wraps fitted coefficients with the measures they were fitted
// under. The cache is shared with the rest of the pipeline.
func NewSurrogate(coeffs *CoefficientVector, measures []measure.Measure, cache *recurrence.Cache, opts recurrence.Options) (*Surrogate, error) {
	if coeffs == nil || len(measures) != coeffs.Set().Dimension() {
		return nil, fmt.Errorf("%d measures for surrogate: %w", len(measures), ErrDimensionMismatch)
	}

	return &Surrogate{coeffs: coeffs, measures: measures, cache: cache, opts: opts}, nil
}

// Value evaluates the surrogate at one physical-domain point.
func (s *Surrogate) Value(x []float64) (float64, error) {
	vals, err := s.ValueBatch([][]float64{x})
	if err != nil {
		return 0, err
	}

	return vals[0], nil
}

// ValueBatch evaluates the surrogate at many points in one basis pass.
func (s *Surrogate) ValueBatch(points [][]float64) ([]float64, error) {
	design, err := basis.EvaluateFor(s.measures, s.coeffs.Set(), points, s.cache, s.opts)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(points))
	for j := range points {
		var sum float64
		for a := 0; a < s.coeffs.Len(); a++ {
			sum += s.coeffs.Value(a) * design.At(a, j)
		}
		out[j] = sum
	}

	return out, nil
}

// Gradient evaluates the physical-space gradient of the surrogate at one
// point, one partial derivative per dimension.
func (s *Surrogate) Gradient(x []float64) ([]float64, error) {
	grads, err := basis.GradientFor(s.measures, s.coeffs.Set(), [][]float64{x}, s.cache, s.opts)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(grads))
	for v, g := range grads {
		var sum float64
		for a := 0; a < s.coeffs.Len(); a++ {
			sum += s.coeffs.Value(a) * g.At(a, 0)
		}
		out[v] = sum
	}

	return out, nil
}
