package moments

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/polychaos/solver"
)

// ErrDegenerateVariance indicates a (numerically) constant expansion:
// variance is zero and Sobol sensitivity is undefined.
var ErrDegenerateVariance = errors.New("moments: zero variance, sensitivity undefined")

// Summary holds the statistics of an orthonormal expansion. FirstOrder[i]
// is the fraction of variance explained by dimension i alone; Total[i] adds
// every interaction dimension i participates in. FirstOrder sums to ≤ 1,
// Total[i] ≥ FirstOrder[i].
type Summary struct {
	Mean       float64
	Variance   float64
	FirstOrder []float64
	Total      []float64
}

// Summarize extracts mean, variance, and Sobol indices from a coefficient
// vector.
func Summarize(coeffs *solver.CoefficientVector) (Summary, error) {
	if coeffs == nil || coeffs.Len() == 0 {
		return Summary{}, fmt.Errorf("empty coefficient vector: %w", ErrDegenerateVariance)
	}

	set := coeffs.Set()
	dim := set.Dimension()
	s := Summary{
		FirstOrder: make([]float64, dim),
		Total:      make([]float64, dim),
	}

	for i := 0; i < coeffs.Len(); i++ {
		ix := set.At(i)
		c := coeffs.Value(i)
		if ix.IsZero() {
			s.Mean = c

			continue
		}

		c2 := c * c
		s.Variance += c2
		active := ix.ActiveDims()
		if len(active) == 1 {
			s.FirstOrder[active[0]] += c2
		}
		for _, d := range active {
			s.Total[d] += c2
		}
	}

	if !(s.Variance > 0) {
		return Summary{}, fmt.Errorf("variance %g: %w", s.Variance, ErrDegenerateVariance)
	}
	for d := 0; d < dim; d++ {
		s.FirstOrder[d] /= s.Variance
		s.Total[d] /= s.Variance
	}

	return s, nil
}
