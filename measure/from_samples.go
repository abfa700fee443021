package measure

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// minSamples is the smallest dataset FromSamples accepts; below this a
// kernel bandwidth estimate is meaningless.
const minSamples = 8

// FromSamples builds an Arbitrary measure whose density is a Gaussian-kernel
// estimate of the data distribution, with Silverman's rule-of-thumb
// bandwidth. The support extends three bandwidths beyond the sample range so
// the kernel tails carry effectively all the mass.
//
// The resulting measure feeds the numerical (Stieltjes) recurrence path like
// any other Arbitrary measure.
func FromSamples(data []float64) (Measure, error) {
	if len(data) < minSamples {
		return Measure{}, fmt.Errorf("%d samples, need at least %d: %w", len(data), minSamples, ErrInsufficientData)
	}

	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return Measure{}, fmt.Errorf("measure: sample spread: %w", err)
	}
	lo, err := stats.Min(data)
	if err != nil {
		return Measure{}, fmt.Errorf("measure: sample min: %w", err)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Measure{}, fmt.Errorf("measure: sample max: %w", err)
	}
	if !(sd > 0) {
		return Measure{}, fmt.Errorf("samples have zero spread: %w", ErrInsufficientData)
	}

	// Silverman bandwidth: h = 1.06 σ n^(-1/5).
	n := len(data)
	h := 1.06 * sd * math.Pow(float64(n), -0.2)

	points := make([]float64, n)
	copy(points, data)
	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	kde := func(x float64) float64 {
		var sum float64
		for _, xi := range points {
			z := (x - xi) / h
			sum += math.Exp(-0.5 * z * z)
		}

		return norm * sum
	}

	return NewArbitrary(lo-3*h, hi+3*h, kde)
}
